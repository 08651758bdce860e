package appointment

const tableName = "appointments"

// createTableQuery схема таблицы записей. id назначается базой при вставке
const createTableQuery = `CREATE TABLE IF NOT EXISTS appointments (
	id           BIGSERIAL PRIMARY KEY,
	first_name   VARCHAR(100) NOT NULL,
	last_name    VARCHAR(100) NOT NULL,
	phone_number VARCHAR(20)  NOT NULL,
	make         VARCHAR(50)  NOT NULL DEFAULT '',
	model        VARCHAR(100) NOT NULL DEFAULT '',
	year         VARCHAR(5)   NOT NULL DEFAULT '',
	services     TEXT         NOT NULL,
	start_time   TIMESTAMPTZ  NOT NULL,
	end_time     TIMESTAMPTZ  NOT NULL,
	created_at   TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
	CONSTRAINT appointments_time_range_chk CHECK (end_time >= start_time)
)`

// createIndexQuery индекс для выборок по дню (диапазон по start_time)
const createIndexQuery = `CREATE INDEX IF NOT EXISTS appointments_start_time_idx ON appointments (start_time)`

// lockDayQuery транзакционная advisory-блокировка календарного дня
const lockDayQuery = `SELECT pg_advisory_xact_lock(hashtext($1))`

var columns = []string{
	"id",
	"first_name",
	"last_name",
	"phone_number",
	"make",
	"model",
	"year",
	"services",
	"start_time",
	"end_time",
	"created_at",
}
