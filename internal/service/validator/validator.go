package validator

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Validator проверяет обязательные поля и пересечения с другими записями дня.
// Сам ничего не пишет в хранилище
type Validator struct {
	validate *validator.Validate
	repo     DayReader
	policy   Policy
	loc      *time.Location
}

// New создает валидатор. loc определяет границы календарного дня
func New(repo DayReader, policy Policy, loc *time.Location) *Validator {
	if loc == nil {
		loc = time.UTC
	}
	if !policy.EndTimeMode.IsValid() {
		policy.EndTimeMode = domain.EndTimeDerived
	}
	return &Validator{
		validate: validator.New(),
		repo:     repo,
		policy:   policy,
		loc:      loc,
	}
}

type fieldRule struct {
	name  string
	value interface{}
	tag   string
}

// rules порядок проверки фиксирован: возвращается первая ошибка
func (v *Validator) rules(a *domain.Appointment) []fieldRule {
	rules := []fieldRule{
		{domain.FieldFirstName, a.FirstName, fmt.Sprintf("max=%d", domain.MaxNameLength)},
		{domain.FieldLastName, a.LastName, fmt.Sprintf("max=%d", domain.MaxNameLength)},
		{domain.FieldPhoneNumber, a.PhoneNumber, fmt.Sprintf("max=%d", domain.MaxPhoneLength)},
	}

	if v.policy.RequireVehicle {
		rules = append(rules,
			fieldRule{domain.FieldMake, a.Make, fmt.Sprintf("max=%d", domain.MaxMakeLength)},
			fieldRule{domain.FieldModel, a.Model, fmt.Sprintf("max=%d", domain.MaxModelLength)},
			fieldRule{domain.FieldYear, a.Year, fmt.Sprintf("max=%d", domain.MaxYearLength)},
		)
	}

	rules = append(rules,
		fieldRule{domain.FieldServices, a.Services, ""},
		fieldRule{domain.FieldStartTime, a.StartTime, ""},
	)

	if v.policy.EndTimeMode == domain.EndTimeSupplied {
		rules = append(rules, fieldRule{domain.FieldEndTime, a.EndTime, ""})
	}

	return rules
}

// ValidateFields проверяет обязательные поля по порядку и возвращает первую ошибку (*FieldError)
func (v *Validator) ValidateFields(a *domain.Appointment) error {
	for _, rule := range v.rules(a) {
		if err := v.validate.Var(rule.value, "required"); err != nil {
			return &FieldError{Field: rule.name, Err: ErrFieldMissing}
		}
		if rule.tag == "" {
			continue
		}
		if err := v.validate.Var(rule.value, rule.tag); err != nil {
			return &FieldError{Field: rule.name, Err: ErrFieldTooLong}
		}
	}

	// Необязательные данные автомобиля все равно не должны превышать размер колонок
	if !v.policy.RequireVehicle {
		optional := []fieldRule{
			{domain.FieldMake, a.Make, fmt.Sprintf("max=%d", domain.MaxMakeLength)},
			{domain.FieldModel, a.Model, fmt.Sprintf("max=%d", domain.MaxModelLength)},
			{domain.FieldYear, a.Year, fmt.Sprintf("max=%d", domain.MaxYearLength)},
		}
		for _, rule := range optional {
			if err := v.validate.Var(rule.value, rule.tag); err != nil {
				return &FieldError{Field: rule.name, Err: ErrFieldTooLong}
			}
		}
	}

	return nil
}

// CheckSchedule проверяет интервал записи и пересечения с записями того же дня.
// При времени окончания от клиента пересечения не проверяются
func (v *Validator) CheckSchedule(ctx context.Context, a *domain.Appointment) error {
	if !a.Interval().IsValid() {
		return ErrInvalidTimeRange
	}

	if v.policy.EndTimeMode == domain.EndTimeSupplied {
		return nil
	}

	existing, err := v.repo.GetByDay(ctx, a.StartTime.In(v.loc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if conflict := domain.FindConflict(a.Interval(), existing); conflict != nil {
		return fmt.Errorf("%w: overlaps appointment id=%d (%s - %s)", ErrSchedulingConflict,
			conflict.ID, conflict.StartTime.In(v.loc).Format(domain.TimeFormat), conflict.EndTime.In(v.loc).Format(domain.TimeFormat))
	}

	return nil
}

// Validate полная проверка: сначала поля, затем расписание
func (v *Validator) Validate(ctx context.Context, a *domain.Appointment) error {
	if err := v.ValidateFields(a); err != nil {
		return err
	}
	return v.CheckSchedule(ctx, a)
}
