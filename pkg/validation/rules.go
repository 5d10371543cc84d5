package validation

import (
	"errors"
	"fmt"
	"reflect"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/EveryHotel/flag-tools/pkg/flags"
)

// Nested хэлпер для применения валидации вложенных структур с флагами
func Nested(target interface{}, fieldRules ...*validation.FieldRules) *validation.FieldRules {
	return validation.Field(target, validation.By(func(value interface{}) error {
		if nestedField, ok := target.(validation.Validatable); ok {
			return nestedField.Validate()
		}

		valueV := reflect.Indirect(reflect.ValueOf(value))
		if valueV.CanAddr() {
			addr := valueV.Addr().Interface()
			return validation.ValidateStruct(addr, fieldRules...)
		}

		return validation.ValidateStruct(target, fieldRules...)
	}))
}

// KnownFlags проверяет, что все биты значения покрыты константами справочника
func KnownFlags[T flags.Bits](enum *flags.Enum[T]) validation.RuleFunc {
	return func(value interface{}) error {
		if enum == nil {
			return fmt.Errorf("nil enum: %w", flags.ErrInvalidEnum)
		}

		f, err := flags.AsFlag(value)
		if err != nil {
			return err
		}

		if rest := f.Without(enum.Mask()); rest != 0 {
			return fmt.Errorf("unknown flag bits: %s", rest.String())
		}

		return nil
	}
}

// RequireFlags проверяет наличие всех перечисленных битов
func RequireFlags(required ...flags.Flag) validation.RuleFunc {
	pattern := flags.Combine(required...)

	return func(value interface{}) error {
		f, err := flags.AsFlag(value)
		if err != nil {
			return err
		}

		if !f.Match(pattern) {
			return fmt.Errorf("missing required flags: %s", pattern.Without(f).String())
		}

		return nil
	}
}

// ForbidFlags проверяет отсутствие любого из перечисленных битов
func ForbidFlags(forbidden ...flags.Flag) validation.RuleFunc {
	pattern := flags.Combine(forbidden...)

	return func(value interface{}) error {
		f, err := flags.AsFlag(value)
		if err != nil {
			return err
		}

		if common := f & pattern; common != 0 {
			return fmt.Errorf("forbidden flags present: %s", common.String())
		}

		return nil
	}
}

// NonZeroFlag проверяет, что хотя бы один бит установлен
func NonZeroFlag(message string) validation.RuleFunc {
	return func(value interface{}) error {
		f, err := flags.AsFlag(value)
		if err != nil {
			return err
		}

		if f == 0 {
			if message == "" {
				message = "flag must not be zero"
			}
			return errors.New(message)
		}

		return nil
	}
}
