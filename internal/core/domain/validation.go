package domain

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// RegisterValidators installs the decimal-aware rules on v. It is used both for the domain
// validator and for gin's binding engine so request DTOs share the same tags.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	if err := v.RegisterValidation("dgt0", decimalGreaterThanZero); err != nil {
		return fmt.Errorf("failed to register dgt0 validation: %w", err)
	}
	return nil
}

func decimalGreaterThanZero(fl validator.FieldLevel) bool {
	f, ok := fl.Field().Interface().(float64)
	return ok && f > 0
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// Validate runs struct-tag validation with the shared domain validator.
func Validate(s interface{}) error {
	validateOnce.Do(func() {
		validate = validator.New()
		if err := RegisterValidators(validate); err != nil {
			panic(err)
		}
	})
	return validate.Struct(s)
}
