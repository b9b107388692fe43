package handlers

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/SscSPs/site_expense_tracker/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerValidatorsOnce sync.Once

// registerValidators teaches gin's validator about decimal request fields:
//   - money: positive with at most two fractional digits
//   - positive_decimal: strictly greater than zero with at most four fractional digits
//   - percent: between 0 and 100 inclusive with at most two fractional digits
func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	v.RegisterCustomTypeFunc(decimalAsString, decimal.Decimal{})

	validations := map[string]validator.Func{
		"money":            validateMoney,
		"positive_decimal": validatePositiveDecimal,
		"percent":          validatePercent,
	}
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validation: %w", tag, err)
		}
	}
	return nil
}

func mustRegisterValidators() {
	registerValidatorsOnce.Do(func() {
		if err := registerValidators(); err != nil {
			panic(err)
		}
	})
}

func decimalAsString(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func fieldDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(fl.Field().String())
	return d, err == nil
}

func validateMoney(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && d.IsPositive() && domain.HasAtMostPlaces(d, domain.MoneyPlaces)
}

func validatePositiveDecimal(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && d.IsPositive() && domain.HasAtMostPlaces(d, domain.QuantityPlaces)
}

var hundred = decimal.NewFromInt(100)

func validatePercent(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && !d.IsNegative() && d.LessThanOrEqual(hundred) && domain.HasAtMostPlaces(d, domain.PercentPlaces)
}
