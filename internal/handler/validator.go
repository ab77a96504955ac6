package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/moniyo/financequest/internal/domain"
)

// Identifier rules shared by path parameters
const idRules = "required,max=128,excludesall=/?#\x00\n\r\t"

// Validator checks request bodies and path identifiers. Field names in its
// errors are the JSON names clients send.
type Validator struct {
	validate *validator.Validate
}

// GetValidator returns the process-wide validator, built on first use
var GetValidator = sync.OnceValue(newValidator)

func newValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	for tag, fn := range map[string]validator.Func{
		"period":         validatePeriod,
		"savings_source": validateSavingsSource,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}
	return &Validator{validate: v}
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return strings.ToLower(f.Name)
	}
	return name
}

func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

func (v *Validator) ValidateID(id string) error {
	return v.validate.Var(id, idRules)
}

// FormatValidationError maps each failing field to a message a client can show
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string]string{"error": "Invalid request format"}
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "period":
		return fmt.Sprintf("Must be %q or %q", domain.PeriodMonth, domain.PeriodYear)
	case "savings_source":
		return "Invalid savings source"
	case "gte":
		return "Must be at least " + fe.Param()
	case "lte":
		return "Must be at most " + fe.Param()
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "excludesall":
		return "Contains invalid characters"
	}
	return "Invalid value"
}

func validatePeriod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case domain.PeriodMonth, domain.PeriodYear:
		return true
	}
	return false
}

// validateSavingsSource accepts empty, which downstream treats as manual
func validateSavingsSource(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", domain.SavingsSourceManual, domain.SavingsSourceQuest, domain.SavingsSourceQuickWin:
		return true
	}
	return false
}
