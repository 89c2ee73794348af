package payment

import (
	"errors"
	"fmt"
	"html"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// Params are the arguments of paygw_wallet_process.
type Params struct {
	Component   string `json:"component" validate:"required,component"`
	PaymentArea string `json:"paymentarea" validate:"required,paymentarea"`
	ItemID      int64  `json:"itemid" validate:"gt=0"`
	Description string `json:"description"`
}

var (
	componentPattern = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z][a-z0-9_]*)?[a-z0-9]+$`)
	areaPattern      = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$`)
)

// ValidComponent reports whether name is a frankenstyle component name.
// Activity modules (mod_*) may not contain a second underscore.
func ValidComponent(name string) bool {
	if !componentPattern.MatchString(name) || strings.Contains(name, "__") {
		return false
	}
	if strings.HasPrefix(name, "mod_") && strings.Count(name, "_") != 1 {
		return false
	}
	return true
}

// ValidArea reports whether name is a valid file or payment area name.
func ValidArea(name string) bool {
	return areaPattern.MatchString(name) && !strings.Contains(name, "__")
}

type ParamValidator struct {
	validate *validator.Validate
	text     *bluemonday.Policy
}

func NewParamValidator() *ParamValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		return name
	})
	_ = validate.RegisterValidation("component", func(fl validator.FieldLevel) bool {
		return ValidComponent(fl.Field().String())
	})
	_ = validate.RegisterValidation("paymentarea", func(fl validator.FieldLevel) bool {
		return ValidArea(fl.Field().String())
	})

	return &ParamValidator{
		validate: validate,
		text:     bluemonday.StrictPolicy(),
	}
}

// Clean validates the structured parameters and strips markup from the
// description. Identifiers are rejected rather than rewritten.
func (v *ParamValidator) Clean(params Params) (Params, error) {
	if err := v.validate.Struct(params); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return Params{}, fmt.Errorf("%w: %s", ErrInvalidParameter, fieldErrs[0].Field())
		}
		return Params{}, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	// The policy escapes the text it keeps; only the tags should go.
	params.Description = html.UnescapeString(v.text.Sanitize(params.Description))
	return params, nil
}
