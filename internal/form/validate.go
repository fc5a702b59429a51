package form

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/erazemk/foodcourt/internal/model"
)

// InputError lists the text fields that failed input checks, keyed by
// field name.
type InputError struct {
	Fields map[string]string
}

func (e *InputError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

var validate = newValidator()

// newValidator returns a validator with the draft-specific tags registered.
func newValidator() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterValidation("category", func(fl validatorv10.FieldLevel) bool {
		return model.IsCategory(fl.Field().String())
	})
	v.RegisterValidation("numeric_text", func(fl validatorv10.FieldLevel) bool {
		_, err := model.ParsePrice(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate runs the input-layer checks on the text fields of a draft:
// name, description and price must be filled in and the price must read
// as a number. The image is left to the submission controller.
func Validate(d model.ItemDraft) error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var ve validatorv10.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("validating draft: %w", err)
	}

	out := &InputError{Fields: map[string]string{}}
	for _, fe := range ve {
		out.Fields[strings.ToLower(fe.Field())] = message(fe)
	}
	return out
}

func message(fe validatorv10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "numeric_text":
		return "must be a number"
	case "category":
		return "unknown category"
	default:
		return fe.Error()
	}
}
