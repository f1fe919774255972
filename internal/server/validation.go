package server

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jmylchreest/chromascale/internal/colour"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names so error fields match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Six-digit colour, with or without the leading #.
	_ = v.RegisterValidation("rgbhex", func(fl validator.FieldLevel) bool {
		_, err := colour.ParseHex(fl.Field().String())
		return err == nil
	})

	return v
}

// savePaletteRequest is the body of POST /api/palettes.
type savePaletteRequest struct {
	Name       string    `json:"name" validate:"max=120"`
	Hue        *float64  `json:"hue" validate:"required,gte=0,lte=360"`
	Saturation *float64  `json:"saturation" validate:"required,gte=0,lte=100"`
	Colours    []string  `json:"colors" validate:"required,len=6,dive,rgbhex"`
	Mode       string    `json:"mode" validate:"required,oneof=cohesive vibrant"`
	Hues       []float64 `json:"hues" validate:"omitempty,len=6,dive,gte=0,lte=360"`
}

// generateRequest is the body of POST /api/palettes/generate.
type generateRequest struct {
	Mode       string   `json:"mode" validate:"omitempty,oneof=cohesive vibrant"`
	Hue        *float64 `json:"hue" validate:"omitempty,gte=0,lte=360"`
	Saturation *float64 `json:"saturation" validate:"omitempty,gte=0,lte=100"`
	Suggest    bool     `json:"suggest"`
}

// fieldError is a validation failure on one request field.
type fieldError struct {
	Field   string
	Message string
}

func (e *fieldError) Error() string {
	return e.Field + ": " + e.Message
}

// validateRequest validates v and returns the first failure as a *fieldError.
func validateRequest(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return &fieldError{Field: fieldPath(fe), Message: formatFieldError(fe)}
}

// fieldPath strips the root struct name from the namespace, e.g.
// savePaletteRequest.colors[2] becomes colors[2].
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func formatFieldError(fe validator.FieldError) string {
	field := fieldPath(fe)

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must contain exactly %s items", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "rgbhex":
		return fmt.Sprintf("%s must be a #RRGGBB colour", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
