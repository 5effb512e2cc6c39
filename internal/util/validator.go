package util

import (
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
	"gopkg.in/guregu/null.v3"

	"github.com/labtrack/lims/internal/model"
)

// pids are at most 10 characters: letters, digits and inner dashes.
var pidRegex = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,8}[A-Za-z0-9])?$`)

func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterValidation("pid", pid)
	validate.RegisterValidation("labelstyle", labelStyle)
	validate.RegisterCustomTypeFunc(nullIntValuer, null.Int{})
	validate.RegisterCustomTypeFunc(nullStringValuer, null.String{})

	return validate
}

func pid(fl validator.FieldLevel) bool {
	return pidRegex.MatchString(fl.Field().String())
}

func labelStyle(fl validator.FieldLevel) bool {
	switch model.LabelStyle(fl.Field().String()) {
	case model.LabelNumeric, model.LabelAlphabetic:
		return true
	default:
		return false
	}
}

func nullIntValuer(field reflect.Value) interface{} {
	if v, ok := field.Interface().(null.Int); ok && v.Valid {
		return v.Int64
	}
	return nil
}

func nullStringValuer(field reflect.Value) interface{} {
	if v, ok := field.Interface().(null.String); ok && v.Valid {
		return v.String
	}
	return nil
}
