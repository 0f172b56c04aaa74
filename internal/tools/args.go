package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"

	"resume-ats/resume/contract"
	"resume-ats/resume/service"
)

type resumeArgs struct {
	PDF  string `json:"pdf" validate:"required_without=Text"`
	Text string `json:"text" validate:"required_without=PDF"`
}

type jobArgs struct {
	JobDescription string `json:"job_description" validate:"required,min=20"`
}

type optimizeArgs struct {
	ResumeData     string `json:"resume_data" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func normalizeArgs(args json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(args)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return json.RawMessage("{}")
	}
	return trimmed
}

func checkSchema(schema *gojsonschema.Schema, args json.RawMessage) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(args))
	if err != nil {
		return contract.InvalidInputError{Field: "arguments", Reason: "arguments are not valid JSON", Err: err}
	}
	if result.Valid() {
		return nil
	}
	first := result.Errors()[0]
	field := first.Field()
	if field == "" || field == "(root)" {
		field = "arguments"
	}
	return contract.InvalidInputError{Field: field, Reason: first.Description()}
}

// decodeArgs unmarshals args into dst, trims its string fields and runs the
// struct validation rules.
func (r *Registry) decodeArgs(args json.RawMessage, dst any) error {
	if err := json.Unmarshal(args, dst); err != nil {
		return contract.InvalidInputError{Field: "arguments", Reason: "arguments are not valid JSON", Err: err}
	}
	trimStrings(dst)
	if err := r.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return contract.InvalidInputError{Field: fe.Field(), Reason: describe(fe)}
		}
		return contract.InvalidInputError{Field: "arguments", Reason: err.Error()}
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_without":
		return fmt.Sprintf("is required when %s is not provided", strings.ToLower(fe.Param()))
	case "min":
		if fe.Field() == "job_description" {
			return fmt.Sprintf("job description is too short to analyze; provide at least %d characters of the posting", service.MinJobTextLen)
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func trimStrings(dst any) {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return
	}
	v = v.Elem()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() == reflect.String && f.CanSet() {
			f.SetString(strings.TrimSpace(f.String()))
		}
	}
}
