package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/geocoder89/birthdays/internal/apperror"
	"github.com/geocoder89/birthdays/internal/calendar"
)

const unknownFieldPrefix = "json: unknown field "

// BindJSON strictly decodes the request body into out and runs its binding
// rules. Unknown fields, trailing data and malformed JSON are rejected with a
// 400 before any domain validation runs.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	if err := decodeStrict(ctx.Request.Body, out); err != nil {
		RespondError(ctx, err)
		return false
	}

	return true
}

func decodeStrict(body io.Reader, out interface{}) error {
	if body == nil {
		return apperror.BadRequest("Request body is required.")
	}

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(out); err != nil {
		return apperror.BadRequest(decodeErrorMessage(err))
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return apperror.BadRequest("Request body must contain a single JSON object.")
	}

	if err := binding.Validator.ValidateStruct(out); err != nil {
		return apperror.BadRequest(validationErrorMessage(err, out))
	}

	return nil
}

func decodeErrorMessage(err error) string {
	if errors.Is(err, io.EOF) {
		return "Request body is required."
	}

	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		return fmt.Sprintf("Request body must not exceed %d bytes.", maxBytesError.Limit)
	}

	// encoding/json has no typed error for this one
	if msg := err.Error(); strings.HasPrefix(msg, unknownFieldPrefix) {
		return fmt.Sprintf("Unknown field %s in request body.", strings.TrimPrefix(msg, unknownFieldPrefix))
	}

	if errors.Is(err, calendar.ErrInvalidDate) {
		return "Invalid date, expected YYYY-MM-DD."
	}

	var syntaxError *json.SyntaxError
	if errors.As(err, &syntaxError) || errors.Is(err, io.ErrUnexpectedEOF) {
		return "Invalid JSON in request body."
	}

	var unmatchedTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmatchedTypeError) {
		// Field is already the JSON path of the value
		if unmatchedTypeError.Field == "" {
			return "Request body must be a JSON object."
		}

		return fmt.Sprintf("Field %q must be of type %s.", unmatchedTypeError.Field, unmatchedTypeError.Type.String())
	}

	return "Invalid request body."
}

func validationErrorMessage(err error, out interface{}) string {
	var validatorError validator.ValidationErrors

	if !errors.As(err, &validatorError) || len(validatorError) == 0 {
		return "Invalid request body."
	}

	// report the first failing rule, like domain validation does
	fieldError := validatorError[0]
	field := jsonFieldName(baseStructType(out), fieldError.StructField())

	if fieldError.Tag() == "required" {
		return fmt.Sprintf("Field %q is required.", field)
	}

	return fmt.Sprintf("Field %q failed %s validation.", field, fieldError.Tag())
}

func baseStructType(v interface{}) reflect.Type {
	t := reflect.TypeOf(v)

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t != nil && t.Kind() == reflect.Struct {
		return t
	}

	return nil
}

// jsonFieldName maps a top-level Go field name to the key clients send.
func jsonFieldName(rootType reflect.Type, structField string) string {
	if rootType == nil {
		return structField
	}

	sf, ok := rootType.FieldByName(structField)
	if !ok {
		return structField
	}

	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return sf.Name
	}

	return name
}
