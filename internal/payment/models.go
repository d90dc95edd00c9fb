package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"payments-gateway/internal/models"
)

// PaymentRequest is the body of create and update requests. ID is accepted
// in any JSON form so that clients may echo a record back, but it is never used.
type PaymentRequest struct {
	ID     json.RawMessage `json:"id"`
	From   string          `json:"from" binding:"required"`
	To     string          `json:"to" binding:"required"`
	Amount *int64          `json:"amount" binding:"required"`
}

// Payment builds the record to persist under id; an empty id lets the store assign one.
func (r *PaymentRequest) Payment(id string) models.Payment {
	return models.Payment{
		ID:     id,
		From:   r.From,
		To:     r.To,
		Amount: *r.Amount,
	}
}

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError reports every field of a request body that failed decoding or validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "invalid payment: " + strings.Join(parts, "; ")
}

func bindPayment(c *gin.Context) (*PaymentRequest, error) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, toValidationError(err)
	}
	return &req, nil
}

func toValidationError(err error) *ValidationError {
	var (
		verrs   validator.ValidationErrors
		typeErr *json.UnmarshalTypeError
		synErr  *json.SyntaxError
	)

	switch {
	case errors.As(err, &verrs):
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field:  jsonName(fe.StructField()),
				Reason: reason(fe),
			})
		}
		return &ValidationError{Fields: fields}
	case errors.As(err, &typeErr) && typeErr.Field == "":
		return &ValidationError{Fields: []FieldError{{Field: "body", Reason: "must be a JSON object"}}}
	case errors.As(err, &typeErr):
		return &ValidationError{Fields: []FieldError{{
			Field:  typeErr.Field,
			Reason: fmt.Sprintf("must be %s, got %s", typeName(typeErr.Type), typeErr.Value),
		}}}
	case errors.As(err, &synErr):
		return &ValidationError{Fields: []FieldError{{Field: "body", Reason: "malformed JSON"}}}
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return &ValidationError{Fields: []FieldError{{Field: "body", Reason: "request body is empty or truncated"}}}
	default:
		return &ValidationError{Fields: []FieldError{{Field: "body", Reason: err.Error()}}}
	}
}

func reason(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return "is required"
	}
	return "failed " + fe.Tag() + " check"
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.String:
		return "a string"
	default:
		return t.String()
	}
}

func jsonName(structField string) string {
	f, ok := reflect.TypeOf(PaymentRequest{}).FieldByName(structField)
	if !ok {
		return structField
	}
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" {
		return structField
	}
	return name
}
