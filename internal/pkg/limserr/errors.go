package limserr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound           = "NOT_FOUND"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeForbidden          = "FORBIDDEN"
	CodeIntegrityViolation = "INTEGRITY_VIOLATION"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInternalError      = "INTERNAL_ERROR"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New(fiber.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrUnauthenticated is returned when identity-bound data is accessed without a valid session.
	ErrUnauthenticated = New(fiber.StatusUnauthorized, CodeUnauthenticated, "not logged in")

	// ErrForbidden is returned when the caller is authenticated but lacks the required privilege.
	ErrForbidden = New(fiber.StatusForbidden, CodeForbidden, "forbidden")

	// ErrIntegrityViolation is returned when the store rejects a write for uniqueness or referential reasons.
	ErrIntegrityViolation = New(fiber.StatusConflict, CodeIntegrityViolation, "integrity violation: the write conflicts with existing data")

	// ErrInvalidReq is returned when a request is invalid.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")
)

type Extras map[string]interface{}

type LIMSError struct {
	StatusCode int
	ErrorCode  string
	Message    string
	Extras     *Extras
}

func New(statusCode int, errorCode string, message string) *LIMSError {
	return &LIMSError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e LIMSError) Msg(format string, parts ...interface{}) *LIMSError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e LIMSError) WithExtras(extras Extras) *LIMSError {
	e.Extras = &extras
	return &e
}

func NewInvalidViolations(violations interface{}) *LIMSError {
	// copy ErrInvalidReq as e
	e := *ErrInvalidReq
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *LIMSError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}

// Is reports errors of the same code as equal, so that errors.Is(err, ErrNotFound)
// holds for copies made by Msg and WithExtras.
func (e *LIMSError) Is(target error) bool {
	var t *LIMSError
	if !errors.As(target, &t) {
		return false
	}
	return t.ErrorCode == e.ErrorCode
}

// Extensions implements gqlerrors.ExtendedError.
func (e *LIMSError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{
		"code": e.ErrorCode,
	}
	if e.Extras != nil {
		for k, v := range *e.Extras {
			ext[k] = v
		}
	}
	return ext
}

// From extracts a *LIMSError from the chain of err.
func From(err error) (*LIMSError, bool) {
	var e *LIMSError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
