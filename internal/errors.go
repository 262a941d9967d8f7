package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
	ErrorTypeExternal     ErrorType = "EXTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidAmount    ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"
	ErrCodeInvalidOwner     ErrorCode = "INVALID_OWNER"

	ErrCodeEntityNotFound ErrorCode = "ENTITY_NOT_FOUND"
	ErrCodeEntityInactive ErrorCode = "ENTITY_INACTIVE"

	ErrCodeInvalidExpenseStatus ErrorCode = "INVALID_EXPENSE_STATUS"
	ErrCodeDuplicateExpense     ErrorCode = "DUPLICATE_EXPENSE"
	ErrCodeRejectionReason      ErrorCode = "REJECTION_REASON_REQUIRED"

	ErrCodeDefaultExists ErrorCode = "DEFAULT_RESOURCE_EXISTS"

	ErrCodeUnsupportedFileFormat ErrorCode = "UNSUPPORTED_FILE_FORMAT"
	ErrCodeExtensionChange       ErrorCode = "FILE_EXTENSION_CHANGE"
	ErrCodeFileDeleteDenied      ErrorCode = "FILE_DELETE_DENIED"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	ErrCodePaymentFailed ErrorCode = "PAYMENT_FAILED"

	ErrCodeAccessDenied ErrorCode = "ACCESS_DENIED"
)

// AppError is a caller-visible failure: a business-rule violation or a bad
// reference, never an infrastructure fault. Infrastructure errors stay plain
// errors and propagate to the transport layer untranslated.
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewExternalError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeExternal,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadGateway,
	}
}

var (
	ErrInvalidCredentials = NewUnauthorizedError("Invalid username or password", ErrCodeInvalidCredentials)
	ErrUserInactive       = NewForbiddenError("User account is inactive", ErrCodeUserInactive)
	ErrInvalidToken       = NewUnauthorizedError("Invalid token", ErrCodeInvalidToken)
)

// NotFound builds the shared "{entity} not found" failure used by every
// exists-and-active reference check.
func NotFound(entityName string) *AppError {
	return NewNotFoundError(fmt.Sprintf("%s not found", entityName), ErrCodeEntityNotFound)
}

// Inactive builds the shared "{entity} is inactive" failure.
func Inactive(entityName string) *AppError {
	return NewValidationError(fmt.Sprintf("%s is inactive", entityName), ErrCodeEntityInactive)
}

// IsMissingOrInactive reports whether err is the shared not-found or inactive
// reference failure, as opposed to an infrastructure fault.
func IsMissingOrInactive(err error) bool {
	appErr, ok := IsAppError(err)
	return ok && (appErr.Code == ErrCodeEntityNotFound || appErr.Code == ErrCodeEntityInactive)
}

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType `json:"type"`
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
	})
}
