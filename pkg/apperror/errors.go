package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
// Two AppErrors match under errors.Is when their codes are equal.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *AppError carrying the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Error codes. Callers compare with errors.Is against the constructors
// below, or read AppError.Code directly.
const (
	CodeAltCurrencyAmount = "VAL_001"
	CodeValidation        = "VAL_002"
	CodePayloadTooLarge   = "VAL_003"
	CodeKeyNotFound       = "KEY_001"
	CodeInvalidKeyFormat  = "KEY_002"
	CodeKeyUnreadable     = "KEY_003"
	CodeSigningFailure    = "SIG_001"
	CodeWrongInputType    = "RSP_001"
	CodeResponseSignature = "RSP_002"
	CodeMalformedResponse = "RSP_003"
	CodeInvalidToken      = "AUTH_001"
	CodeRateLimit         = "RATE_001"
	CodeInternal          = "SYS_001"
)

// ---- Input validation (VAL) ----

func ErrAltCurrencyAmount() *AppError {
	return New(CodeAltCurrencyAmount, "Invalid alternate currency/amount combination: both or neither must be set", http.StatusBadRequest)
}

// Validation returns a structural input error.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

func ErrPayloadTooLarge() *AppError {
	return New(CodePayloadTooLarge, "Request body too large", http.StatusRequestEntityTooLarge)
}

// ---- Signing key (KEY) ----

// ErrKeyNotFound keeps path in the wrapped cause so it reaches logs but not
// clients.
func ErrKeyNotFound(path string, err error) *AppError {
	cause := fmt.Errorf("key file %s", path)
	if err != nil {
		cause = fmt.Errorf("key file %s: %w", path, err)
	}
	return Wrap(CodeKeyNotFound, "Signing key not found", http.StatusInternalServerError, cause)
}

func ErrInvalidKeyFormat(err error) *AppError {
	return Wrap(CodeInvalidKeyFormat, "Invalid key format: expected a PEM-encoded RSA private key (*.pem)", http.StatusInternalServerError, err)
}

func ErrKeyUnreadable(err error) *AppError {
	return Wrap(CodeKeyUnreadable, "Signing key could not be read", http.StatusInternalServerError, err)
}

// ---- Signing (SIG) ----

func ErrSigningFailure(err error) *AppError {
	return Wrap(CodeSigningFailure, "Signing failed", http.StatusInternalServerError, err)
}

// ---- Gateway responses (RSP) ----

func ErrWrongInputType() *AppError {
	return New(CodeWrongInputType, "Expected the response as UTF-8 XML text", http.StatusUnsupportedMediaType)
}

func ErrResponseSignature(err error) *AppError {
	return Wrap(CodeResponseSignature, "Response signature is invalid", http.StatusBadGateway, err)
}

func ErrMalformedResponse(err error) *AppError {
	return Wrap(CodeMalformedResponse, "Response could not be parsed", http.StatusBadGateway, err)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimit, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}
