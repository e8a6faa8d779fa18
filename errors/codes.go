package errors

// ErrorCode is a machine-readable error code.
type ErrorCode string

// Registration errors
const (
	// ErrCodeDuplicateUsername indicates the username is already taken.
	ErrCodeDuplicateUsername ErrorCode = "DUPLICATE_USERNAME"
	// ErrCodeDuplicateEmail indicates the email is already registered.
	ErrCodeDuplicateEmail ErrorCode = "DUPLICATE_EMAIL"
)

// Authentication errors
const (
	// ErrCodeInvalidCredentials indicates the username/password pair did not
	// authenticate. It deliberately does not distinguish an unknown username
	// from a wrong password.
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	// ErrCodeUnauthenticated indicates a missing, malformed, expired, or
	// otherwise invalid bearer token.
	ErrCodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the request body or parameters are invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected server-side failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeDatabaseError indicates a database failure.
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeDatabaseError: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
