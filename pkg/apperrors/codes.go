package apperrors

// Error codes - organized by domain

// Authentication errors (AUTH_*)
const (
	ErrCodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	ErrCodeTokenExpired       = "AUTH_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "AUTH_TOKEN_INVALID"
)

// Authorization errors (AUTHZ_*)
const (
	ErrCodeForbidden   = "AUTHZ_FORBIDDEN"
	ErrCodeInvalidRole = "AUTHZ_INVALID_ROLE"
)

// Validation errors (VALIDATION_*)
const (
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeMissingField     = "VALIDATION_MISSING_FIELD"
	ErrCodeInvalidLanguage  = "VALIDATION_INVALID_LANGUAGE"
	ErrCodeInvalidEmail     = "VALIDATION_INVALID_EMAIL"
	ErrCodeInvalidPassword  = "VALIDATION_INVALID_PASSWORD"
	ErrCodePayloadTooLarge  = "VALIDATION_PAYLOAD_TOO_LARGE"
)

// Resource errors (RESOURCE_*)
const (
	ErrCodeContentNotFound  = "RESOURCE_CONTENT_NOT_FOUND"
	ErrCodeUserNotFound     = "RESOURCE_USER_NOT_FOUND"
	ErrCodeOrderNotFound    = "RESOURCE_ORDER_NOT_FOUND"
	ErrCodeLinkConflict     = "RESOURCE_LINK_CONFLICT"
	ErrCodeResourceExists   = "RESOURCE_ALREADY_EXISTS"
	ErrCodeResourceNotFound = "RESOURCE_NOT_FOUND"
)

// Rate limiting errors (RATE_*)
const (
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

// Internal errors (INTERNAL_*)
const (
	ErrCodeDatabaseError    = "INTERNAL_DATABASE_ERROR"
	ErrCodeStoreUnavailable = "INTERNAL_STORE_UNAVAILABLE"
	ErrCodeS3Error          = "INTERNAL_S3_ERROR"
	ErrCodeMailSendFailed   = "INTERNAL_MAIL_SEND_FAILED"
	ErrCodeUnexpectedError  = "INTERNAL_UNEXPECTED_ERROR"
)
