package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Attendance ────────────────────────────────────────────────────
	ErrStoreUnavailable ErrCode = "STORE_UNAVAILABLE"
	ErrPartialCommit    ErrCode = "PARTIAL_COMMIT"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrValidation:
		return "The submitted data is invalid."
	case ErrInvalidID:
		return "The resource ID is not valid."
	case ErrInvalidPayload:
		return "The request body could not be read."

	case ErrNotFound:
		return "The requested resource was not found."

	case ErrStoreUnavailable:
		return "The record store could not be reached. Nothing was changed."
	case ErrPartialCommit:
		return "Some attendance rows could not be saved. Retry to save the remaining rows."

	case ErrRateLimitExceeded:
		return "Too many requests. Please slow down."

	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unknown error occurred."
	}
}
