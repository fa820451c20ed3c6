package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo carries a code plus a message safe to return to clients
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a raw error into a client-safe code and message.
// Database internals stay hidden; the context hint selects the message.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An internal error occurred",
		}
	}

	errStrLower := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    notFoundCode(context),
			Message: notFoundMessage(context),
		}
	}

	// Postgres unique constraint violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "A record with the same unique value already exists",
		}
	}

	// Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "The operation conflicts with related records",
		}
	}

	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "An upstream service could not be reached. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "An internal error occurred. Please try again later",
	}
}

func notFoundCode(context string) string {
	if strings.Contains(strings.ToLower(context), "game") {
		return GameNotFound
	}
	return ResourceNotFound
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "game"):
		return "Game not found"
	case strings.Contains(contextLower, "category"):
		return "Category not found"
	case strings.Contains(contextLower, "platform"):
		return "Platform not found"
	case strings.Contains(contextLower, "developer"):
		return "Developer not found"
	case strings.Contains(contextLower, "publisher"):
		return "Publisher not found"
	}
	return "The requested record was not found"
}
