package graphql

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/staffql/internal/staffql/service"
	"github.com/aussiebroadwan/staffql/pkg/slogx"
)

// Error codes reported under extensions.code.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeAuthentication    = "AUTHENTICATION_FAILED"
	CodeDuplicateIdentity = "DUPLICATE_IDENTITY"
	CodeUnauthenticated   = "UNAUTHENTICATED"
	CodeBadUserInput      = "BAD_USER_INPUT"
	CodeInternalError     = "INTERNAL_SERVER_ERROR"
)

const internalErrorMessage = "internal server error"

// Error is a resolver error carrying a machine-readable code.
type Error struct {
	Message string
	Code    string
}

func (e *Error) Error() string { return e.Message }

// Extensions is picked up by graphql-go and rendered into the response.
func (e *Error) Extensions() map[string]any {
	return map[string]any{"code": e.Code}
}

func codeFor(err error) string {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrEmployeeNotFound):
		return CodeNotFound
	case errors.Is(err, service.ErrAuthentication):
		return CodeAuthentication
	case errors.Is(err, service.ErrDuplicateIdentity):
		return CodeDuplicateIdentity
	case errors.Is(err, service.ErrUnauthenticated):
		return CodeUnauthenticated
	case errors.Is(err, service.ErrInvalidInput):
		return CodeBadUserInput
	default:
		return CodeInternalError
	}
}

// presentError keeps user-facing messages and replaces everything else with a
// generic message after logging it.
func presentError(ctx context.Context, field string, err error) error {
	if err == nil {
		return nil
	}

	var gqlErr *Error
	if errors.As(err, &gqlErr) {
		return gqlErr
	}
	if service.IsUserFacing(err) {
		return &Error{Message: err.Error(), Code: codeFor(err)}
	}

	slogx.FromContext(ctx).Error("resolver failed",
		slog.String("field", field),
		slog.Any("error", err),
	)
	return &Error{Message: internalErrorMessage, Code: CodeInternalError}
}
