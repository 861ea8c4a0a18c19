package staffsdk

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes reported by the server under extensions.code.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeAuthentication    = "AUTHENTICATION_FAILED"
	CodeDuplicateIdentity = "DUPLICATE_IDENTITY"
	CodeUnauthenticated   = "UNAUTHENTICATED"
	CodeBadUserInput      = "BAD_USER_INPUT"
	CodeInternalError     = "INTERNAL_SERVER_ERROR"
)

// Error is returned when the server answers with a GraphQL errors list.
type Error struct {
	Errors []GraphQLError
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ge := range e.Errors {
		msgs[i] = ge.Message
	}
	return "staffql: " + strings.Join(msgs, "; ")
}

// Code returns the code of the first error.
func (e *Error) Code() string {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Code()
}

// Message returns the message of the first error.
func (e *Error) Message() string {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Message
}

// IsCode reports whether err is an *Error whose first code equals code.
func IsCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code() == code
}

// HTTPError is returned for non-GraphQL failures such as a 400 on a
// malformed request or a 503 from readyz.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("staffql: unexpected status %d: %s", e.StatusCode, e.Body)
}
