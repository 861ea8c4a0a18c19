package staffsdk

import "encoding/json"

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of critical dependencies (readyz only).
type HealthChecks struct {
	Database string `json:"database"`
}

// UserLogged is the profile returned by register, login and me. Token is
// only set by register and login.
type UserLogged struct {
	Token      *string `json:"token"`
	Email      string  `json:"email"`
	UserName   *string `json:"userName"`
	Position   *string `json:"position"`
	Experience *string `json:"experience"`
}

// RegisterInput mirrors the UserInput GraphQL type.
type RegisterInput struct {
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	UserName   *string `json:"userName,omitempty"`
	Position   *string `json:"position,omitempty"`
	Experience *string `json:"experience,omitempty"`
}

type Employee struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Project   string  `json:"projet"`
	Position  *string `json:"position"`
}

// EmployeeInput mirrors the EmployeeInput GraphQL type. ID is only used by
// updates.
type EmployeeInput struct {
	ID        string  `json:"id,omitempty"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Project   string  `json:"projet"`
	Position  *string `json:"position,omitempty"`
}

// EmployeeFilter narrows Employees. Empty fields are not sent.
type EmployeeFilter struct {
	Project  string
	Position string
}

type graphqlRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError is one entry of a response's errors list.
type GraphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Code returns extensions.code, or "" if absent.
func (e GraphQLError) Code() string {
	code, _ := e.Extensions["code"].(string)
	return code
}
