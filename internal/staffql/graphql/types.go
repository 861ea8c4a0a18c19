package graphql

import (
	"github.com/aussiebroadwan/staffql/internal/staffql/domain"
	"github.com/aussiebroadwan/staffql/internal/staffql/service"
	graphql "github.com/graph-gophers/graphql-go"
)

// userLoggedResolver backs UserLogged. Token is only set right after
// register or login.
type userLoggedResolver struct {
	token      string
	email      string
	userName   string
	position   string
	experience string
}

func sessionResolver(s service.Session) *userLoggedResolver {
	return &userLoggedResolver{
		token:      s.Token,
		email:      s.Email,
		userName:   s.UserName,
		position:   s.Position,
		experience: s.Experience,
	}
}

func profileResolver(u *domain.User) *userLoggedResolver {
	return &userLoggedResolver{
		email:      u.Email,
		userName:   u.UserName,
		position:   u.Position,
		experience: u.Experience,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *userLoggedResolver) Token() *string      { return optional(r.token) }
func (r *userLoggedResolver) Email() string       { return r.email }
func (r *userLoggedResolver) UserName() *string   { return optional(r.userName) }
func (r *userLoggedResolver) Position() *string   { return optional(r.position) }
func (r *userLoggedResolver) Experience() *string { return optional(r.experience) }

type employeeResolver struct {
	e domain.Employee
}

func (r *employeeResolver) ID() graphql.ID    { return graphql.ID(r.e.ID) }
func (r *employeeResolver) FirstName() string { return r.e.FirstName }
func (r *employeeResolver) LastName() string  { return r.e.LastName }
func (r *employeeResolver) Projet() string    { return r.e.Project }
func (r *employeeResolver) Position() *string { return optional(r.e.Position) }
