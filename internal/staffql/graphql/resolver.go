package graphql

import (
	"context"

	"github.com/aussiebroadwan/staffql/internal/staffql/domain"
	"github.com/aussiebroadwan/staffql/internal/staffql/metrics"
	"github.com/aussiebroadwan/staffql/internal/staffql/reqctx"
	"github.com/aussiebroadwan/staffql/internal/staffql/service"
	graphql "github.com/graph-gophers/graphql-go"
)

// Resolver is the root resolver for both Query and Mutation. Every field
// reads the request context installed by reqctx.Builder.
type Resolver struct {
	Users   *service.IdentityService
	Staff   *service.EmployeeService
	Metrics *metrics.Metrics
}

// done records the operation and shapes err for the client.
func (r *Resolver) done(ctx context.Context, field string, err error) error {
	r.Metrics.ObserveOperation(field, err != nil)
	return presentError(ctx, field, err)
}

type userInput struct {
	Email      string
	Password   string
	UserName   *string
	Position   *string
	Experience *string
}

type employeeInput struct {
	ID        *graphql.ID
	FirstName string
	LastName  string
	Projet    string
	Position  *string
}

func (in *employeeInput) toService() service.EmployeeInput {
	out := service.EmployeeInput{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Project:   in.Projet,
		Position:  in.Position,
	}
	if in.ID != nil {
		out.ID = string(*in.ID)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var errMissingInput = &Error{Message: "input is required", Code: CodeBadUserInput}

func (r *Resolver) Register(ctx context.Context, args struct{ Input *userInput }) (_ *userLoggedResolver, err error) {
	defer func() { err = r.done(ctx, "register", err) }()

	if args.Input == nil {
		return nil, errMissingInput
	}
	in := args.Input

	session, err := r.Users.Register(ctx, reqctx.FromContext(ctx), service.RegisterInput{
		Email:      in.Email,
		Password:   in.Password,
		UserName:   deref(in.UserName),
		Position:   deref(in.Position),
		Experience: deref(in.Experience),
	})
	if err != nil {
		return nil, err
	}
	return sessionResolver(session), nil
}

func (r *Resolver) Login(ctx context.Context, args struct{ Input *userInput }) (_ *userLoggedResolver, err error) {
	defer func() { err = r.done(ctx, "login", err) }()

	if args.Input == nil {
		return nil, errMissingInput
	}

	session, err := r.Users.Login(ctx, reqctx.FromContext(ctx), service.LoginInput{
		Email:    args.Input.Email,
		Password: args.Input.Password,
	})
	if err != nil {
		return nil, err
	}
	return sessionResolver(session), nil
}

// Me resolves to null for unauthenticated requests.
func (r *Resolver) Me(ctx context.Context) (_ *userLoggedResolver, err error) {
	defer func() { err = r.done(ctx, "me", err) }()

	user, err := r.Users.Me(ctx, reqctx.FromContext(ctx))
	if err != nil || user == nil {
		return nil, err
	}
	return profileResolver(user), nil
}

func (r *Resolver) Employees(ctx context.Context, args struct {
	Projet   *string
	Position *string
}) (_ *[]*employeeResolver, err error) {
	defer func() { err = r.done(ctx, "employees", err) }()

	list, err := r.Staff.List(ctx, reqctx.FromContext(ctx), domain.EmployeeFilter{
		Project:  deref(args.Projet),
		Position: deref(args.Position),
	})
	if err != nil {
		return nil, err
	}

	out := make([]*employeeResolver, len(list))
	for i := range list {
		out[i] = &employeeResolver{e: list[i]}
	}
	return &out, nil
}

func (r *Resolver) Employee(ctx context.Context, args struct{ ID graphql.ID }) (_ *employeeResolver, err error) {
	defer func() { err = r.done(ctx, "employee", err) }()

	e, err := r.Staff.Get(ctx, reqctx.FromContext(ctx), string(args.ID))
	if err != nil || e == nil {
		return nil, err
	}
	return &employeeResolver{e: *e}, nil
}

func (r *Resolver) AddEmploye(ctx context.Context, args struct{ Input *employeeInput }) (_ *employeeResolver, err error) {
	defer func() { err = r.done(ctx, "addEmploye", err) }()

	if args.Input == nil {
		return nil, errMissingInput
	}

	e, err := r.Staff.Create(ctx, reqctx.FromContext(ctx), args.Input.toService())
	if err != nil {
		return nil, err
	}
	return &employeeResolver{e: e}, nil
}

// UpdateEmploye returns the record as it is after the update.
func (r *Resolver) UpdateEmploye(ctx context.Context, args struct{ Input *employeeInput }) (_ *employeeResolver, err error) {
	defer func() { err = r.done(ctx, "updateEmploye", err) }()

	if args.Input == nil {
		return nil, errMissingInput
	}

	e, err := r.Staff.Update(ctx, reqctx.FromContext(ctx), args.Input.toService())
	if err != nil {
		return nil, err
	}
	return &employeeResolver{e: e}, nil
}

// RemoveEmploye is false when there was nothing to remove.
func (r *Resolver) RemoveEmploye(ctx context.Context, args struct{ ID graphql.ID }) (_ *bool, err error) {
	defer func() { err = r.done(ctx, "removeEmploye", err) }()

	removed, err := r.Staff.Remove(ctx, reqctx.FromContext(ctx), string(args.ID))
	if err != nil {
		return nil, err
	}
	return &removed, nil
}
