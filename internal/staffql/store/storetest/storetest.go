// Package storetest holds the repository contract shared by every store driver.
package storetest

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/staffql/internal/staffql/domain"
	"github.com/aussiebroadwan/staffql/internal/staffql/store"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, migrated and empty store.
type Factory func(t *testing.T) store.Store

// Run exercises the Users and Employees contracts against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("Employees", func(t *testing.T) { testEmployees(t, newStore(t)) })
	t.Run("EmployeeFilters", func(t *testing.T) { testEmployeeFilters(t, newStore(t)) })
	t.Run("UnknownIDs", func(t *testing.T) { testUnknownIDs(t, newStore(t)) })
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()

	created, err := s.Users().CreateUser(ctx, domain.User{
		Email:        "a@x.com",
		PasswordHash: "$2a$04$hash",
		UserName:     "alice",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	byID, err := s.Users().GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", byID.Email)
	require.Equal(t, "alice", byID.UserName)
	require.Equal(t, "$2a$04$hash", byID.PasswordHash)

	byEmail, err := s.Users().GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)

	_, err = s.Users().CreateUser(ctx, domain.User{Email: "a@x.com", PasswordHash: "other"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = s.Users().GetUserByEmail(ctx, "b@x.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testEmployees(t *testing.T, s store.Store) {
	ctx := context.Background()

	empty, err := s.Employees().ListEmployees(ctx)
	require.NoError(t, err)
	require.Empty(t, empty)

	ada, err := s.Employees().CreateEmployee(ctx, domain.Employee{
		FirstName: "Ada", LastName: "Lovelace", Project: "engine", Position: "lead",
	})
	require.NoError(t, err)
	require.NotEmpty(t, ada.ID)

	alan, err := s.Employees().CreateEmployee(ctx, domain.Employee{
		FirstName: "Alan", LastName: "Turing", Project: "bombe",
	})
	require.NoError(t, err)

	all, err := s.Employees().ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, ada.ID, all[0].ID)
	require.Equal(t, alan.ID, all[1].ID)

	got, err := s.Employees().GetEmployeeByID(ctx, ada.ID)
	require.NoError(t, err)
	require.Equal(t, "Lovelace", got.LastName)
	require.Equal(t, "lead", got.Position)

	// Position left untouched when nil.
	updated, err := s.Employees().UpdateEmployee(ctx, domain.EmployeeUpdate{
		ID: ada.ID, FirstName: "Augusta", LastName: "King", Project: "engine",
	})
	require.NoError(t, err)
	require.Equal(t, "Augusta", updated.FirstName)
	require.Equal(t, "King", updated.LastName)
	require.Equal(t, "lead", updated.Position)

	pos := "analyst"
	updated, err = s.Employees().UpdateEmployee(ctx, domain.EmployeeUpdate{
		ID: ada.ID, FirstName: "Augusta", LastName: "King", Project: "engine", Position: &pos,
	})
	require.NoError(t, err)
	require.Equal(t, "analyst", updated.Position)

	require.NoError(t, s.Employees().DeleteEmployee(ctx, ada.ID))
	require.ErrorIs(t, s.Employees().DeleteEmployee(ctx, ada.ID), store.ErrNotFound)

	_, err = s.Employees().GetEmployeeByID(ctx, ada.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	all, err = s.Employees().ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func testEmployeeFilters(t *testing.T, s store.Store) {
	ctx := context.Background()

	for _, e := range []domain.Employee{
		{FirstName: "A", LastName: "One", Project: "p1", Position: "dev"},
		{FirstName: "B", LastName: "Two", Project: "p1", Position: "ops"},
		{FirstName: "C", LastName: "Three", Project: "p2", Position: "dev"},
	} {
		_, err := s.Employees().CreateEmployee(ctx, e)
		require.NoError(t, err)
	}

	got, err := s.Employees().FindEmployees(ctx, domain.EmployeeFilter{Project: "p1"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = s.Employees().FindEmployees(ctx, domain.EmployeeFilter{Position: "dev"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = s.Employees().FindEmployees(ctx, domain.EmployeeFilter{Project: "p1", Position: "dev"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "One", got[0].LastName)

	got, err = s.Employees().FindEmployees(ctx, domain.EmployeeFilter{Project: "none"})
	require.NoError(t, err)
	require.Empty(t, got)
}

func testUnknownIDs(t *testing.T, s store.Store) {
	ctx := context.Background()

	for _, id := range []string{"", "not-an-id", "01HZZZZZZZZZZZZZZZZZZZZZZZ", "507f1f77bcf86cd799439011"} {
		_, err := s.Users().GetUserByID(ctx, id)
		require.ErrorIs(t, err, store.ErrNotFound, "user id %q", id)

		_, err = s.Employees().GetEmployeeByID(ctx, id)
		require.ErrorIs(t, err, store.ErrNotFound, "employee id %q", id)

		_, err = s.Employees().UpdateEmployee(ctx, domain.EmployeeUpdate{ID: id, FirstName: "x", LastName: "y", Project: "z"})
		require.ErrorIs(t, err, store.ErrNotFound, "update id %q", id)

		require.ErrorIs(t, s.Employees().DeleteEmployee(ctx, id), store.ErrNotFound, "delete id %q", id)
	}
}
