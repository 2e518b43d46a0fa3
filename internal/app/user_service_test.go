package app

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"microblog/internal/repository"
	"microblog/internal/validation"
)

func registerInput() validation.UserRegisterInput {
	return validation.UserRegisterInput{
		UserID:    "11111111-1111-1111-1111-111111111111",
		Email:     "a@b.com",
		FirstName: "Ann",
		LastName:  "Lee",
		Password:  "longpassword",
	}
}

func TestRegisterThenGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repository.NewMemoryUserRepository())

	created, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "a@b.com", got.Email)
	require.Equal(t, "Ann", got.FirstName)
	require.Equal(t, "Lee", got.LastName)
	require.Nil(t, got.BirthDate)

	// stored as a salted hash, never plaintext
	require.NotEqual(t, "longpassword", got.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("longpassword")))

	// the password never appears in a read-back view
	payload, err := json.Marshal(got)
	require.NoError(t, err)
	var view map[string]any
	require.NoError(t, json.Unmarshal(payload, &view))
	require.NotContains(t, view, "password")
	require.NotContains(t, view, "password_hash")
}

func TestRegisterValidationFailure(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repository.NewMemoryUserRepository())

	in := registerInput()
	in.Email = "not-an-email"
	in.FirstName = ""

	_, err := svc.Register(ctx, in)
	var verr *validation.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 2)

	// nothing was persisted
	users, listErr := svc.List(ctx)
	require.NoError(t, listErr)
	require.Empty(t, users)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repository.NewMemoryUserRepository())

	first, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	second := registerInput()
	second.UserID = "22222222-2222-2222-2222-222222222222"
	_, err = svc.Register(ctx, second)
	require.ErrorIs(t, err, repository.ErrDuplicateKey)

	got, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, first.Email, got.Email)
}

func TestUpdateTouchesOnlyProvidedFields(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repository.NewMemoryUserRepository())

	in := registerInput()
	in.BirthDate = "1990-04-01"
	created, err := svc.Register(ctx, in)
	require.NoError(t, err)

	newName := "X"
	updated, err := svc.Update(ctx, created.ID, validation.UserUpdateInput{FirstName: &newName})
	require.NoError(t, err)
	require.Equal(t, "X", updated.FirstName)
	require.Equal(t, created.LastName, updated.LastName)
	require.Equal(t, created.Email, updated.Email)
	require.NotNil(t, updated.BirthDate)
	require.Equal(t, "1990-04-01", updated.BirthDate.String())
	require.Equal(t, created.PasswordHash, updated.PasswordHash)
}

func TestUpdateMissingUser(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repository.NewMemoryUserRepository())

	name := "X"
	_, err := svc.Update(ctx, "33333333-3333-3333-3333-333333333333", validation.UserUpdateInput{FirstName: &name})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateInvalidMerge(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repository.NewMemoryUserRepository())

	created, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	empty := ""
	_, err = svc.Update(ctx, created.ID, validation.UserUpdateInput{LastName: &empty})
	var verr *validation.ValidationError
	require.ErrorAs(t, err, &verr)

	// the stored record is untouched
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Lee", got.LastName)
}

func TestDeleteThenGet(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repository.NewMemoryUserRepository())

	created, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	deletedID, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, deletedID)

	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Delete(ctx, created.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repository.NewMemoryUserRepository())

	emails := []string{"a@b.com", "b@b.com", "c@b.com"}
	for i, email := range emails {
		in := registerInput()
		in.UserID = ""
		in.Email = email
		in.FirstName = string(rune('A' + i))
		_, err := svc.Register(ctx, in)
		require.NoError(t, err)
	}

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	for i, u := range users {
		require.Equal(t, emails[i], u.Email)
	}
}
