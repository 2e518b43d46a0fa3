package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignupScenario(t *testing.T) {
	router := newTestRouter(t)

	user := signupUser(t, router)
	require.Equal(t, "11111111-1111-1111-1111-111111111111", user["user_id"])
	require.Equal(t, "a@b.com", user["email"])
	require.Equal(t, "Ann", user["first_name"])
	require.Equal(t, "Lee", user["last_name"])
	require.Nil(t, user["birth_date"])
	require.NotContains(t, user, "password")
	require.NotContains(t, user, "password_hash")

	rec := doJSON(t, router, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users := dataArray(t, rec)
	require.Len(t, users, 1)

	listed, ok := users[0].(map[string]any)
	require.True(t, ok)
	require.Equal(t, user["user_id"], listed["user_id"])
	require.Equal(t, user["email"], listed["email"])
	require.NotContains(t, listed, "password")
}

func TestSignupValidationFailure(t *testing.T) {
	router := newTestRouter(t)

	body := signupBody()
	body["first_name"] = ""
	body["email"] = "not-an-email"

	rec := doJSON(t, router, http.MethodPost, "/signup", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	data := dataObject(t, rec)
	fields, ok := data["fields"].([]any)
	require.True(t, ok)
	require.Len(t, fields, 2)

	names := make(map[string]bool)
	for _, f := range fields {
		field, ok := f.(map[string]any)
		require.True(t, ok)
		names[field["field"].(string)] = true
	}
	require.True(t, names["first_name"])
	require.True(t, names["email"])
}

func TestSignupDuplicateEmail(t *testing.T) {
	router := newTestRouter(t)
	signupUser(t, router)

	body := signupBody()
	body["user_id"] = "22222222-2222-2222-2222-222222222222"
	rec := doJSON(t, router, http.MethodPost, "/signup", body)
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestGetUserNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/users/55555555-5555-5555-5555-555555555555", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateUser(t *testing.T) {
	router := newTestRouter(t)
	user := signupUser(t, router)
	id := user["user_id"].(string)

	rec := doJSON(t, router, http.MethodPut, "/users/"+id+"/update", map[string]any{"first_name": "X"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := dataObject(t, rec)
	require.Equal(t, "X", updated["first_name"])
	require.Equal(t, "Lee", updated["last_name"])
	require.Equal(t, "a@b.com", updated["email"])
}

func TestUpdateUserInvalidMerge(t *testing.T) {
	router := newTestRouter(t)
	user := signupUser(t, router)
	id := user["user_id"].(string)

	rec := doJSON(t, router, http.MethodPut, "/users/"+id+"/update", map[string]any{"last_name": ""})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUpdateUserNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/users/55555555-5555-5555-5555-555555555555/update", map[string]any{"first_name": "X"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteUser(t *testing.T) {
	router := newTestRouter(t)
	user := signupUser(t, router)
	id := user["user_id"].(string)

	rec := doJSON(t, router, http.MethodDelete, "/users/"+id+"/delete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, id, dataObject(t, rec)["deleted"])

	rec = doJSON(t, router, http.MethodGet, "/users/"+id, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/users/"+id+"/delete", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginHandler(t *testing.T) {
	router := newTestRouter(t)
	signupUser(t, router)

	rec := doJSON(t, router, http.MethodPost, "/login", map[string]any{
		"email":    "a@b.com",
		"password": "longpassword",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := dataObject(t, rec)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)

	user, ok := data["user"].(map[string]any)
	require.True(t, ok)
	require.NotContains(t, user, "password")
}

func TestLoginHandlerBadPassword(t *testing.T) {
	router := newTestRouter(t)
	signupUser(t, router)

	rec := doJSON(t, router, http.MethodPost, "/login", map[string]any{
		"email":    "a@b.com",
		"password": "wrongpassword",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
