package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	app := newTestApp(t)
	user := app.register(t, "alice@example.com", "secret")

	access := app.login(t, "alice@example.com", "secret")

	// the token subject must be the registered user's id
	userID, err := app.tokens.Verify(access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "alice@example.com", "secret")

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "alice@example.com", password: "wrong"},
		{name: "unknown email", username: "nobody@example.com", password: "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.doForm(t, "/login", url.Values{
				"username": {tt.username},
				"password": {tt.password},
			})
			// 403, not 401: both causes look identical to the caller
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

func TestLoginMissingFields(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name string
		form url.Values
	}{
		{name: "no username", form: url.Values{"password": {"secret"}}},
		{name: "no password", form: url.Values{"username": {"alice@example.com"}}},
		{name: "empty form", form: url.Values{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.doForm(t, "/login", tt.form)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		})
	}
}
