package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"postboard/internal/handlers"
	"postboard/internal/hash"
	"postboard/internal/middleware"
	"postboard/internal/token"
)

const testSecret = "test-secret"

type testApp struct {
	store  *fakeStore
	router http.Handler
	tokens *token.Service
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	tokens, err := token.NewService(testSecret, 30*time.Minute)
	require.NoError(t, err)

	st := newFakeStore()
	h := handlers.New(st, st, st, tokens, hash.Bcrypt{Cost: bcrypt.MinCost})

	router := handlers.NewRouter(h, handlers.RouterConfig{
		Auth: middleware.Auth(tokens, st),
	})

	return &testApp{store: st, router: router, tokens: tokens}
}

// doJSON sends a request with an optional JSON body and bearer token.
func (app *testApp) doJSON(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) doForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

type userResp struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type postResp struct {
	ID        int64  `json:"id"`
	OwnerID   int64  `json:"owner_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

type postWithVotesResp struct {
	Post  postResp `json:"Post"`
	Votes int64    `json:"Votes"`
}

func (app *testApp) register(t *testing.T, email, password string) userResp {
	t.Helper()
	rec := app.doJSON(t, http.MethodPost, "/users/", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeBody[userResp](t, rec)
}

func (app *testApp) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := app.doForm(t, "/login", url.Values{
		"username": {email},
		"password": {password},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[map[string]string](t, rec)
	require.Equal(t, "bearer", body["token_type"])
	require.NotEmpty(t, body["access_token"])
	return body["access_token"]
}

func (app *testApp) createPost(t *testing.T, bearer, title, content string) postResp {
	t.Helper()
	rec := app.doJSON(t, http.MethodPost, "/posts/", bearer, map[string]string{
		"title":   title,
		"content": content,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeBody[postResp](t, rec)
}
