package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uinify-backend/internal/bootstrap"
	"uinify-backend/internal/config"
	"uinify-backend/internal/platform/database"
	"uinify-backend/internal/repository"
	"uinify-backend/internal/transport/http/middleware"
)

type userBody struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type componentBody struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Content *string `json:"content"`
}

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	log := logrus.New()
	log.Out = io.Discard

	db, err := database.New(context.Background(), config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   ":memory:",
	}, log)
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	app := &bootstrap.App{
		Config: &config.Config{
			App:  config.AppConfig{Name: "uinify-test", Env: "test", GinMode: gin.TestMode},
			CORS: config.CORSConfig{AllowOrigins: []string{"http://localhost:9000"}},
		},
		Log:       log,
		DB:        db,
		StartedAt: time.Now(),
	}
	return NewRouter(app)
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rr)["error"]
}

func createUser(t *testing.T, router http.Handler, username string) userBody {
	t.Helper()
	rr := doRequest(t, router, http.MethodPost, "/user", fmt.Sprintf(`{"username":%q,"password":"pw"}`, username))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return decode[userBody](t, rr)
}

func createComponent(t *testing.T, router http.Handler, userID uint, name, content string) componentBody {
	t.Helper()
	body := fmt.Sprintf(`{"user_id":%d,"name":%q,"content":%q}`, userID, name, content)
	rr := doRequest(t, router, http.MethodPost, "/component", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return decode[componentBody](t, rr)
}

func TestUserEndpoints(t *testing.T) {
	router := setupRouter(t)

	t.Run("list is empty array", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/users", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	var alice userBody
	t.Run("create hides password", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodPost, "/user", `{"username":"alice","password":"hunter2"}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "password")
		assert.NotContains(t, rr.Body.String(), "hunter2")
		alice = decode[userBody](t, rr)
		assert.NotZero(t, alice.ID)
		assert.Equal(t, "alice", alice.Username)
	})

	t.Run("get", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, fmt.Sprintf("/user/%d", alice.ID), "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, alice, decode[userBody](t, rr))
	})

	t.Run("duplicate username fails with 500", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodPost, "/user", `{"username":"alice","password":"other"}`)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotEmpty(t, errorMessage(t, rr))

		list := doRequest(t, router, http.MethodGet, "/users", "")
		users := decode[[]userBody](t, list)
		assert.Len(t, users, 1)
	})

	t.Run("components of user without components", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, fmt.Sprintf("/user/%d/components", alice.ID), "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("delete", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/user/%d", alice.ID), "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, alice, decode[userBody](t, rr))

		rr = doRequest(t, router, http.MethodGet, fmt.Sprintf("/user/%d", alice.ID), "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCreateUserValidation(t *testing.T) {
	router := setupRouter(t)

	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing password", `{"username":"alice"}`, "Missing 'password' key."},
		{"first missing key wins", `{}`, "Missing 'username' key."},
		{"invalid json", `{"username":`, "Invalid JSON body."},
		{"not an object", `["alice","pw"]`, "Invalid JSON body."},
		{"null body", `null`, "Invalid JSON body."},
		{"wrong type", `{"username":7,"password":"pw"}`, "Invalid 'username' value."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(t, router, http.MethodPost, "/user", tc.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tc.want, errorMessage(t, rr))
		})
	}

	rr := doRequest(t, router, http.MethodGet, "/users", "")
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestComponentLifecycle(t *testing.T) {
	router := setupRouter(t)
	alice := createUser(t, router, "alice")

	created := createComponent(t, router, alice.ID, "navbar", "<nav/>")
	assert.NotZero(t, created.ID)
	assert.Equal(t, "navbar", created.Name)
	require.NotNil(t, created.Content)
	assert.Equal(t, "<nav/>", *created.Content)

	path := fmt.Sprintf("/component/%d", created.ID)

	rr := doRequest(t, router, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, created, decode[componentBody](t, rr))

	rr = doRequest(t, router, http.MethodGet, "/components", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []componentBody{created}, decode[[]componentBody](t, rr))

	rr = doRequest(t, router, http.MethodGet, fmt.Sprintf("/user/%d/components", alice.ID), "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []componentBody{created}, decode[[]componentBody](t, rr))

	rr = doRequest(t, router, http.MethodPut, path, `{"name":"footer","content":null}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"name":"footer","content":null}`, created.ID), rr.Body.String())

	rr = doRequest(t, router, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"name":"footer","content":null}`, created.ID), rr.Body.String())

	rr = doRequest(t, router, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"name":"footer","content":null}`, created.ID), rr.Body.String())

	rr = doRequest(t, router, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, fmt.Sprintf("Component '%d' not found.", created.ID), errorMessage(t, rr))

	rr = doRequest(t, router, http.MethodGet, fmt.Sprintf("/user/%d/components", alice.ID), "")
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestCreateComponentForUnknownUserLeavesNothing(t *testing.T) {
	router := setupRouter(t)

	rr := doRequest(t, router, http.MethodPost, "/component", `{"user_id":99,"name":"ghost","content":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotEmpty(t, errorMessage(t, rr))

	rr = doRequest(t, router, http.MethodGet, "/components", "")
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestComponentValidation(t *testing.T) {
	router := setupRouter(t)
	alice := createUser(t, router, "alice")
	created := createComponent(t, router, alice.ID, "card", "body")
	path := fmt.Sprintf("/component/%d", created.ID)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		want   string
	}{
		{"post missing user_id", http.MethodPost, "/component", `{"name":"a","content":"b"}`, "Missing 'user_id' key."},
		{"post missing content", http.MethodPost, "/component", `{"user_id":1,"name":"a"}`, "Missing 'content' key."},
		{"post bad user_id", http.MethodPost, "/component", `{"user_id":"one","name":"a","content":"b"}`, "Invalid 'user_id' value."},
		{"post negative user_id", http.MethodPost, "/component", `{"user_id":-1,"name":"a","content":"b"}`, "Invalid 'user_id' value."},
		{"post null name", http.MethodPost, "/component", `{"user_id":1,"name":null,"content":"b"}`, "Invalid 'name' value."},
		{"put missing name", http.MethodPut, path, `{"content":"b"}`, "Missing 'name' key."},
		{"put missing content", http.MethodPut, path, `{"name":"a"}`, "Missing 'content' key."},
		{"put bad content", http.MethodPut, path, `{"name":"a","content":42}`, "Invalid 'content' value."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(t, router, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tc.want, errorMessage(t, rr))
		})
	}

	rr := doRequest(t, router, http.MethodGet, path, "")
	assert.Equal(t, created, decode[componentBody](t, rr))
}

func TestUnknownIDsReturn404(t *testing.T) {
	router := setupRouter(t)

	cases := []struct {
		method string
		path   string
		body   string
		want   string
	}{
		{http.MethodGet, "/user/42", "", "User '42' not found."},
		{http.MethodDelete, "/user/42", "", "User '42' not found."},
		{http.MethodGet, "/component/42", "", "Component '42' not found."},
		{http.MethodPut, "/component/42", `{"name":"a","content":"b"}`, "Component '42' not found."},
		{http.MethodDelete, "/component/42", "", "Component '42' not found."},
		{http.MethodGet, "/component/abc", "", "Component 'abc' not found."},
		{http.MethodGet, "/user/-1", "", "User '-1' not found."},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rr := doRequest(t, router, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusNotFound, rr.Code)
			assert.Equal(t, tc.want, errorMessage(t, rr))
		})
	}
}

func TestDeleteUserKeepsComponents(t *testing.T) {
	router := setupRouter(t)
	alice := createUser(t, router, "alice")
	created := createComponent(t, router, alice.ID, "logo", "svg")

	rr := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/user/%d", alice.ID), "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, router, http.MethodGet, fmt.Sprintf("/component/%d", created.ID), "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, router, http.MethodGet, fmt.Sprintf("/user/%d/components", alice.ID), "")
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestHealthzAndRequestID(t *testing.T) {
	router := setupRouter(t)

	rr := doRequest(t, router, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(middleware.HeaderRequestID))

	body := decode[map[string]any](t, rr)
	deps := body["dependencies"].(map[string]any)
	assert.Contains(t, deps, "database")
	assert.NotContains(t, deps, "redis")

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(middleware.HeaderRequestID))
}

func TestNoRouteAndCORS(t *testing.T) {
	router := setupRouter(t)

	rr := doRequest(t, router, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Not found.", errorMessage(t, rr))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Origin", "http://localhost:9000")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:9000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCreateUserWithLongPassword(t *testing.T) {
	router := setupRouter(t)

	body := fmt.Sprintf(`{"username":"long","password":%q}`, strings.Repeat("a", 80))
	rr := doRequest(t, router, http.MethodPost, "/user", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "long", decode[userBody](t, rr).Username)
}

func TestUpdateWithNonIntegerIDIsNotFound(t *testing.T) {
	router := setupRouter(t)

	for _, body := range []string{`{}`, `{"name":"a","content":"b"}`, `not json`} {
		rr := doRequest(t, router, http.MethodPut, "/component/abc", body)
		assert.Equal(t, http.StatusNotFound, rr.Code, body)
		assert.Equal(t, "Component 'abc' not found.", errorMessage(t, rr))
	}
}
