package todo_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"todos/config"
	"todos/infras/kafka"
	"todos/infras/otel/mocks"
	"todos/internal/domains/todo/model/dto"
	"todos/internal/domains/todo/repository"
	"todos/internal/domains/todo/service"
	"todos/internal/handlers/todo"
	"todos/shared/cache"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{}
	svc := service.New(repository.NewMemory(), cfg, cache.NewNoop(), kafka.NewNoop(), mocks.NewOtel())
	handler := todo.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server
}

func do(t *testing.T, method, url, body string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	defer res.Body.Close()

	buf, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res, string(buf)
}

func TestTodoHandler_Scenario(t *testing.T) {
	server := newServer(t)

	res, body := do(t, http.MethodPost, server.URL+"/todos", `{"title":"buy milk","completed":false}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var created dto.TodoResponse
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.Equal(t, "buy milk", created.Title)
	assert.False(t, created.Completed)

	url := server.URL + "/todos/" + itoa(created.ID)

	res, body = do(t, http.MethodPut, url, `{"title":"buy milk","completed":true}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"id":`+itoa(created.ID)+`,"title":"buy milk","completed":true}`, body)

	res, body = do(t, http.MethodGet, url, "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"id":`+itoa(created.ID)+`,"title":"buy milk","completed":true}`, body)

	res, body = do(t, http.MethodDelete, url, "")
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Empty(t, body)

	res, body = do(t, http.MethodGet, url, "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.JSONEq(t, `{"error":"todo not found"}`, body)
}

func TestTodoHandler_List(t *testing.T) {
	server := newServer(t)

	res, body := do(t, http.MethodGet, server.URL+"/todos", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `[]`, body)

	do(t, http.MethodPost, server.URL+"/todos", `{"title":"A"}`)
	do(t, http.MethodPost, server.URL+"/todos", `{"id":500,"title":"B","completed":true}`)

	_, body = do(t, http.MethodGet, server.URL+"/todos", "")
	assert.JSONEq(t, `[{"id":1,"title":"A","completed":false},{"id":2,"title":"B","completed":true}]`, body)

	_, body = do(t, http.MethodGet, server.URL+"/todos?completed=true", "")
	assert.JSONEq(t, `[{"id":2,"title":"B","completed":true}]`, body)

	_, body = do(t, http.MethodGet, server.URL+"/todos?title=a", "")
	assert.JSONEq(t, `[{"id":1,"title":"A","completed":false}]`, body)
}

func TestTodoHandler_Errors(t *testing.T) {
	server := newServer(t)

	do(t, http.MethodPost, server.URL+"/todos", `{"title":"exists"}`)

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode int
	}{
		{name: "create without title", method: http.MethodPost, path: "/todos", body: `{"completed":true}`, wantCode: http.StatusBadRequest},
		{name: "create with blank title", method: http.MethodPost, path: "/todos", body: `{"title":"  "}`, wantCode: http.StatusBadRequest},
		{name: "create with malformed json", method: http.MethodPost, path: "/todos", body: `{"title":`, wantCode: http.StatusBadRequest},
		{name: "create with trailing data", method: http.MethodPost, path: "/todos", body: `{"title":"x"} garbage`, wantCode: http.StatusBadRequest},
		{name: "update with blank title", method: http.MethodPut, path: "/todos/1", body: `{"title":" ","completed":true}`, wantCode: http.StatusBadRequest},
		{name: "get id overflowing int64", method: http.MethodGet, path: "/todos/99999999999999999999", wantCode: http.StatusBadRequest},
		{name: "get negative id", method: http.MethodGet, path: "/todos/-1", wantCode: http.StatusNotFound},
		{name: "get malformed id", method: http.MethodGet, path: "/todos/abc", wantCode: http.StatusBadRequest},
		{name: "get missing", method: http.MethodGet, path: "/todos/42", wantCode: http.StatusNotFound},
		{name: "update missing", method: http.MethodPut, path: "/todos/42", body: `{"title":"x","completed":true}`, wantCode: http.StatusNotFound},
		{name: "update without completed", method: http.MethodPut, path: "/todos/1", body: `{"title":"x"}`, wantCode: http.StatusBadRequest},
		{name: "update malformed id", method: http.MethodPut, path: "/todos/1.5", body: `{"title":"x","completed":true}`, wantCode: http.StatusBadRequest},
		{name: "delete missing", method: http.MethodDelete, path: "/todos/42", wantCode: http.StatusNotFound},
		{name: "delete malformed id", method: http.MethodDelete, path: "/todos/x", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, body := do(t, tt.method, server.URL+tt.path, tt.body)

			assert.Equal(t, tt.wantCode, res.StatusCode)

			var errBody map[string]string
			require.NoError(t, json.Unmarshal([]byte(body), &errBody))
			assert.NotEmpty(t, errBody["error"])
		})
	}

	_, body := do(t, http.MethodGet, server.URL+"/todos", "")
	assert.JSONEq(t, `[{"id":1,"title":"exists","completed":false}]`, body, "failed requests must not change state")
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
