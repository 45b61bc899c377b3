package devapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Makepad-fr/tada-remote/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T, path string) (*httptest.Server, *Store) {
	t.Helper()
	store, err := NewStore(path)
	require.NoError(t, err)
	store.SetHashCost(bcrypt.MinCost)
	ts := httptest.NewServer(NewServer(store, nil).Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func call(t *testing.T, method, url, token string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func signin(t *testing.T, base string, cred model.Credentials) string {
	t.Helper()
	status, data := call(t, http.MethodPost, base+"/auth/signin", "", cred)
	require.Equal(t, http.StatusOK, status, string(data))
	var resp signinResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestSignupDuplicateEmailIs400(t *testing.T) {
	ts, _ := newTestServer(t, "")
	cred := model.Credentials{Email: "abc@x.com", Password: "password1"}

	status, _ := call(t, http.MethodPost, ts.URL+"/auth/signup", "", cred)
	assert.Equal(t, http.StatusCreated, status)

	status, data := call(t, http.MethodPost, ts.URL+"/auth/signup", "", cred)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(data), "already in use")
}

func TestSigninRejectsBadPassword(t *testing.T) {
	ts, _ := newTestServer(t, "")
	call(t, http.MethodPost, ts.URL+"/auth/signup", "", model.Credentials{Email: "abc@x.com", Password: "password1"})

	status, _ := call(t, http.MethodPost, ts.URL+"/auth/signin", "", model.Credentials{Email: "abc@x.com", Password: "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, http.MethodPost, ts.URL+"/auth/signin", "", model.Credentials{Email: "who@x.com", Password: "password1"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTodosRequireToken(t *testing.T) {
	ts, _ := newTestServer(t, "")

	status, _ := call(t, http.MethodGet, ts.URL+"/todos", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, http.MethodGet, ts.URL+"/todos", "made-up", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestTodoLifecycle(t *testing.T) {
	ts, _ := newTestServer(t, "")
	cred := model.Credentials{Email: "abc@x.com", Password: "password1"}
	call(t, http.MethodPost, ts.URL+"/auth/signup", "", cred)
	tok := signin(t, ts.URL, cred)

	status, data := call(t, http.MethodPost, ts.URL+"/todos", tok, model.CreateTodo{Todo: "buy milk"})
	require.Equal(t, http.StatusCreated, status)
	var created model.Todo
	require.NoError(t, json.Unmarshal(data, &created))
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "buy milk", created.Todo)
	assert.False(t, created.IsCompleted)

	status, data = call(t, http.MethodPut, ts.URL+"/todos/1", tok, model.UpdateTodo{Todo: "buy oat milk", IsCompleted: true})
	require.Equal(t, http.StatusOK, status)
	var updated model.Todo
	require.NoError(t, json.Unmarshal(data, &updated))
	assert.Equal(t, "buy oat milk", updated.Todo)
	assert.True(t, updated.IsCompleted)

	status, _ = call(t, http.MethodPut, ts.URL+"/todos/1", tok, model.UpdateTodo{Todo: ""})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, http.MethodDelete, ts.URL+"/todos/1", tok, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = call(t, http.MethodDelete, ts.URL+"/todos/1", tok, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, data = call(t, http.MethodGet, ts.URL+"/todos", tok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(data))
}

func TestTodosAreScopedPerUser(t *testing.T) {
	ts, _ := newTestServer(t, "")
	a := model.Credentials{Email: "a@x.com", Password: "password1"}
	b := model.Credentials{Email: "b@x.com", Password: "password1"}
	call(t, http.MethodPost, ts.URL+"/auth/signup", "", a)
	call(t, http.MethodPost, ts.URL+"/auth/signup", "", b)
	tokA, tokB := signin(t, ts.URL, a), signin(t, ts.URL, b)

	call(t, http.MethodPost, ts.URL+"/todos", tokA, model.CreateTodo{Todo: "a's"})

	_, data := call(t, http.MethodGet, ts.URL+"/todos", tokB, nil)
	assert.JSONEq(t, `[]`, string(data))

	status, _ := call(t, http.MethodDelete, ts.URL+"/todos/1", tokB, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestStatePersistsAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devapi.json")
	ts, _ := newTestServer(t, path)
	cred := model.Credentials{Email: "abc@x.com", Password: "password1"}
	call(t, http.MethodPost, ts.URL+"/auth/signup", "", cred)
	call(t, http.MethodPost, ts.URL+"/todos", signin(t, ts.URL, cred), model.CreateTodo{Todo: "buy milk"})
	ts.Close()

	ts2, _ := newTestServer(t, path)
	_, data := call(t, http.MethodGet, ts2.URL+"/todos", signin(t, ts2.URL, cred), nil)
	assert.Contains(t, string(data), "buy milk")
}

func TestMetricsEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, "")
	call(t, http.MethodGet, ts.URL+"/health", "", nil)

	status, data := call(t, http.MethodGet, ts.URL+"/metrics", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, strings.Contains(string(data), `tada_devapi_requests_total{method="GET",route="/health",status="200"} 1`), string(data))
}
