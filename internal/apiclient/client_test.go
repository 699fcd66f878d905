package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/staff-portal/internal/domain"
)

type recordedRequest struct {
	Method string
	Path   string
	Token  string
	Body   map[string]any
}

type recorder struct {
	mu   sync.Mutex
	reqs []recordedRequest
}

func (r *recorder) all() []recordedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedRequest(nil), r.reqs...)
}

func newBackend(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *recorder) {
	t.Helper()

	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := recordedRequest{Method: r.Method, Path: r.URL.Path, Token: r.URL.Query().Get("token")}
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &req.Body)
		}
		rec.mu.Lock()
		rec.reqs = append(rec.reqs, req)
		rec.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	return New(Config{BaseURL: srv.URL + "/api", Timeout: 2 * time.Second}), rec
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestRegisterEmployeeSendsDepartment(t *testing.T) {
	client, seen := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Check your inbox"})
	})

	dept := 2
	resp, err := client.RegisterEmployee(context.Background(), domain.RegistrationRequest{
		Name: "Ada", Email: "ada@example.com", Password: "secret1", DepartmentID: &dept,
	})
	require.NoError(t, err)
	assert.Equal(t, "Check your inbox", resp.Message)

	require.Len(t, seen.all(), 1)
	req := seen.all()[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/users/register-employee", req.Path)
	assert.Equal(t, float64(2), req.Body["departmentId"])
}

func TestRegisterManagerSendsExplicitNullDepartment(t *testing.T) {
	client, seen := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})

	_, err := client.RegisterManager(context.Background(), domain.RegistrationRequest{
		Name: "Grace", Email: "grace@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	req := seen.all()[0]
	assert.Equal(t, "/api/users/register-manager", req.Path)
	value, present := req.Body["departmentId"]
	assert.True(t, present)
	assert.Nil(t, value)
}

func TestLoginDecodesResult(t *testing.T) {
	client, seen := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, domain.LoginResult{Token: "tok", UserID: "u1", Email: "a@b.co", Role: "Employee"})
	})

	res, err := client.Login(context.Background(), domain.Credentials{Email: "a@b.co", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, domain.LoginResult{Token: "tok", UserID: "u1", Email: "a@b.co", Role: "Employee"}, res)
	assert.Equal(t, "a@b.co", seen.all()[0].Body["email"])
}

func TestLoginRejectedCarriesStatusAndBody(t *testing.T) {
	client, _ := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Please verify your email first"})
	})

	_, err := client.Login(context.Background(), domain.Credentials{Email: "a@b.co", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
	assert.Equal(t, "Please verify your email first", client.ErrorMessage(err, "Invalid email or password"))
}

func TestEmptyBodyServerErrorUsesFallback(t *testing.T) {
	client, _ := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Login(context.Background(), domain.Credentials{Email: "a@b.co", Password: "x"})
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Nil(t, apiErr.Body)
	assert.Empty(t, apiErr.Message)
	assert.Equal(t, "Invalid email or password", client.ErrorMessage(err, "Invalid email or password"))
}

func TestVerifyEmailPlainText(t *testing.T) {
	client, seen := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "Email verified successfully")
	})

	res, err := client.VerifyEmail(context.Background(), "abc 123")
	require.NoError(t, err)
	assert.Equal(t, "Email verified successfully", res)
	assert.Equal(t, "/api/users/verify", seen.all()[0].Path)
	assert.Equal(t, "abc 123", seen.all()[0].Token)
}

func TestVerifyEmailJSONString(t *testing.T) {
	client, _ := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, "Verified")
	})

	res, err := client.VerifyEmail(context.Background(), "t")
	require.NoError(t, err)
	assert.Equal(t, "Verified", res)
}

func TestGetDepartments(t *testing.T) {
	client, seen := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []domain.Department{{DepartmentID: 7, DepartmentName: "Legal"}})
	})

	depts, err := client.GetDepartments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Department{{DepartmentID: 7, DepartmentName: "Legal"}}, depts)
	assert.Equal(t, http.MethodGet, seen.all()[0].Method)
}

func TestUnreachableBackend(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	client := New(Config{BaseURL: "http://" + addr + "/api", Timeout: time.Second})
	_, err = client.Login(context.Background(), domain.Credentials{Email: "a@b.co", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, 0, StatusCode(err))
	assert.Equal(t, "Cannot reach server. Is the backend running at http://"+addr+"?", client.ErrorMessage(err, "Invalid email or password"))
}

func TestCancelledContextIsNotSent(t *testing.T) {
	client, seen := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, nil)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetDepartments(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, seen.all())
}
