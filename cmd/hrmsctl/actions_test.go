package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/hrms_gateway/internal/client"
	"github.com/locvowork/hrms_gateway/internal/config"
	"github.com/locvowork/hrms_gateway/internal/credential"
	"github.com/locvowork/hrms_gateway/internal/domain"
	"github.com/locvowork/hrms_gateway/internal/service"
)

func newEnv(t *testing.T, h http.HandlerFunc, a args) *env {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	endpoints := config.Endpoints{}
	for _, d := range domain.Domains() {
		base := ts.URL + "/api/v1"
		switch d {
		case domain.DomainEmployee:
			endpoints.Employee = base
		case domain.DomainAttendance:
			endpoints.Attendance = base
		case domain.DomainLeave:
			endpoints.Leave = base
		case domain.DomainUser:
			endpoints.User = base
		case domain.DomainAudit:
			endpoints.Audit = base
		case domain.DomainNotification:
			endpoints.Notification = base
		case domain.DomainCompliance:
			endpoints.Compliance = base
		}
	}

	store := credential.NewMemoryStore()
	clients, err := client.New(endpoints, credential.StoreProvider(store))
	require.NoError(t, err)
	return &env{args: a, store: store, svc: service.NewServices(clients, 10, 2)}
}

func TestLoginThenGetEmployee(t *testing.T) {
	var auth, path string
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		auth, path = r.Header.Get("Authorization"), r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":7,"name":"Ada Lovelace"}`)
	}, args{token: "tok-1", id: 7})

	ctx := context.Background()
	_, err := actions["login"](ctx, e)
	require.NoError(t, err)

	got, err := actions["employee.get"](ctx, e)
	require.NoError(t, err)
	assert.Equal(t, 7, got.(*domain.Employee).ID)
	assert.Equal(t, "Bearer tok-1", auth)
	assert.Equal(t, "/api/v1/employees/7", path)

	_, err = actions["logout"](ctx, e)
	require.NoError(t, err)
	_, ok, err := e.store.Get(ctx, credential.TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoginRequiresToken(t *testing.T) {
	e := newEnv(t, func(http.ResponseWriter, *http.Request) {}, args{})
	_, err := actions["login"](context.Background(), e)
	assert.ErrorContains(t, err, "-token")
}

func TestPayloadFromFile(t *testing.T) {
	var body []byte
	path := filepath.Join(t.TempDir(), "leave.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"status":"APPROVED","approved_by":2}`), 0o600))

	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":3,"status":"APPROVED"}`)
	}, args{id: 3, data: "@" + path})

	_, err := actions["leave.update-status"](context.Background(), e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"APPROVED","approved_by":2}`, string(body))
}

func TestPayloadRequired(t *testing.T) {
	e := newEnv(t, func(http.ResponseWriter, *http.Request) {}, args{})
	_, err := actions["employee.create"](context.Background(), e)
	assert.ErrorContains(t, err, "-data")
}

func TestExportToFile(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("offset") == "0" {
			io.WriteString(w, `[{"id":1,"name":"Ada Lovelace"}]`)
			return
		}
		io.WriteString(w, `[]`)
	}, args{format: "csv", out: filepath.Join(t.TempDir(), "employees.csv")})

	_, err := actions["export.employees"](context.Background(), e)
	require.NoError(t, err)

	b, err := os.ReadFile(e.args.out)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(b, []byte("Ada")))
}

func TestExportToStdoutCarriesOnlyTheFile(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("offset") == "0" {
			io.WriteString(w, `[{"id":1,"name":"Ada Lovelace"}]`)
			return
		}
		io.WriteString(w, `[]`)
	}, args{format: "csv"})

	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w
	initLogging(&config.EnvConfig{LOG_LEVEL: "info"})
	_, runErr := actions["export.employees"](context.Background(), e)
	os.Stdout = stdout
	require.NoError(t, w.Close())

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, runErr)
	assert.True(t, bytes.HasPrefix(out, []byte("ID,Name,")), "stdout: %q", out)
	assert.NotContains(t, string(out), `"level"`)
	assert.Contains(t, string(out), "Ada Lovelace")
}
