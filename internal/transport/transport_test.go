package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ValidatesBaseAddress(t *testing.T) {
	for _, addr := range []string{"", "localhost:8001", "ftp://host/api", "http://", "://bad"} {
		_, err := New(addr)
		assert.Error(t, err, addr)
	}

	tr, err := New("http://localhost:8001/api/v1/?x=1#frag")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8001/api/v1", tr.BaseURL())
	assert.Equal(t, "localhost:8001", tr.Domain())
}

func TestNew_DefaultHeaders(t *testing.T) {
	tr, err := New("http://localhost:8001/api/v1")
	require.NoError(t, err)
	h := tr.Header()
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.Equal(t, "application/json", h.Get("Accept"))
}

func TestNew_TransportsDoNotShareHeaders(t *testing.T) {
	a, err := New("http://localhost:8001", WithHeader("X-Tenant", "a"))
	require.NoError(t, err)
	b, err := New("http://localhost:8002")
	require.NoError(t, err)

	a.Header().Set("X-Mutated", "1")
	assert.Equal(t, "a", a.Header().Get("X-Tenant"))
	assert.Empty(t, a.Header().Get("X-Mutated"))
	assert.Empty(t, b.Header().Get("X-Tenant"))
}

func TestDo_SendsJSONAndDecodes(t *testing.T) {
	var gotBody, gotType, gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody, gotType, gotPath = string(raw), r.Header.Get("Content-Type"), r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"name":"x"}`))
	}))
	defer ts.Close()

	tr, err := New(ts.URL + "/api/v1/")
	require.NoError(t, err)

	var out struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, tr.Post(context.Background(), "items/", map[string]string{"name": "x"}, &out))
	assert.Equal(t, 7, out.ID)
	assert.Equal(t, `{"name":"x"}`, gotBody)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "/api/v1/items/", gotPath)
}

func TestDo_NilBodySendsNothing(t *testing.T) {
	var length int64 = -2
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		length = int64(len(raw))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	tr, err := New(ts.URL)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, tr.Put(context.Background(), "/x/1/activate", nil, &out))
	assert.Zero(t, length)
	assert.Nil(t, out)
}

func TestDo_StatusErrors(t *testing.T) {
	cases := map[int]error{
		http.StatusNotFound:            ErrNotFound,
		http.StatusUnauthorized:        ErrUnauthenticated,
		http.StatusForbidden:           ErrForbidden,
		http.StatusUnprocessableEntity: ErrInvalidRequest,
		http.StatusInternalServerError: ErrBackend,
	}
	for code, want := range cases {
		code, want := code, want
		t.Run(http.StatusText(code), func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(code)
				_, _ = w.Write([]byte(`{"detail":"nope"}`))
			}))
			defer ts.Close()

			tr, err := New(ts.URL, WithDomain("employee"))
			require.NoError(t, err)
			err = tr.Get(context.Background(), "/employees/1", nil, nil)

			assert.ErrorIs(t, err, want)
			assert.False(t, errors.Is(err, ErrTransport))
			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, code, se.StatusCode)
			assert.Equal(t, "employee", se.Domain)
			assert.JSONEq(t, `{"detail":"nope"}`, string(se.Body))
		})
	}
}

func TestDo_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	tr, err := New(url)
	require.NoError(t, err)
	err = tr.Get(context.Background(), "/employees/1", nil, nil)
	assert.ErrorIs(t, err, ErrTransport)
	assert.False(t, IsNotFound(err))
	assert.Zero(t, StatusCode(err))
}

func TestDo_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	tr, err := New(ts.URL, WithTimeout(20*time.Millisecond))
	require.NoError(t, err)
	assert.ErrorIs(t, tr.Get(context.Background(), "/", nil, nil), ErrTransport)
}

func TestDo_DecodeError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway</html>`))
	}))
	defer ts.Close()

	tr, err := New(ts.URL, WithDomain("leave"))
	require.NoError(t, err)
	var out []int
	err = tr.Get(context.Background(), "/", nil, &out)
	assert.ErrorIs(t, err, ErrDecode)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "leave", de.Domain)
	assert.Equal(t, `<html>gateway</html>`, string(de.Body))
}

func TestDo_InterceptorsRunInOrder(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "first,second", r.Header.Get("X-Trace"))
	}))
	defer ts.Close()

	add := func(v string) RequestInterceptor {
		return func(req *http.Request) (*http.Request, error) {
			trace := v
			if prev := req.Header.Get("X-Trace"); prev != "" {
				trace = prev + "," + v
			}
			req.Header.Set("X-Trace", trace)
			return req, nil
		}
	}
	tr, err := New(ts.URL, WithInterceptor(add("first")), WithInterceptor(add("second")))
	require.NoError(t, err)
	require.NoError(t, tr.Get(context.Background(), "/", nil, nil))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestDo_QueryOrder(t *testing.T) {
	var query string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
	}))
	defer ts.Close()

	tr, err := New(ts.URL)
	require.NoError(t, err)
	q := Page(0, 50).Opt("role", "").Opt("status", "active")
	require.NoError(t, tr.Get(context.Background(), "/users/", q, nil))
	assert.Equal(t, "offset=0&limit=50&status=active", query)
}
