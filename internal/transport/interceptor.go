package transport

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/locvowork/hrms_gateway/internal/contextutil"
	"github.com/locvowork/hrms_gateway/internal/credential"
)

// AuthInterceptor sets "Authorization: Bearer <token>" from provider. When
// no token is stored the request goes out unauthenticated. When the lookup
// itself fails (or panics) the request is not sent.
//
// The provider runs on the send path of every request and every page of an
// export, so its latency adds to each call. credential.StoreProvider does a
// file read, Postgres query or Datastore lookup each time.
func AuthInterceptor(provider credential.Provider) RequestInterceptor {
	return func(req *http.Request) (out *http.Request, err error) {
		defer func() {
			if r := recover(); r != nil {
				out, err = nil, &CredentialError{Err: fmt.Errorf("provider panic: %v", r)}
			}
		}()

		if provider == nil {
			return req, nil
		}
		token, ok, err := provider.Token(req.Context())
		if err != nil {
			return nil, &CredentialError{Err: err}
		}
		if !ok {
			return req, nil
		}
		if !validToken(token) {
			return nil, &CredentialError{Err: ErrMalformedCredential}
		}
		req.Header.Set("Authorization", "Bearer "+token)
		return req, nil
	}
}

// RequestIDInterceptor propagates the request id found on the context, or
// generates one, into X-Request-ID. An id already on the request wins.
func RequestIDInterceptor() RequestInterceptor {
	return func(req *http.Request) (*http.Request, error) {
		if req.Header.Get(contextutil.HeaderRequestID) != "" {
			return req, nil
		}
		rid := contextutil.GetRequestID(req.Context())
		if rid == "" {
			rid = uuid.New().String()
		}
		req.Header.Set(contextutil.HeaderRequestID, rid)
		return req, nil
	}
}

// validToken rejects values that cannot be carried in a header field.
func validToken(token string) bool {
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c < 0x20 || c == 0x7f {
			return false
		}
	}
	return true
}
