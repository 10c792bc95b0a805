package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Realm is announced in the WWW-Authenticate header of 401 responses.
const Realm = "blogapi"

// Authenticator checks HTTP Basic credentials against one configured pair.
// Only a bcrypt hash of the password is kept in memory.
type Authenticator struct {
	login string
	hash  []byte
}

// NewAuthenticator hashes password with the given bcrypt cost.
func NewAuthenticator(login, password string, cost int) (*Authenticator, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &Authenticator{login: login, hash: hash}, nil
}

// Check reports whether r carries the configured credentials.
func (a *Authenticator) Check(r *http.Request) bool {
	login, password, ok := r.BasicAuth()
	if !ok {
		return false
	}
	loginOK := subtle.ConstantTimeCompare([]byte(login), []byte(a.login)) == 1
	passwordOK := bcrypt.CompareHashAndPassword(a.hash, []byte(password)) == nil
	return loginOK && passwordOK
}

// RequireBasicAuth rejects requests without valid credentials with 401 and
// an empty body.
func (a *Authenticator) RequireBasicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Check(r) {
			zerolog.Ctx(r.Context()).Debug().Str("path", r.URL.Path).Msg("rejected credentials")
			w.Header().Set("WWW-Authenticate", `Basic realm="`+Realm+`"`)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
