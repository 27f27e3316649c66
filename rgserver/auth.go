package rgserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey int

const ctxKeyAuthed ctxKey = iota

// claims is the JWT payload of the bearer tokens minted by IssueToken and
// checked by requireBearer.
type claims struct {
	jwt.RegisteredClaims
}

// IssueToken signs a short-lived HS256 bearer token for subject with secret.
// It does not check any API key itself; that is left to the caller.
func IssueToken(secret []byte, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return tok.SignedString(secret)
}

// requireBearer validates an "Authorization: Bearer <jwt>" header signed
// with s.secret, rejecting the request otherwise.
func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			time.Sleep(unauthedDelay)
			writeJSONError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		raw := strings.TrimPrefix(header, prefix)

		parsed, err := jwt.ParseWithClaims(raw, &claims{}, func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		})
		if err != nil || !parsed.Valid {
			time.Sleep(unauthedDelay)
			writeJSONError(w, http.StatusUnauthorized, "invalid bearer token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyAuthed, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
