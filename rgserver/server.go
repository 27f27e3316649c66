// Package rgserver exposes grammar compilation as a small stateless HTTP
// service: POST a grammar, get back its fingerprint; GET summary information
// (initial state, state count) about the compiled table for a fingerprint
// already seen. It is a convenience front-end over
// grammar/automaton/parse/rgcache, not a hardened multi-tenant production
// service -- see the design notes on scope.
package rgserver

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kestrel-dev/redhorse/rgcache"
)

// Server wires the cache store and JWT signing secret into a chi router.
type Server struct {
	cache  *rgcache.Store
	secret []byte
	router chi.Router
}

// New builds a Server backed by cache, authenticating bearer tokens signed
// with secret.
func New(cache *rgcache.Store, secret []byte) *Server {
	s := &Server{cache: cache, secret: secret}

	r := chi.NewRouter()
	r.Use(dontPanic)
	r.Use(middleware.Logger)

	r.Route("/v1/grammars", func(r chi.Router) {
		r.Use(s.requireBearer)
		r.Post("/", s.handleCompile)
		r.Get("/{fingerprint}/table", s.handleGetTable)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func dontPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if panicErr := recover(); panicErr != nil {
				writeJSONError(w, http.StatusInternalServerError, "internal server error")
				debug.PrintStack()
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// unauthedDelay slows failed-auth responses slightly to blunt credential
// stuffing against the bearer-token endpoint.
const unauthedDelay = 250 * time.Millisecond
