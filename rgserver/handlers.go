package rgserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kestrel-dev/redhorse/automaton"
	"github.com/kestrel-dev/redhorse/dsl"
	"github.com/kestrel-dev/redhorse/parse"
	"github.com/kestrel-dev/redhorse/rgcache"
	"github.com/kestrel-dev/redhorse/rgerrors"
)

type compileResponse struct {
	Fingerprint string `json:"fingerprint"`
	BuildID     string `json:"build_id"`
	States      int    `json:"states"`
}

// handleCompile accepts rule-definition-language source in the request body,
// compiles it end to end, caches the result, and reports its fingerprint.
func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	g, err := dsl.Parse(string(body))
	if err != nil {
		// dsl.Parse also validates the grammar; those are generator-time
		// errors, not syntax errors.
		var emptyErr *rgerrors.EmptyGrammarError
		var undefErr *rgerrors.UndefinedNonTerminalError
		if errors.As(err, &emptyErr) || errors.As(err, &undefErr) {
			writeCompileError(w, err)
			return
		}
		writeJSONError(w, http.StatusBadRequest, "grammar syntax error: "+err.Error())
		return
	}

	aut, err := automaton.Build(g)
	if err != nil {
		writeCompileError(w, err)
		return
	}

	table, err := parse.BuildTable(aut, g)
	if err != nil {
		writeCompileError(w, err)
		return
	}

	build, err := s.cache.Put(r.Context(), g, table)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "could not store compiled table")
		return
	}

	writeJSON(w, http.StatusCreated, compileResponse{
		Fingerprint: build.Fingerprint,
		BuildID:     build.ID.String(),
		States:      len(table.Rows),
	})
}

type tableResponse struct {
	Fingerprint string `json:"fingerprint"`
	Initial     int    `json:"initial"`
	States      int    `json:"states"`
}

// handleGetTable returns summary information about a previously compiled
// and cached table.
func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	fingerprint := chi.URLParam(r, "fingerprint")

	build, err := s.cache.Get(r.Context(), fingerprint)
	if errors.Is(err, rgcache.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, "no cached build for this fingerprint")
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "could not load cached build")
		return
	}

	writeJSON(w, http.StatusOK, tableResponse{
		Fingerprint: build.Fingerprint,
		Initial:     build.Table.Initial,
		States:      len(build.Table.Rows),
	})
}

// writeCompileError reports a generator-time error (empty grammar, undefined
// non-terminal, or conflict) as 422: the request was well-formed, but the
// grammar it describes isn't usable.
func writeCompileError(w http.ResponseWriter, err error) {
	writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
