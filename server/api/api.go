// Package api provides HTTP API endpoints for running automata, regexes,
// grammars, and pushdown automata submitted as JSON request bodies.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/dekarrin/carpfsm/internal/fsmerrors"
	"github.com/dekarrin/carpfsm/server/fsm"
	"github.com/dekarrin/carpfsm/server/result"
	"github.com/dekarrin/carpfsm/server/serr"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	// PathPrefix is the prefix of all paths in the API. Routers should mount
	// a sub-router that routes all requests to the API at this path.
	PathPrefix = "/api/v1"
)

// API holds the service used to run submitted descriptions and exposes it
// as a chi.Router. To use API, create one and call Routes to get a mux
// suitable for mounting.
type API struct {
	// Backend performs the actual automata construction and simulation.
	Backend fsm.Service
}

// Routes returns a chi.Router with every endpoint registered relative to the
// router's own root; callers mount it at PathPrefix.
func (a API) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/dfa/run", httpEndpoint(a.runDFA))
	r.Post("/dfa/minimize", httpEndpoint(a.minimizeDFA))
	r.Post("/dfa/boolean", httpEndpoint(a.booleanDFA))
	r.Post("/dfa/to-regex", httpEndpoint(a.toRegex))
	r.Post("/regex/compile", httpEndpoint(a.compileRegex))
	r.Post("/grammar/table", httpEndpoint(a.grammarTable))
	r.Post("/pda/run", httpEndpoint(a.runPDA))
	return r
}

type runDFARequest struct {
	DFA   fsm.DFADescription `json:"dfa"`
	Input string              `json:"input"`
}

func (a API) runDFA(req *http.Request) result.Result {
	var body runDFARequest
	if err := parseJSON(req, &body); err != nil {
		return jsonBindingError(err)
	}

	run := a.Backend.RunDFA(body.DFA, body.Input)
	return result.OK(run, "ran DFA against %d-symbol input", len(body.Input))
}

func (a API) minimizeDFA(req *http.Request) result.Result {
	var body fsm.DFADescription
	if err := parseJSON(req, &body); err != nil {
		return jsonBindingError(err)
	}

	min := a.Backend.MinimizeDFA(body)
	return result.OK(min, "minimized DFA to %d states", len(min.States))
}

type booleanDFARequest struct {
	Op fsm.BooleanOp       `json:"op"`
	A  fsm.DFADescription `json:"a"`
	B  fsm.DFADescription `json:"b"`
}

func (a API) booleanDFA(req *http.Request) result.Result {
	var body booleanDFARequest
	if err := parseJSON(req, &body); err != nil {
		return jsonBindingError(err)
	}

	out, err := a.Backend.Boolean(body.Op, body.A, body.B)
	if err != nil {
		return result.BadRequest(err.Error(), "invalid boolean operation request: %s", err.Error())
	}
	return result.OK(out, "combined two DFAs via %s", body.Op)
}

func (a API) toRegex(req *http.Request) result.Result {
	var body fsm.DFADescription
	if err := parseJSON(req, &body); err != nil {
		return jsonBindingError(err)
	}

	pattern := a.Backend.ToRegex(body)
	return result.OK(map[string]string{"pattern": pattern}, "recovered regex via state elimination")
}

type compileRegexRequest struct {
	Pattern string `json:"pattern"`
}

func (a API) compileRegex(req *http.Request) result.Result {
	var body compileRegexRequest
	if err := parseJSON(req, &body); err != nil {
		return jsonBindingError(err)
	}

	dfa, err := a.Backend.CompileRegex(body.Pattern)
	if err != nil {
		return constructionErrorResult(err)
	}
	return result.OK(dfa, "compiled regex %q to a %d-state DFA", body.Pattern, len(dfa.States))
}

func (a API) grammarTable(req *http.Request) result.Result {
	var body fsm.GrammarDescription
	if err := parseJSON(req, &body); err != nil {
		return jsonBindingError(err)
	}

	table, err := a.Backend.LL1Table(body)
	if err != nil {
		var ce *fsmerrors.ConstructionError
		if errors.As(err, &ce) && ce.Kind == fsmerrors.LL1Conflict {
			return result.Conflict(ce.Error(), "grammar is not LL(1): %s", ce.Error())
		}
		return constructionErrorResult(err)
	}
	return result.OK(table, "built LL(1) table with %d occupied cells", len(table.Cells))
}

type runPDARequest struct {
	PDA   fsm.PDADescription `json:"pda"`
	Input string              `json:"input"`
	Mode  fsm.PDAMode         `json:"mode"`
	Limit int                 `json:"limit"`
}

func (a API) runPDA(req *http.Request) result.Result {
	var body runPDARequest
	if err := parseJSON(req, &body); err != nil {
		return jsonBindingError(err)
	}

	accepted, err := a.Backend.RunPDA(body.PDA, body.Input, body.Mode, body.Limit)
	if err != nil {
		if errors.Is(err, fsmerrors.ErrSearchLimitExceeded) {
			return result.UnprocessableEntity(
				"search limit exceeded before a verdict was reached",
				"PDA search gave up: %s", err.Error(),
			)
		}
		return result.InternalServerError("PDA simulation failed: %s", err.Error())
	}
	return result.OK(map[string]bool{"accepted": accepted}, "ran PDA by mode %s", body.Mode)
}

// v must be a pointer to a type. Will return an error such that
// errors.Is(err, serr.ErrBodyUnmarshal) is true if the problem is decoding
// the JSON itself.
func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")

	if strings.ToLower(contentType) != "application/json" {
		return fmt.Errorf("request content-type is not application/json")
	}

	bodyData, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	defer func() {
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewBuffer(bodyData))
	}()

	err = json.Unmarshal(bodyData, v)
	if err != nil {
		return serr.New("malformed JSON in request", err, serr.ErrBodyUnmarshal)
	}

	return nil
}

func jsonBindingError(err error) result.Result {
	return result.BadRequest(err.Error(), "could not bind request body: %s", err.Error())
}

func constructionErrorResult(err error) result.Result {
	var ce *fsmerrors.ConstructionError
	if errors.As(err, &ce) {
		return result.BadRequest(ce.Error(), "construction error: %s", ce.Error())
	}
	return result.BadRequest(err.Error(), "construction error: %s", err.Error())
}

type EndpointFunc func(req *http.Request) result.Result

func httpEndpoint(ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		reqID := uuid.New()
		defer panicTo500(w)

		r := ep(req)

		// if this hasn't been properly created, output error directly and do
		// not try to read properties
		if r.Status == 0 {
			logHTTPResponse("ERROR", reqID, req, http.StatusInternalServerError, "endpoint result was never populated")
			http.Error(w, "An internal server error occurred", http.StatusInternalServerError)
			return
		}

		if err := r.PrepareMarshaledResponse(); err != nil {
			newResp := result.Err(r.Status, "An internal server error occurred", "could not marshal JSON response: "+err.Error())
			newResp.WriteResponse(w)
			return
		}

		if r.IsErr {
			logHTTPResponse("ERROR", reqID, req, r.Status, r.InternalMsg)
		} else {
			logHTTPResponse("INFO", reqID, req, r.Status, r.InternalMsg)
		}

		r.WriteResponse(w)
	}
}

func panicTo500(w http.ResponseWriter) {
	if panicErr := recover(); panicErr != nil {
		result.TextErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())),
		).WriteResponse(w)
	}
}

func logHTTPResponse(level string, reqID uuid.UUID, req *http.Request, respStatus int, msg string) {
	if len(level) > 5 {
		level = level[0:5]
	}
	for len(level) < 5 {
		level += " "
	}

	remoteAddrParts := strings.SplitN(req.RemoteAddr, ":", 2)
	remoteIP := remoteAddrParts[0]

	log.Printf("%s [%s] %s %s %s: HTTP-%d %s", level, reqID, remoteIP, req.Method, req.URL.Path, respStatus, msg)
}
