package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dekarrin/carpfsm/internal/pda"
	"github.com/dekarrin/carpfsm/server/fsm"
	"github.com/stretchr/testify/assert"
)

func newTestAPI() API {
	return API{Backend: fsm.Service{}}
}

func postJSON(t *testing.T, handler http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func Test_RunDFA_acceptsMatchingInput(t *testing.T) {
	assert := assert.New(t)

	// setup
	a := newTestAPI()
	body := runDFARequest{
		DFA: fsm.DFADescription{
			States: []string{"q0", "q1"}, Start: "q0", Accepting: []string{"q1"},
			Transitions: []fsm.TransitionEntry{{From: "q0", Input: "a", To: "q1"}},
		},
		Input: "a",
	}

	// execute
	w := postJSON(t, a.Routes(), "/dfa/run", body)

	// assert
	assert.Equal(http.StatusOK, w.Code)
	assert.Contains(w.Body.String(), `"accepted":true`)
}

func Test_CompileRegex_malformedPatternReturnsBadRequest(t *testing.T) {
	assert := assert.New(t)

	// setup
	a := newTestAPI()

	// execute
	w := postJSON(t, a.Routes(), "/regex/compile", compileRegexRequest{Pattern: "(a"})

	// assert
	assert.Equal(http.StatusBadRequest, w.Code)
}

func Test_GrammarTable_conflictingGrammarReturns409(t *testing.T) {
	assert := assert.New(t)

	// setup
	a := newTestAPI()
	body := fsm.GrammarDescription{
		Start: "S",
		Productions: []fsm.ProductionDescription{
			{Head: "S", Body: []string{"a"}},
			{Head: "S", Body: []string{"a", "b"}},
		},
	}

	// execute
	w := postJSON(t, a.Routes(), "/grammar/table", body)

	// assert
	assert.Equal(http.StatusConflict, w.Code)
}

func Test_RunPDA_searchLimitReturns422(t *testing.T) {
	assert := assert.New(t)

	// setup
	a := newTestAPI()
	body := runPDARequest{
		PDA: fsm.PDADescription{
			Start:            "q0",
			StartStackSymbol: "Z",
			Transitions: []fsm.PDATransitionEntry{
				{State: "q0", Input: pda.Epsilon, Top: "Z", Target: "q0", Push: "ZZ"},
			},
		},
		Mode:  fsm.PDAModeEmptyStack,
		Limit: 10,
	}

	// execute
	w := postJSON(t, a.Routes(), "/pda/run", body)

	// assert
	assert.Equal(http.StatusUnprocessableEntity, w.Code)
}

func Test_RunDFA_rejectsNonJSONContentType(t *testing.T) {
	assert := assert.New(t)

	// setup
	a := newTestAPI()
	req := httptest.NewRequest(http.MethodPost, "/dfa/run", bytes.NewReader([]byte("{}")))
	w := httptest.NewRecorder()

	// execute
	a.Routes().ServeHTTP(w, req)

	// assert
	assert.Equal(http.StatusBadRequest, w.Code)
}
