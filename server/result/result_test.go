package result

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_OK_writesJSONBodyAndStatus(t *testing.T) {
	assert := assert.New(t)

	// setup
	r := OK(map[string]int{"n": 1})
	w := httptest.NewRecorder()

	// execute
	r.WriteResponse(w)

	// assert
	assert.Equal(http.StatusOK, w.Code)
	assert.JSONEq(`{"n":1}`, w.Body.String())
	assert.Equal("application/json", w.Header().Get("Content-Type"))
}

func Test_BadRequest_wrapsUserMessageInErrorResponse(t *testing.T) {
	assert := assert.New(t)

	// setup
	r := BadRequest("bad pattern")
	w := httptest.NewRecorder()

	// execute
	r.WriteResponse(w)

	// assert
	assert.Equal(http.StatusBadRequest, w.Code)
	assert.JSONEq(`{"error":"bad pattern","status":400}`, w.Body.String())
}

func Test_UnprocessableEntity_setsStatus422(t *testing.T) {
	assert := assert.New(t)

	// execute
	r := UnprocessableEntity("search limit exceeded")

	// assert
	assert.Equal(http.StatusUnprocessableEntity, r.Status)
	assert.True(r.IsErr)
}

func Test_WithHeader_addsHeaderWithoutMutatingOriginal(t *testing.T) {
	assert := assert.New(t)

	// setup
	base := OK(nil)
	withHeader := base.WithHeader("X-Test", "1")
	w := httptest.NewRecorder()

	// execute
	withHeader.WriteResponse(w)

	// assert
	assert.Equal("1", w.Header().Get("X-Test"))
	assert.Empty(base.hdrs)
}

func Test_WriteResponse_panicsOnUnpopulatedResult(t *testing.T) {
	assert := assert.New(t)

	// setup
	var r Result
	w := httptest.NewRecorder()

	// execute & assert
	assert.Panics(func() { r.WriteResponse(w) })
}
