package derrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(New(CodeNotFound, "missing")))
	assert.Equal(t, CodeValidation, CodeOf(Newf(CodeValidation, "bad field %s", "owner")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
	assert.Equal(t, CodeInternal, CodeOf(nil))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "open postgres")

	assert.True(t, Is(err, CodeInternal))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "open postgres")
	assert.Contains(t, err.Error(), "connection refused")

	assert.Nil(t, Wrap(nil, CodeInternal, "noop"))
}

func TestCodeSurvivesWrapping(t *testing.T) {
	inner := New(CodeNotFound, "record not found")
	outer := fmt.Errorf("read contract: %w", inner)

	assert.True(t, Is(outer, CodeNotFound))
	assert.Equal(t, CodeNotFound, CodeOf(outer))
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:        http.StatusBadRequest,
		CodeBadRequest:        http.StatusBadRequest,
		CodeMissingSignature:  http.StatusBadRequest,
		CodeMissingHash:       http.StatusBadRequest,
		CodeUnauthorized:      http.StatusUnauthorized,
		CodeNotFound:          http.StatusNotFound,
		CodeAlreadyExists:     http.StatusConflict,
		CodeConflict:          http.StatusConflict,
		CodeInvalidStatus:     http.StatusConflict,
		CodeInvalidTransition: http.StatusConflict,
		CodeNotModifiable:     http.StatusConflict,
		CodeNotDeletable:      http.StatusConflict,
		CodeQuery:             http.StatusInternalServerError,
		CodeInternal:          http.StatusInternalServerError,
		Code("SOMETHING_NEW"): http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), string(code))
	}
}
