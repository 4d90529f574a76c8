package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"csvexplorer/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"nil", nil, ""},
		{"app error", InvalidInput("bad"), CodeInvalidInput},
		{"wrapped app error", fmt.Errorf("ctx: %w", ConfigInvalid("PORT")), CodeConfigInvalid},
		{"malformed csv", fmt.Errorf("%w: bad quote", core.ErrMalformed), CodeLoadFailed},
		{"missing column", core.NewColumnNotFoundError("z"), CodeNotFound},
		{"no selection", core.ErrNoSelection, CodeInvalidInput},
		{"other", stderrors.New("boom"), CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, Classify(tt.err))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, HTTPStatus(nil))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(core.ErrEmptyFile))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("session")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(stderrors.New("boom")))
}

func TestWrapKeepsCodeAndCause(t *testing.T) {
	err := Wrap(core.ErrEncoding, "upload rejected")
	assert.Equal(t, CodeLoadFailed, GetCode(err))
	assert.True(t, stderrors.Is(err, core.ErrLoad))
	assert.Contains(t, err.Error(), "upload rejected")

	assert.Nil(t, Wrap(nil, "x"))
	assert.Nil(t, Wrapf(nil, "x %d", 1))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeNotFound, stderrors.New("gone"))
	assert.Equal(t, CodeNotFound, GetCode(err))
	assert.True(t, IsAppError(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}

func TestLoadFailed(t *testing.T) {
	err := LoadFailed("data.csv", core.ErrMalformed)
	assert.Equal(t, "could not load data.csv: "+core.ErrMalformed.Error(), err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}
