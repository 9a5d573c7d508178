package errors_test

import (
	"encoding/json"
	"fmt"
	"testing"

	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrap_KeepsCodeAndMeta(t *testing.T) {
	inner := rpgerr.NotFoundf("script %s not found", "bless").WithMeta("ability", "Bless")
	wrapped := rpgerr.Wrapf(fmt.Errorf("loading: %w", inner), "failed to restore effects of %s", "aria")

	assert.True(t, rpgerr.IsNotFound(wrapped))
	assert.Equal(t, "Bless", rpgerr.GetMeta(wrapped)["ability"])
	assert.Equal(t, "failed to restore effects of aria: loading: script bless not found", wrapped.Error())
	assert.ErrorIs(t, wrapped, inner)

	wrapped.WithMeta("entity", "aria")
	assert.NotContains(t, inner.Meta, "entity", "wrapping copies metadata")
}

func TestWrap_NilAndPlainErrors(t *testing.T) {
	assert.Nil(t, rpgerr.Wrap(nil, "nothing"))
	assert.Nil(t, rpgerr.Wrapf(nil, "nothing %d", 1))
	assert.Nil(t, rpgerr.WrapWithCode(nil, rpgerr.CodeValidation, "nothing"))

	var syntax *json.SyntaxError
	err := rpgerr.WrapWithCode(json.Unmarshal([]byte("{"), &map[string]any{}), rpgerr.CodeValidation, "bad save")
	assert.True(t, rpgerr.IsValidation(err))
	assert.ErrorAs(t, err, &syntax)

	plain := rpgerr.Wrap(fmt.Errorf("boom"), "redis")
	assert.Equal(t, rpgerr.CodeUnknown, plain.Code)
	assert.False(t, rpgerr.IsInternal(plain))
	assert.Nil(t, rpgerr.GetMeta(fmt.Errorf("boom")))
}

func TestCodes(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"not found", rpgerr.NotFound("x"), rpgerr.IsNotFound},
		{"invalid argument", rpgerr.InvalidArgumentf("unknown %s", "x"), rpgerr.IsInvalidArgument},
		{"already exists", rpgerr.AlreadyExistsf("script %s", "x"), rpgerr.IsAlreadyExists},
		{"internal", rpgerr.Internal("x"), rpgerr.IsInternal},
		{"validation", rpgerr.Validationf("bad %d", 1), rpgerr.IsValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.False(t, tt.check(fmt.Errorf("plain")))
		})
	}
}
