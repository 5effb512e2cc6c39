package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/guregu/null.v3"
)

func TestPIDValidation(t *testing.T) {
	v := NewValidator()

	for _, ok := range []string{"P1", "P-100", "ABCDEFGHIJ", "7"} {
		assert.NoError(t, v.Var(ok, "pid"), ok)
	}
	for _, bad := range []string{"", "-P1", "P1-", "ABCDEFGHIJK", "P 1", "P_1"} {
		assert.Error(t, v.Var(bad, "pid"), bad)
	}
}

func TestLabelStyleValidation(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Var("numeric", "labelstyle"))
	assert.NoError(t, v.Var("alphabetic", "labelstyle"))
	assert.Error(t, v.Var("roman", "labelstyle"))
}

func TestNullStringValidation(t *testing.T) {
	v := NewValidator()

	type req struct {
		Notes null.String `validate:"omitempty,max=5"`
	}
	assert.NoError(t, v.Struct(req{}))
	assert.NoError(t, v.Struct(req{Notes: null.StringFrom("short")}))
	assert.Error(t, v.Struct(req{Notes: null.StringFrom("far too long")}))
}
