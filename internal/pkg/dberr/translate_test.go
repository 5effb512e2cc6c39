package dberr

import (
	"database/sql"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/labtrack/lims/internal/pkg/limserr"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, Translate(nil))

	assert.ErrorIs(t, Translate(sql.ErrNoRows), limserr.ErrNotFound)
	assert.ErrorIs(t, Translate(errors.Wrap(sql.ErrNoRows, "select")), limserr.ErrNotFound)

	custom := limserr.ErrInvalidReq.Msg("bad")
	assert.Same(t, custom, Translate(custom))

	plain := errors.New("connection reset")
	translated := Translate(plain)
	assert.ErrorIs(t, translated, plain)
	_, ok := limserr.From(translated)
	assert.False(t, ok)
}
