package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	page, limit := NormalizePage("", "")
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, limit)

	page, limit = NormalizePage("3", "500")
	assert.Equal(t, 3, page)
	assert.Equal(t, MaxPageSize, limit)

	page, limit = NormalizePage("-2", "abc")
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, limit)

	assert.Equal(t, 40, Offset(3, 20))
}

func TestParseStringToUUID(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, id, ParseStringToUUID(id.String()))
	assert.Equal(t, uuid.Nil, ParseStringToUUID("not-a-uuid"))
}

func TestWhereBuilder(t *testing.T) {
	var w WhereBuilder
	assert.Equal(t, "", w.SQL())

	w.Add("author_id = ?", "a")
	w.Add("journal_id = ?", "j")

	assert.Equal(t, "WHERE author_id = $1 AND journal_id = $2", w.SQL())
	assert.Equal(t, []any{"a", "j"}, w.Args())
	assert.Equal(t, 3, w.Next())
}
