package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rec(s string) editRecord {
	return editRecord{clusters: Graphemes(s), cursor: Caret(len(s))}
}

func TestHistory_UndoRedo(t *testing.T) {
	var h history
	h.save(rec(""), false)
	h.save(rec("a"), false)

	got, ok := h.Undo(rec("ab"))
	assert.True(t, ok)
	assert.Equal(t, rec("a"), got)

	got, ok = h.Undo(got)
	assert.True(t, ok)
	assert.Equal(t, rec(""), got)

	_, ok = h.Undo(got)
	assert.False(t, ok)

	got, ok = h.Redo(rec(""))
	assert.True(t, ok)
	assert.Equal(t, rec("a"), got)

	// a new edit drops the redo stack
	h.save(rec("a"), false)
	_, ok = h.Redo(rec("ax"))
	assert.False(t, ok)
}

func TestHistory_Merge(t *testing.T) {
	var h history
	h.save(rec(""), true)
	h.save(rec("a"), true)
	h.save(rec("ab"), true)
	assert.Len(t, h.undo, 1)

	h.breakMerge()
	h.save(rec("abc"), true)
	assert.Len(t, h.undo, 2)

	h.save(rec("abcd"), false)
	h.save(rec("abcde"), true)
	assert.Len(t, h.undo, 4, "a plain edit ends the merge run")
}

func TestHistory_Limit(t *testing.T) {
	h := history{limit: 2}
	h.save(rec("a"), false)
	h.save(rec("b"), false)
	h.save(rec("c"), false)
	assert.Equal(t, []editRecord{rec("b"), rec("c")}, h.undo)
}
