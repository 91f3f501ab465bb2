package ui

// editRecord is a snapshot of an input's content that can be restored.
type editRecord struct {
	clusters []string
	cursor   Cursor
}

// history keeps undo and redo snapshots. Consecutive typing is merged into a
// single record until something else happens.
type history struct {
	undo      []editRecord
	redo      []editRecord
	mergeNext bool
	limit     int
}

const defaultHistoryLimit = 200

// save records the state before an edit. When merge is set and the previous
// edit was also a merging one, no new record is pushed.
func (h *history) save(rec editRecord, merge bool) {
	if merge && h.mergeNext {
		return
	}
	h.undo = append(h.undo, rec)
	limit := h.limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if len(h.undo) > limit {
		h.undo = h.undo[len(h.undo)-limit:]
	}
	// Clear redo stack when new edit is made
	h.redo = nil
	h.mergeNext = merge
}

// breakMerge ends the current run of merged typing.
func (h *history) breakMerge() { h.mergeNext = false }

// Undo pops the last record, pushing current onto the redo stack.
func (h *history) Undo(current editRecord) (editRecord, bool) {
	if len(h.undo) == 0 {
		return editRecord{}, false
	}
	h.redo = append(h.redo, current)
	rec := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.mergeNext = false
	return rec, true
}

// Redo reapplies an undone record, pushing current onto the undo stack.
func (h *history) Redo(current editRecord) (editRecord, bool) {
	if len(h.redo) == 0 {
		return editRecord{}, false
	}
	h.undo = append(h.undo, current)
	rec := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.mergeNext = false
	return rec, true
}
