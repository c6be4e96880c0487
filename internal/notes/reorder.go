package notes

// Reorderer applies completed drag gestures to the note order.
type Reorderer struct {
	m *Manager

	lastMoved, lastTarget int64
	lastRevision          uint64
	applied               bool
}

func NewReorderer(m *Manager) *Reorderer {
	return &Reorderer{m: m}
}

// Reorder moves movedID to the position currently held by targetID,
// shifting the notes in between by one. A gesture delivered again with no
// change to the collection in between is ignored.
func (r *Reorderer) Reorder(movedID, targetID int64) bool {
	if movedID == targetID {
		return false
	}
	if r.applied && r.lastMoved == movedID && r.lastTarget == targetID && r.lastRevision == r.m.Revision() {
		return false
	}

	from, to := r.m.index(movedID), r.m.index(targetID)
	if from < 0 || to < 0 {
		return false
	}
	r.m.move(from, to)
	r.m.log.Debug("note reordered", "id", movedID, "from", from, "to", to)

	r.lastMoved, r.lastTarget = movedID, targetID
	r.lastRevision = r.m.Revision()
	r.applied = true
	return true
}
