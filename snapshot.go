package nestdb

// Snapshot is a point-in-time copy of the three core structures, for the
// DUMP diagnostic and the snapshot codecs. Index values whose name set has
// emptied are listed with an empty slice, matching what the index retains.
type Snapshot struct {
	Records   map[string]string   `json:"records" bson:"records"`
	Index     map[string][]string `json:"index" bson:"index"`
	CurrentTx uint64              `json:"current_tx" bson:"current_tx"`
	Levels    []LevelSnapshot     `json:"levels,omitempty" bson:"levels,omitempty"`
}

// LevelSnapshot is one open transaction level, outermost first in
// Snapshot.Levels.
type LevelSnapshot struct {
	ID      uint64          `json:"id" bson:"id"`
	Entries []EntrySnapshot `json:"entries" bson:"entries"`
}

// EntrySnapshot is one journaled mutation; nil means "name was absent".
type EntrySnapshot struct {
	Name string  `json:"name" bson:"name"`
	Old  *string `json:"old" bson:"old"`
	New  *string `json:"new" bson:"new"`
}

// Snapshot copies the current state under the engine mutex.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	index := make(map[string][]string)
	for _, v := range e.index.Values() {
		index[v] = e.index.Names(v)
	}

	levels := e.log.Levels()
	snapLevels := make([]LevelSnapshot, len(levels))
	for i, lv := range levels {
		entries := make([]EntrySnapshot, len(lv.Entries))
		for j, ent := range lv.Entries {
			entries[j] = EntrySnapshot{
				Name: ent.Name,
				Old:  ptrOf(ent.Old.Get()),
				New:  ptrOf(ent.New.Get()),
			}
		}
		snapLevels[i] = LevelSnapshot{ID: lv.ID, Entries: entries}
	}

	return Snapshot{
		Records:   e.records.ToMap(),
		Index:     index,
		CurrentTx: e.log.Current(),
		Levels:    snapLevels,
	}
}

func ptrOf(v string, present bool) *string {
	if !present {
		return nil
	}
	return &v
}
