package nestdb

import (
	"sync"

	"github.com/samber/mo"

	"nestdb/journal"
	"nestdb/storage"
	"nestdb/vindex"
)

// Engine is the sole writer of the record store, the value index and the
// journal. Every public operation takes the one mutex, so the three
// structures mutate together and look atomic to any concurrent host.
type Engine struct {
	mu      sync.Mutex
	records storage.Storage[string]
	index   *vindex.Index
	log     *journal.Log
}

func NewEngine(records storage.Storage[string]) *Engine {
	return &Engine{
		records: records,
		index:   vindex.New(),
		log:     journal.NewLog(),
	}
}

// Set writes value under name. Writing the value a name already holds is a
// full no-op: no journal entry, no index change.
func (e *Engine) Set(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	old, exists := e.records.Get(name)
	if exists && old == value {
		return
	}

	if id := e.log.Current(); id != 0 {
		e.log.Record(id, journal.Entry{
			Name: name,
			Old:  optionOf(old, exists),
			New:  mo.Some(value),
		})
	}

	e.records.Set(name, value)
	if exists {
		e.index.Remove(old, name)
	}
	e.index.Add(value, name)
}

// Delete removes name. Deleting an absent name is a no-op.
func (e *Engine) Delete(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	old, exists := e.records.Get(name)
	if !exists {
		return
	}

	if id := e.log.Current(); id != 0 {
		e.log.Record(id, journal.Entry{
			Name: name,
			Old:  mo.Some(old),
			New:  mo.None[string](),
		})
	}

	e.index.Remove(old, name)
	e.records.Del(name)
}

// Get returns the value held by name, or false when the name is absent.
func (e *Engine) Get(name string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.records.Get(name)
}

// Count returns how many names currently hold value.
func (e *Engine) Count(value string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index.Count(value)
}

// Begin opens a new innermost transaction level.
func (e *Engine) Begin() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log.Open()
}

// Rollback undoes the innermost open level, entry by entry in reverse
// insertion order, and discards it. Returns ErrNoTransaction when no level
// is open.
func (e *Engine) Rollback() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.log.Depth() == 0 {
		return ErrNoTransaction
	}

	for _, ent := range e.log.DrainInnermost() {
		if old, ok := ent.Old.Get(); ok {
			e.records.Set(ent.Name, old)
		} else {
			e.records.Del(ent.Name)
		}

		if nv, ok := ent.New.Get(); ok {
			e.index.Remove(nv, ent.Name)
		}
		// Re-add unconditionally: the entry is the state that existed
		// before this level first touched the name.
		if old, ok := ent.Old.Get(); ok {
			e.index.Add(old, ent.Name)
		}
	}
	return nil
}

// Commit discards every open level at once. Store and index already carry
// the levels' effects, so nothing else moves. There is no per-level commit.
func (e *Engine) Commit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log.ClearAll()
}

func optionOf(v string, present bool) mo.Option[string] {
	if present {
		return mo.Some(v)
	}
	return mo.None[string]()
}
