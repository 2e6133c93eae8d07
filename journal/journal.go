// Package journal records, per open transaction level, the pre-mutation
// state of every changed name so a rollback can undo exactly that level.
package journal

import (
	"fmt"

	"github.com/samber/mo"
)

// Entry is one past mutation to one name. mo.None stands for "name absent".
type Entry struct {
	Name string
	Old  mo.Option[string]
	New  mo.Option[string]
}

type level struct {
	id      uint64
	entries []Entry
}

// Log is an ordered stack of open transaction levels. Ids are issued by a
// counter that starts at 1 and never reuses an id, even after rollback.
type Log struct {
	levels []level
	lastID uint64
}

func NewLog() *Log {
	return &Log{}
}

// Open pushes a new innermost level and returns its id.
func (l *Log) Open() uint64 {
	l.lastID++
	l.levels = append(l.levels, level{id: l.lastID})
	return l.lastID
}

// Current returns the id of the innermost open level, or 0 when none is.
func (l *Log) Current() uint64 {
	if len(l.levels) == 0 {
		return 0
	}
	return l.levels[len(l.levels)-1].id
}

func (l *Log) Depth() int {
	return len(l.levels)
}

// Record appends an undo entry to the level identified by id, which must be
// the innermost open level. The engine guarantees this; anything else is a
// caller bug.
func (l *Log) Record(id uint64, e Entry) {
	curr := l.Current()
	if id != curr || curr == 0 {
		panic(fmt.Sprintf("journal: record into level %d, innermost is %d", id, curr))
	}
	top := &l.levels[len(l.levels)-1]
	top.entries = append(top.entries, e)
}

// DrainInnermost removes the innermost level and returns its entries in
// reverse-insertion order. Later mutations to a name must be undone before
// earlier ones, or a name mutated twice in one level restores wrongly.
func (l *Log) DrainInnermost() []Entry {
	if len(l.levels) == 0 {
		return nil
	}
	top := l.levels[len(l.levels)-1]
	l.levels = l.levels[:len(l.levels)-1]

	out := make([]Entry, len(top.entries))
	for i, e := range top.entries {
		out[len(top.entries)-1-i] = e
	}
	return out
}

// ClearAll discards every open level without yielding any entries.
func (l *Log) ClearAll() {
	l.levels = nil
}

// LevelView is a read-only view of one open level, for diagnostics.
type LevelView struct {
	ID      uint64
	Entries []Entry
}

// Levels returns read-only views of the open levels, outermost first.
func (l *Log) Levels() []LevelView {
	out := make([]LevelView, len(l.levels))
	for i, lv := range l.levels {
		entries := make([]Entry, len(lv.entries))
		copy(entries, lv.entries)
		out[i] = LevelView{ID: lv.id, Entries: entries}
	}
	return out
}
