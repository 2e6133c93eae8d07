// Package vindex maintains the secondary index from values to the names
// currently holding them. Count(v) is always the number of records whose
// value is v; the engine keeps it in lockstep with the record store.
package vindex

import (
	"sort"

	"github.com/zhangyunhao116/skipmap"
)

type Index struct {
	// value -> sorted set of names holding it. Emptied sets are retained;
	// Count reads them as 0 either way.
	names map[string]*skipmap.StringMap[struct{}]
}

func New() *Index {
	return &Index{names: make(map[string]*skipmap.StringMap[struct{}])}
}

// Add records that name currently holds value. Adding the same pair twice
// is a no-op.
func (ix *Index) Add(value, name string) {
	set, ok := ix.names[value]
	if !ok {
		set = skipmap.NewString[struct{}]()
		ix.names[value] = set
	}
	set.Store(name, struct{}{})
}

// Remove records that name no longer holds value. Removing a pair that was
// never added is a no-op.
func (ix *Index) Remove(value, name string) {
	if set, ok := ix.names[value]; ok {
		set.Delete(name)
	}
}

func (ix *Index) Count(value string) int {
	set, ok := ix.names[value]
	if !ok {
		return 0
	}
	return set.Len()
}

// Names returns the names holding value in ascending order.
func (ix *Index) Names(value string) []string {
	set, ok := ix.names[value]
	if !ok {
		return nil
	}
	out := make([]string, 0, set.Len())
	set.Range(func(name string, _ struct{}) bool {
		out = append(out, name)
		return true
	})
	return out
}

// Values returns every value the index has ever tracked, in ascending
// order, including values whose set has emptied.
func (ix *Index) Values() []string {
	out := make([]string, 0, len(ix.names))
	for v := range ix.names {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
