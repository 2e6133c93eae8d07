package storage

import (
	"sort"
	"strings"
)

// NewMapStorage returns a plain map-backed storage. Not safe for concurrent
// use on its own; the engine serializes access behind its mutex.
func NewMapStorage[V any]() *mapStorage[V] {
	return &mapStorage[V]{inner: make(map[string]V)}
}

type mapStorage[V any] struct {
	inner map[string]V
}

func (s *mapStorage[V]) Get(key string) (V, bool) {
	v, ok := s.inner[key]
	return v, ok
}

func (s *mapStorage[V]) Set(key string, value V) {
	s.inner[key] = value
}

func (s *mapStorage[V]) Del(key string) {
	delete(s.inner, key)
}

func (s *mapStorage[V]) Len() int {
	return len(s.inner)
}

func (s *mapStorage[V]) Range(prefix string) Range[string, V] {
	keys := make([]string, 0, len(s.inner))
	for k := range s.inner {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return &sliceRange[V]{keys: keys, get: s.Get}
}

func (s *mapStorage[V]) ToMap() map[string]V {
	out := make(map[string]V, len(s.inner))
	for k, v := range s.inner {
		out[k] = v
	}
	return out
}

type sliceRange[V any] struct {
	keys []string
	curr int
	get  func(string) (V, bool)
}

func (r *sliceRange[V]) Next() bool {
	return r.curr < len(r.keys)
}

func (r *sliceRange[V]) Value() (string, V) {
	key := r.keys[r.curr]
	r.curr++

	// SAFETY: keys were collected from the backing map, they exist
	value, _ := r.get(key)
	return key, value
}
