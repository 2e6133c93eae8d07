package storage

import (
	"github.com/s0rg/trie"
)

// NewPrefixTreeStorage returns a trie-backed storage. Keys come back from
// Range in the order the trie suggests them, which is stable for a given
// content but not lexicographic.
func NewPrefixTreeStorage[V any]() *prefixTreeStorage[V] {
	return &prefixTreeStorage[V]{inner: trie.New[V]()}
}

type prefixTreeStorage[V any] struct {
	inner *trie.Trie[V]
	size  int
}

func (s *prefixTreeStorage[V]) Get(key string) (V, bool) {
	return s.inner.Find(key)
}

func (s *prefixTreeStorage[V]) Set(key string, value V) {
	if _, ok := s.inner.Find(key); !ok {
		s.size++
	}
	s.inner.Add(key, value)
}

func (s *prefixTreeStorage[V]) Del(key string) {
	if _, ok := s.inner.Find(key); ok {
		s.size--
	}
	s.inner.Del(key)
}

func (s *prefixTreeStorage[V]) Len() int {
	return s.size
}

func (s *prefixTreeStorage[V]) Range(prefix string) Range[string, V] {
	keys, _ := s.inner.Suggest(prefix)
	return &sliceRange[V]{keys: keys, get: s.Get}
}

func (s *prefixTreeStorage[V]) ToMap() map[string]V {
	keys, _ := s.inner.Suggest("")
	out := make(map[string]V, len(keys))
	for _, k := range keys {
		v, _ := s.inner.Find(k)
		out[k] = v
	}
	return out
}
