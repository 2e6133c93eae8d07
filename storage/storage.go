// Package storage provides generic string-keyed storage backends for the
// record store.
package storage

type Storage[V any] interface {
	Get(string) (V, bool)
	Set(string, V)
	Del(string)
	Len() int
	Range(prefix string) Range[string, V]
	ToMap() map[string]V
}

type Range[K comparable, V any] interface {
	Next() bool
	Value() (K, V)
}
