package memory

import (
	"fmt"
	"sort"

	"github.com/bwc/pos/internal/repository"
)

// table is an id-keyed collection with its own sequence. It is not
// synchronised; Store guards every table with a single lock.
type table[T any] struct {
	name  string
	rows  map[int64]T
	seq   int64
	clone func(T) T
}

func newTable[T any](name string, clone func(T) T) *table[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &table[T]{name: name, rows: make(map[int64]T), clone: clone}
}

func (t *table[T]) next() int64 {
	t.seq++
	return t.seq
}

func (t *table[T]) put(id int64, v T) {
	t.rows[id] = t.clone(v)
}

func (t *table[T]) get(id int64) (T, error) {
	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %d: %w", t.name, id, repository.ErrNotFound)
	}
	return t.clone(v), nil
}

func (t *table[T]) replace(id int64, v T) error {
	if _, ok := t.rows[id]; !ok {
		return fmt.Errorf("%s %d: %w", t.name, id, repository.ErrNotFound)
	}
	t.rows[id] = t.clone(v)
	return nil
}

func (t *table[T]) remove(id int64) error {
	if _, ok := t.rows[id]; !ok {
		return fmt.Errorf("%s %d: %w", t.name, id, repository.ErrNotFound)
	}
	delete(t.rows, id)
	return nil
}

// all returns the rows matching keep (or every row when keep is nil) in
// ascending id order.
func (t *table[T]) all(keep func(T) bool) []T {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		v := t.rows[id]
		if keep != nil && !keep(v) {
			continue
		}
		out = append(out, t.clone(v))
	}
	return out
}
