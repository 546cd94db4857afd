package sync

import (
	"sort"

	"github.com/refsync/refsync/internal/models"
)

const (
	hierarchyUnvisited = iota
	hierarchyVisiting
	hierarchyDone
)

// OrderCollections orders a batch of freshly mapped collections so that every
// collection whose parent is present in the same batch appears strictly after
// that parent, making self-referential foreign keys satisfiable at insert
// time. Parents not in the batch are assumed already persisted and impose no
// constraint. Each collection appears exactly once.
//
// The second return value counts parent edges that form a cycle within the
// batch; such edges are reported rather than enforced, and the traversal still
// emits every collection.
func OrderCollections(batch map[string]*models.Collection) ([]*models.Collection, int) {
	ordered := make([]*models.Collection, 0, len(batch))
	state := make(map[string]int, len(batch))
	cycles := 0

	keys := make([]string, 0, len(batch))
	for k := range batch {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var visit func(key string)
	visit = func(key string) {
		c, ok := batch[key]
		if !ok {
			return
		}
		switch state[key] {
		case hierarchyDone:
			return
		case hierarchyVisiting:
			cycles++
			return
		}
		state[key] = hierarchyVisiting
		if c.ParentCollection != nil {
			visit(*c.ParentCollection)
		}
		state[key] = hierarchyDone
		ordered = append(ordered, c)
	}

	for _, key := range keys {
		visit(key)
	}

	return ordered, cycles
}
