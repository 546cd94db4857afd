package sync

import (
	"testing"

	"github.com/refsync/refsync/internal/models"
)

func collection(key string, parent string) *models.Collection {
	c := &models.Collection{Key: key}
	if parent != "" {
		p := parent
		c.ParentCollection = &p
	}
	return c
}

func positions(ordered []*models.Collection) map[string]int {
	pos := make(map[string]int, len(ordered))
	for i, c := range ordered {
		pos[c.Key] = i
	}
	return pos
}

func TestOrderCollectionsParentsFirst(t *testing.T) {
	batch := map[string]*models.Collection{
		"LEAF":  collection("LEAF", "MID"),
		"MID":   collection("MID", "ROOT"),
		"ROOT":  collection("ROOT", ""),
		"OTHER": collection("OTHER", ""),
	}

	ordered, cycles := OrderCollections(batch)
	if cycles != 0 {
		t.Fatalf("cycles = %d, want 0", cycles)
	}
	if len(ordered) != len(batch) {
		t.Fatalf("len = %d, want %d", len(ordered), len(batch))
	}

	pos := positions(ordered)
	if pos["ROOT"] > pos["MID"] || pos["MID"] > pos["LEAF"] {
		t.Errorf("parent ordering violated: %v", pos)
	}
}

func TestOrderCollectionsExternalParent(t *testing.T) {
	// Parent persisted in an earlier pass, not part of this batch.
	batch := map[string]*models.Collection{
		"CHILD": collection("CHILD", "PERSISTED"),
	}
	ordered, cycles := OrderCollections(batch)
	if cycles != 0 || len(ordered) != 1 || ordered[0].Key != "CHILD" {
		t.Fatalf("ordered = %v cycles = %d", ordered, cycles)
	}
}

func TestOrderCollectionsCycle(t *testing.T) {
	batch := map[string]*models.Collection{
		"A": collection("A", "B"),
		"B": collection("B", "A"),
		"C": collection("C", ""),
	}
	ordered, cycles := OrderCollections(batch)
	if cycles == 0 {
		t.Errorf("cycle not detected")
	}
	if len(ordered) != len(batch) {
		t.Errorf("len = %d, want %d; every collection must still be emitted", len(ordered), len(batch))
	}
}

func TestOrderCollectionsSelfParent(t *testing.T) {
	batch := map[string]*models.Collection{
		"SELF": collection("SELF", "SELF"),
	}
	ordered, cycles := OrderCollections(batch)
	if cycles != 1 || len(ordered) != 1 {
		t.Fatalf("ordered = %v cycles = %d", ordered, cycles)
	}
}

func TestOrderCollectionsDeterministic(t *testing.T) {
	batch := map[string]*models.Collection{
		"B": collection("B", ""),
		"A": collection("A", ""),
		"C": collection("C", "A"),
	}
	first, _ := OrderCollections(batch)
	for i := 0; i < 5; i++ {
		again, _ := OrderCollections(batch)
		for j := range first {
			if first[j].Key != again[j].Key {
				t.Fatalf("ordering not deterministic: run %d differs at %d", i, j)
			}
		}
	}
}
