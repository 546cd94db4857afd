package sync

import (
	"testing"

	"github.com/refsync/refsync/internal/models"
)

func TestReconcileMembershipDiff(t *testing.T) {
	items := []*models.Item{
		{Key: "ITEM1", Collections: models.StringList{"B", "C"}},
	}
	known := map[string]struct{}{"A": {}, "B": {}, "C": {}}
	persisted := []models.ItemToCollection{
		{ItemKey: "ITEM1", CollectionKey: "A"},
		{ItemKey: "ITEM1", CollectionKey: "B"},
	}

	diff := ReconcileMembership(items, known, persisted)

	if len(diff.Inserts) != 1 || diff.Inserts[0].CollectionKey != "C" {
		t.Errorf("Inserts = %v, want single ITEM1/C", diff.Inserts)
	}
	if len(diff.Deletes) != 1 || diff.Deletes[0].CollectionKey != "A" {
		t.Errorf("Deletes = %v, want single ITEM1/A", diff.Deletes)
	}
	if diff.Unresolved != 0 {
		t.Errorf("Unresolved = %d, want 0", diff.Unresolved)
	}
}

func TestReconcileMembershipUnknownCollection(t *testing.T) {
	items := []*models.Item{
		{Key: "ITEM1", Collections: models.StringList{"MISSING"}},
	}
	diff := ReconcileMembership(items, map[string]struct{}{}, nil)

	if len(diff.Inserts) != 0 {
		t.Errorf("Inserts = %v, want none", diff.Inserts)
	}
	if diff.Unresolved != 1 {
		t.Errorf("Unresolved = %d, want 1", diff.Unresolved)
	}
}

func TestReconcileMembershipLeavesOtherItemsAlone(t *testing.T) {
	items := []*models.Item{
		{Key: "ITEM1", Collections: models.StringList{}},
	}
	persisted := []models.ItemToCollection{
		{ItemKey: "ITEM1", CollectionKey: "A"},
		{ItemKey: "UNTOUCHED", CollectionKey: "A"},
	}
	diff := ReconcileMembership(items, map[string]struct{}{"A": {}}, persisted)

	if len(diff.Deletes) != 1 || diff.Deletes[0].ItemKey != "ITEM1" {
		t.Errorf("Deletes = %v, want only ITEM1/A", diff.Deletes)
	}
}

func TestReconcileMembershipNoChange(t *testing.T) {
	items := []*models.Item{
		{Key: "ITEM1", Collections: models.StringList{"A"}},
	}
	persisted := []models.ItemToCollection{
		{ItemKey: "ITEM1", CollectionKey: "A"},
	}
	diff := ReconcileMembership(items, map[string]struct{}{"A": {}}, persisted)

	if len(diff.Inserts) != 0 || len(diff.Deletes) != 0 || diff.Unresolved != 0 {
		t.Errorf("expected empty diff, got %+v", diff)
	}
}
