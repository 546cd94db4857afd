package sync

import (
	"github.com/refsync/refsync/internal/models"
)

// membershipKey identifies one item/collection association.
type membershipKey struct {
	ItemKey       string
	CollectionKey string
}

// MembershipDiff is the set-difference outcome of reconciling the memberships
// declared by a batch of fetched items against the persisted association rows.
type MembershipDiff struct {
	// Inserts are declared memberships without a persisted row.
	Inserts []models.ItemToCollection
	// Deletes are persisted rows no longer declared by their item.
	Deletes []models.ItemToCollection
	// Unresolved counts declared memberships referencing a collection key
	// that is neither in the current batch nor already persisted. They are
	// dropped, not inserted; a later pass picks them up once the collection
	// exists.
	Unresolved int
}

// ReconcileMembership diffs the membership lists of the fetched items against
// the persisted associations of those same items. Only items present in the
// batch contribute deletes; associations of untouched items are left alone.
// Insert candidates are validated against knownCollections so the association
// table never references a collection row that does not exist.
func ReconcileMembership(items []*models.Item, knownCollections map[string]struct{}, persisted []models.ItemToCollection) MembershipDiff {
	var diff MembershipDiff

	desired := make(map[membershipKey]struct{})
	inBatch := make(map[string]struct{}, len(items))
	for _, it := range items {
		inBatch[it.Key] = struct{}{}
		for _, ck := range it.Collections {
			desired[membershipKey{ItemKey: it.Key, CollectionKey: ck}] = struct{}{}
		}
	}

	have := make(map[membershipKey]struct{}, len(persisted))
	for _, row := range persisted {
		k := membershipKey{ItemKey: row.ItemKey, CollectionKey: row.CollectionKey}
		have[k] = struct{}{}
		if _, ok := inBatch[row.ItemKey]; !ok {
			continue
		}
		if _, ok := desired[k]; !ok {
			diff.Deletes = append(diff.Deletes, models.ItemToCollection{
				ItemKey:       row.ItemKey,
				CollectionKey: row.CollectionKey,
			})
		}
	}

	for _, it := range items {
		for _, ck := range it.Collections {
			k := membershipKey{ItemKey: it.Key, CollectionKey: ck}
			if _, ok := have[k]; ok {
				continue
			}
			if _, ok := knownCollections[ck]; !ok {
				diff.Unresolved++
				continue
			}
			diff.Inserts = append(diff.Inserts, models.ItemToCollection{
				ItemKey:       it.Key,
				CollectionKey: ck,
			})
		}
	}

	return diff
}
