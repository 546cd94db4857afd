package sync

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	stdsync "sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"github.com/refsync/refsync/internal/config"
	"github.com/refsync/refsync/internal/models"
	"github.com/refsync/refsync/internal/pdfcontent"
	"github.com/refsync/refsync/internal/storage"
	"github.com/refsync/refsync/internal/zotero"
)

// Remote is the reference API surface a sync pass consumes.
type Remote interface {
	Collections(ctx context.Context, groupID string, since int) ([]zotero.Collection, error)
	Items(ctx context.Context, groupID string, since int) ([][]zotero.Item, int, error)
	DownloadAttachment(ctx context.Context, groupID, itemKey, dest string) error
}

// ContentExtractor derives text and a cover image from PDF data.
type ContentExtractor interface {
	Extract(data []byte) (pdfcontent.Content, error)
}

// Options tune a sync pass.
type Options struct {
	RetryAttempts    int
	RetryDelay       time.Duration
	BatchSize        int
	ProcessBatchSize int
	TempDir          string
	SnapshotDir      string
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		RetryAttempts:    3,
		RetryDelay:       3 * time.Second,
		BatchSize:        500,
		ProcessBatchSize: 20,
		TempDir:          "temp",
		SnapshotDir:      ".",
	}
}

// OptionsFromConfig maps the application configuration onto sync options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		RetryAttempts:    cfg.SyncRetryAttempts,
		RetryDelay:       cfg.SyncRetryDelay,
		BatchSize:        cfg.SyncBatchSize,
		ProcessBatchSize: cfg.SyncProcessBatchSize,
		TempDir:          cfg.SyncTempDir,
		SnapshotDir:      cfg.SyncSnapshotDir,
	}
}

// Syncer runs incremental reconciliation passes against the local database.
type Syncer struct {
	db        *gorm.DB
	remote    Remote
	store     storage.ObjectStore
	extractor ContentExtractor
	opts      Options
	stats     Stats
}

// New creates a Syncer.
func New(db *gorm.DB, remote Remote, store storage.ObjectStore, extractor ContentExtractor, opts Options) *Syncer {
	if opts.BatchSize < 1 {
		opts.BatchSize = DefaultOptions().BatchSize
	}
	if opts.ProcessBatchSize < 1 {
		opts.ProcessBatchSize = DefaultOptions().ProcessBatchSize
	}
	if opts.RetryAttempts < 1 {
		opts.RetryAttempts = 1
	}
	return &Syncer{db: db, remote: remote, store: store, extractor: extractor, opts: opts}
}

// Stats returns a copy of the counters accumulated so far.
func (s *Syncer) Stats() Stats {
	return s.stats
}

// assignmentsExcept derives the model's column list minus the given columns,
// for symmetric upserts that overwrite everything except identity and
// creation metadata.
func assignmentsExcept(db *gorm.DB, model interface{}, except ...string) ([]string, error) {
	sch, err := schema.Parse(model, &stdsync.Map{}, db.NamingStrategy)
	if err != nil {
		return nil, err
	}
	skip := make(map[string]struct{}, len(except))
	for _, e := range except {
		skip[e] = struct{}{}
	}
	var cols []string
	for _, f := range sch.Fields {
		if f.DBName == "" {
			continue
		}
		if _, ok := skip[f.DBName]; ok {
			continue
		}
		cols = append(cols, f.DBName)
	}
	return cols, nil
}

// SaveGroups upserts the remote group listing, keyed by external id. The
// per-group sync cursor is never touched here. The returned rows are the
// persisted state, cursors included.
func (s *Syncer) SaveGroups(ctx context.Context, groups []zotero.Group) ([]models.Group, error) {
	s.snapshot("groupData.json", groups)

	rows := make([]*models.Group, 0, len(groups))
	ids := make([]int64, 0, len(groups))
	for i := range groups {
		rows = append(rows, NewGroupRow(&groups[i]))
		ids = append(ids, groups[i].ID)
	}

	if len(rows) > 0 {
		cols, err := assignmentsExcept(s.db, &models.Group{},
			"group_id", "external_id", "items_version", "created_at")
		if err != nil {
			return nil, err
		}
		err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns(cols),
		}).CreateInBatches(rows, s.opts.BatchSize).Error
		if err != nil {
			return nil, fmt.Errorf("save groups: %w", err)
		}
	}

	var persisted []models.Group
	if err := s.db.WithContext(ctx).Where("external_id IN ?", ids).Find(&persisted).Error; err != nil {
		return nil, fmt.Errorf("load groups: %w", err)
	}
	return persisted, nil
}

// SyncGroup runs one incremental pass for the group: collections first, then
// item chunks with attachment archival, then memberships, and finally the
// cursor advance. The cursor moves only after every chunk has been persisted,
// so an interrupted pass repeats work instead of losing it.
func (s *Syncer) SyncGroup(ctx context.Context, group *models.Group) error {
	gid := strconv.FormatInt(group.ExternalID, 10)
	since := group.ItemsVersion
	log.Printf("sync group %s: starting from version %d", gid, since)

	type itemListing struct {
		chunks  [][]zotero.Item
		version int
	}
	listing, err := retry(ctx, s.opts.RetryAttempts, s.opts.RetryDelay, func() (itemListing, error) {
		chunks, version, err := s.remote.Items(ctx, gid, since)
		return itemListing{chunks: chunks, version: version}, err
	})
	if err != nil {
		return fmt.Errorf("group %s: fetch items: %w", gid, err)
	}
	s.snapshot("allFetchedItems.json", listing.chunks)
	s.snapshot("lastModifiedVersion.json", map[string]int{gid: listing.version})

	if err := s.syncCollections(ctx, group, gid, since); err != nil {
		return err
	}

	known, err := s.knownCollectionKeys(ctx, group.ExternalID)
	if err != nil {
		return err
	}

	for _, chunk := range listing.chunks {
		if len(chunk) == 0 {
			s.stats.MalformedChunks++
			continue
		}
		if err := s.syncChunk(ctx, gid, chunk, known); err != nil {
			return fmt.Errorf("group %s: %w", gid, err)
		}
	}

	if listing.version != since {
		err := s.db.WithContext(ctx).Model(&models.Group{}).
			Where("external_id = ?", group.ExternalID).
			Update("items_version", listing.version).Error
		if err != nil {
			return fmt.Errorf("group %s: advance cursor: %w", gid, err)
		}
		group.ItemsVersion = listing.version
	}

	log.Printf("sync group %s: done at version %d: %s", gid, group.ItemsVersion, s.stats)
	return nil
}

// syncCollections fetches and upserts the group's changed collections,
// parents ordered before children within the batch.
func (s *Syncer) syncCollections(ctx context.Context, group *models.Group, gid string, since int) error {
	cols, err := retry(ctx, s.opts.RetryAttempts, s.opts.RetryDelay, func() ([]zotero.Collection, error) {
		return s.remote.Collections(ctx, gid, since)
	})
	if err != nil {
		return fmt.Errorf("group %s: fetch collections: %w", gid, err)
	}
	s.snapshot("fetchedCollections-"+gid+".json", cols)
	if len(cols) == 0 {
		return nil
	}

	batch := make(map[string]*models.Collection, len(cols))
	for i := range cols {
		row := NewCollectionRow(&cols[i])
		batch[row.Key] = row
	}

	ordered, cycles := OrderCollections(batch)
	if cycles > 0 {
		s.stats.HierarchyCycles += cycles
		log.Printf("group %s: %d parent cycles in collection batch", gid, cycles)
	}

	assignments, err := assignmentsExcept(s.db, &models.Collection{},
		"collection_id", "key", "created_at")
	if err != nil {
		return err
	}

	// Rows go in one at a time in hierarchy order; a batched insert could
	// place a child before its in-batch parent.
	for _, row := range ordered {
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns(assignments),
		}).Create(row).Error
		if err != nil {
			return fmt.Errorf("group %s: save collection %s: %w", gid, row.Key, err)
		}
	}
	s.stats.Collections += len(ordered)
	return nil
}

// knownCollectionKeys loads the set of persisted collection keys for the
// group, the reference set for membership validation.
func (s *Syncer) knownCollectionKeys(ctx context.Context, externalID int64) (map[string]struct{}, error) {
	var keys []string
	err := s.db.WithContext(ctx).Model(&models.Collection{}).
		Where("group_external_id = ?", externalID).
		Pluck("key", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("load collection keys: %w", err)
	}
	known := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		known[k] = struct{}{}
	}
	return known, nil
}

// syncChunk normalizes, archives and persists one page of fetched items, then
// reconciles their collection memberships.
func (s *Syncer) syncChunk(ctx context.Context, gid string, chunk []zotero.Item, known map[string]struct{}) error {
	rows := make([]*models.Item, 0, len(chunk))
	languages := make(map[string]struct{})
	for i := range chunk {
		it := &chunk[i]
		if !MatchItemType(it) {
			s.stats.UnknownTypes++
			log.Printf("item %s: unknown type %q, skipped", it.Key, it.Data.ItemType)
			continue
		}
		row := NewItemRow(it)
		if row.LanguageName != nil {
			languages[*row.LanguageName] = struct{}{}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil
	}

	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, row.Key)
	}
	var prevRows []models.Item
	if err := s.db.WithContext(ctx).Where("key IN ?", keys).Find(&prevRows).Error; err != nil {
		return fmt.Errorf("load existing items: %w", err)
	}
	prevByKey := make(map[string]*models.Item, len(prevRows))
	for i := range prevRows {
		prevByKey[prevRows[i].Key] = &prevRows[i]
	}

	var tasks []*attachTask
	for _, row := range rows {
		if qualifiesForArchive(row) {
			tasks = append(tasks, &attachTask{row: row, prev: prevByKey[row.Key]})
		}
	}
	s.runAttachments(ctx, gid, tasks)

	if err := s.saveLanguages(ctx, languages); err != nil {
		return err
	}
	if err := s.saveItems(ctx, rows); err != nil {
		return err
	}
	return s.reconcileChunkMembership(ctx, rows, known)
}

// saveLanguages inserts any languages not yet present. Names are never
// updated or removed.
func (s *Syncer) saveLanguages(ctx context.Context, names map[string]struct{}) error {
	if len(names) == 0 {
		return nil
	}
	rows := make([]models.Language, 0, len(names))
	for name := range names {
		rows = append(rows, models.Language{Name: name})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(rows, s.opts.BatchSize).Error
	if err != nil {
		return fmt.Errorf("save languages: %w", err)
	}
	s.stats.Languages += len(rows)
	return nil
}

// saveItems upserts item rows keyed by key, parents ordered before children
// so the self-referential parent constraint holds within the batch.
func (s *Syncer) saveItems(ctx context.Context, rows []*models.Item) error {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ParentItem == nil && rows[j].ParentItem != nil
	})

	assignments, err := assignmentsExcept(s.db, &models.Item{},
		"item_id", "key", "created_at")
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns(assignments),
	}).CreateInBatches(rows, s.opts.BatchSize).Error
	if err != nil {
		return fmt.Errorf("save items: %w", err)
	}
	s.stats.Items += len(rows)
	return nil
}

// reconcileChunkMembership applies the membership diff for one chunk of items.
func (s *Syncer) reconcileChunkMembership(ctx context.Context, rows []*models.Item, known map[string]struct{}) error {
	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, row.Key)
	}
	var persisted []models.ItemToCollection
	err := s.db.WithContext(ctx).Where("item_key IN ?", keys).Find(&persisted).Error
	if err != nil {
		return fmt.Errorf("load memberships: %w", err)
	}

	diff := ReconcileMembership(rows, known, persisted)
	s.stats.UnresolvedCollections += diff.Unresolved
	if diff.Unresolved > 0 {
		log.Printf("memberships: %d unresolved collection references dropped", diff.Unresolved)
	}

	if len(diff.Inserts) > 0 {
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
			CreateInBatches(diff.Inserts, s.opts.BatchSize).Error
		if err != nil {
			return fmt.Errorf("insert memberships: %w", err)
		}
		s.stats.MembershipInserts += len(diff.Inserts)
	}

	// Deletes go one pair at a time; a combined IN over both key columns
	// would remove the cross product.
	for _, row := range diff.Deletes {
		err := s.db.WithContext(ctx).
			Where("item_key = ? AND collection_key = ?", row.ItemKey, row.CollectionKey).
			Delete(&models.ItemToCollection{}).Error
		if err != nil {
			return fmt.Errorf("delete membership %s/%s: %w", row.ItemKey, row.CollectionKey, err)
		}
		s.stats.MembershipDeletes++
	}
	return nil
}
