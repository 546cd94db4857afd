package sync

import (
	"reflect"
	"testing"
	"time"

	"github.com/refsync/refsync/internal/models"
	"github.com/refsync/refsync/internal/types"
	"github.com/refsync/refsync/internal/zotero"
)

func sampleItem() *zotero.Item {
	return &zotero.Item{
		Key:     "ABCD1234",
		Version: 42,
		Library: zotero.Library{Type: "group", ID: 777},
		Data: zotero.ItemData{
			Key:          "ABCD1234",
			Version:      42,
			ItemType:     "JournalArticle",
			Title:        "On Widgets",
			DOI:          "10.1000/widgets",
			Language:     "en",
			DateAdded:    "2023-05-01T10:00:00Z",
			DateModified: "2023-06-02T11:30:00Z",
			Tags:         []zotero.TagRef{{Tag: "widgets"}, {Tag: "gadgets"}},
			Collections:  []string{"COLL1", "COLL2"},
			Relations: zotero.Relations{
				"dc:relation": types.FlexList[string]{"http://example.com/a"},
			},
		},
	}
}

func TestNewItemRowMapsFields(t *testing.T) {
	row := NewItemRow(sampleItem())

	if row.Key != "ABCD1234" || row.Version != 42 || row.GroupExternalID != 777 {
		t.Fatalf("identity fields wrong: %+v", row)
	}
	if row.Title != "On Widgets" || row.DOI != "10.1000/widgets" {
		t.Errorf("descriptive fields wrong: title=%q doi=%q", row.Title, row.DOI)
	}
	if row.LanguageName == nil || *row.LanguageName != "en" {
		t.Errorf("LanguageName = %v, want en", row.LanguageName)
	}
	if row.ParentItem != nil {
		t.Errorf("ParentItem = %v, want nil", row.ParentItem)
	}
	wantAdded := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)
	if !row.DateAdded.Equal(wantAdded) {
		t.Errorf("DateAdded = %v, want %v", row.DateAdded, wantAdded)
	}
	if !reflect.DeepEqual(row.Tags, models.StringList{"widgets", "gadgets"}) {
		t.Errorf("Tags = %v", row.Tags)
	}
	if !reflect.DeepEqual(row.Collections, models.StringList{"COLL1", "COLL2"}) {
		t.Errorf("Collections = %v", row.Collections)
	}
	if len(row.Relations.JSON) == 0 {
		t.Errorf("Relations not encoded")
	}
}

func TestNewItemRowIsPure(t *testing.T) {
	it := sampleItem()
	a := NewItemRow(it)
	b := NewItemRow(it)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("two mappings of the same item differ:\n%+v\n%+v", a, b)
	}
}

func TestNewItemRowAttachmentFields(t *testing.T) {
	it := &zotero.Item{
		Key:     "FILE0001",
		Library: zotero.Library{ID: 777},
		Data: zotero.ItemData{
			ItemType:    "Attachment",
			ParentItem:  "ABCD1234",
			LinkMode:    "imported_file",
			ContentType: "application/pdf",
			Filename:    "widgets.pdf",
			MD5:         "d41d8cd98f00b204e9800998ecf8427e",
			Mtime:       types.FlexUint64(1690000000000),
		},
	}
	row := NewItemRow(it)

	if row.ParentItem == nil || *row.ParentItem != "ABCD1234" {
		t.Errorf("ParentItem = %v, want ABCD1234", row.ParentItem)
	}
	if row.Mtime != "1690000000000" {
		t.Errorf("Mtime = %q, want decimal string", row.Mtime)
	}
	if row.Filename != "widgets.pdf" || row.ContentType != "application/pdf" {
		t.Errorf("attachment fields wrong: %+v", row)
	}
}

func TestNewItemRowEmptyOptionalFields(t *testing.T) {
	it := &zotero.Item{
		Key:  "MINIMAL1",
		Data: zotero.ItemData{ItemType: "Note"},
	}
	row := NewItemRow(it)

	if row.LanguageName != nil {
		t.Errorf("empty language should map to nil, got %v", row.LanguageName)
	}
	if row.Mtime != "" {
		t.Errorf("zero mtime should map to empty string, got %q", row.Mtime)
	}
	if row.Tags == nil || len(row.Tags) != 0 {
		t.Errorf("Tags should be an empty list, got %v", row.Tags)
	}
	if row.Collections != nil {
		t.Errorf("absent collections should stay nil, got %v", row.Collections)
	}
}

func TestNewCollectionRowMapsParent(t *testing.T) {
	c := &zotero.Collection{
		Key:     "COLL2",
		Library: zotero.Library{ID: 777},
		Meta:    zotero.CollectionMeta{NumItems: 3},
		Data: zotero.CollectionData{
			Key:              "COLL2",
			Version:          9,
			Name:             "Subtopic",
			ParentCollection: "COLL1",
		},
	}
	row := NewCollectionRow(c)
	if row.Key != "COLL2" || row.Version != 9 || row.Name != "Subtopic" {
		t.Fatalf("collection fields wrong: %+v", row)
	}
	if row.ParentCollection == nil || *row.ParentCollection != "COLL1" {
		t.Errorf("ParentCollection = %v, want COLL1", row.ParentCollection)
	}
	if row.NumItems != 3 {
		t.Errorf("NumItems = %d, want 3", row.NumItems)
	}

	c.Data.ParentCollection = ""
	if root := NewCollectionRow(c); root.ParentCollection != nil {
		t.Errorf("empty parent should map to nil, got %v", root.ParentCollection)
	}
}

func TestNewGroupRowSeedsCursorFromDataVersion(t *testing.T) {
	g := &zotero.Group{
		ID:      777,
		Version: 12,
		Meta:    zotero.GroupMeta{NumItems: 100},
		Data:    zotero.GroupData{Version: 12, Name: "Widgets Lab", Type: "PublicOpen"},
	}
	row := NewGroupRow(g)
	if row.ExternalID != 777 || row.Name != "Widgets Lab" {
		t.Fatalf("group fields wrong: %+v", row)
	}
	if row.ItemsVersion != 12 {
		t.Errorf("ItemsVersion = %d, want 12", row.ItemsVersion)
	}
}
