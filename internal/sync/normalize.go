package sync

import (
	"strings"

	"github.com/refsync/refsync/internal/zotero"
)

// itemTypes is the fixed set of schema variants an item can map onto. The set
// contains no case-colliding duplicates.
var itemTypes = []string{
	"Artwork",
	"Attachment",
	"AudioRecording",
	"Bill",
	"BlogPost",
	"Book",
	"BookSection",
	"Case",
	"ComputerProgram",
	"ConferencePaper",
	"DictionaryEntry",
	"Document",
	"Email",
	"EncyclopediaArticle",
	"Film",
	"ForumPost",
	"Hearing",
	"InstantMessage",
	"Interview",
	"JournalArticle",
	"Letter",
	"MagazineArticle",
	"Manuscript",
	"Map",
	"NewspaperArticle",
	"Note",
	"Patent",
	"Podcast",
	"Presentation",
	"RadioBroadcast",
	"Report",
	"Statute",
	"Thesis",
	"TVBroadcast",
	"VideoRecording",
	"Webpage",
}

// MatchItemType normalizes the item's free-text type to the canonical variant
// name, matching case-insensitively. On success the type is rewritten in place
// and true is returned. Unrecognized types return false; the caller must skip
// the record entirely.
func MatchItemType(it *zotero.Item) bool {
	for _, t := range itemTypes {
		if strings.EqualFold(t, it.Data.ItemType) {
			it.Data.ItemType = t
			return true
		}
	}
	return false
}
