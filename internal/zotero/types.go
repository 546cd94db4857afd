package zotero

import (
	"encoding/json"

	"github.com/refsync/refsync/internal/types"
)

// Relations maps a relation predicate to one or more URIs. The remote API emits
// either a single string or an array per predicate.
type Relations map[string]types.FlexList[string]

// ParentRef is a parent collection reference that arrives as either a key
// string or the JSON literal false when the collection has no parent.
type ParentRef string

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *ParentRef) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" || string(data) == "false" || string(data) == "true" {
		*p = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*p = ParentRef(s)
	return nil
}

// Library identifies the owning container of a record.
type Library struct {
	Type string `json:"type"`
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Creator is an author/editor/etc entry on an item.
type Creator struct {
	CreatorType string `json:"creatorType"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Name        string `json:"name,omitempty"`
}

// TagRef is the remote tag object wrapper around a plain tag name.
type TagRef struct {
	Tag string `json:"tag"`
}

// ItemMeta carries derived metadata the API computes per item.
type ItemMeta struct {
	CreatorSummary string `json:"creatorSummary,omitempty"`
	ParsedDate     string `json:"parsedDate,omitempty"`
	NumChildren    int    `json:"numChildren,omitempty"`
}

// ItemData is the editable data payload of a remote item. Only the subset
// relevant to the item's type is present on the wire; everything else decodes
// to its zero value.
type ItemData struct {
	Key      string `json:"key"`
	Version  int    `json:"version"`
	ItemType string `json:"itemType"`

	Title                string    `json:"title,omitempty"`
	AbstractNote         string    `json:"abstractNote,omitempty"`
	ArtworkMedium        string    `json:"artworkMedium,omitempty"`
	ArtworkSize          string    `json:"artworkSize,omitempty"`
	Date                 string    `json:"date,omitempty"`
	ShortTitle           string    `json:"shortTitle,omitempty"`
	Archive              string    `json:"archive,omitempty"`
	ArchiveLocation      string    `json:"archiveLocation,omitempty"`
	LibraryCatalog       string    `json:"libraryCatalog,omitempty"`
	CallNumber           string    `json:"callNumber,omitempty"`
	URL                  string    `json:"url,omitempty"`
	AccessDate           string    `json:"accessDate,omitempty"`
	Rights               string    `json:"rights,omitempty"`
	Extra                string    `json:"extra,omitempty"`
	AudioRecordingFormat string    `json:"audioRecordingFormat,omitempty"`
	SeriesTitle          string    `json:"seriesTitle,omitempty"`
	NumberOfVolumes      string    `json:"numberOfVolumes,omitempty"`
	Volume               string    `json:"volume,omitempty"`
	Place                string    `json:"place,omitempty"`
	Label                string    `json:"label,omitempty"`
	RunningTime          string    `json:"runningTime,omitempty"`
	ISBN                 string    `json:"ISBN,omitempty"`
	BillNumber           string    `json:"billNumber,omitempty"`
	Code                 string    `json:"code,omitempty"`
	CodeVolume           string    `json:"codeVolume,omitempty"`
	Section              string    `json:"section,omitempty"`
	CodePages            string    `json:"codePages,omitempty"`
	LegislativeBody      string    `json:"legislativeBody,omitempty"`
	Session              string    `json:"session,omitempty"`
	History              string    `json:"history,omitempty"`
	BlogTitle            string    `json:"blogTitle,omitempty"`
	WebsiteType          string    `json:"websiteType,omitempty"`
	Series               string    `json:"series,omitempty"`
	SeriesNumber         string    `json:"seriesNumber,omitempty"`
	Edition              string    `json:"edition,omitempty"`
	Publisher            string    `json:"publisher,omitempty"`
	NumPages             string    `json:"numPages,omitempty"`
	BookTitle            string    `json:"bookTitle,omitempty"`
	Pages                string    `json:"pages,omitempty"`
	Court                string    `json:"court,omitempty"`
	DateDecided          string    `json:"dateDecided,omitempty"`
	DocketNumber         string    `json:"docketNumber,omitempty"`
	Reporter             string    `json:"reporter,omitempty"`
	ReporterVolume       string    `json:"reporterVolume,omitempty"`
	FirstPage            string    `json:"firstPage,omitempty"`
	VersionNumber        string    `json:"versionNumber,omitempty"`
	System               string    `json:"system,omitempty"`
	Company              string    `json:"company,omitempty"`
	ProgrammingLanguage  string    `json:"programmingLanguage,omitempty"`
	ProceedingsTitle     string    `json:"proceedingsTitle,omitempty"`
	ConferenceName       string    `json:"conferenceName,omitempty"`
	DOI                  string    `json:"DOI,omitempty"`
	DictionaryTitle      string    `json:"dictionaryTitle,omitempty"`
	Subject              string    `json:"subject,omitempty"`
	EncyclopediaTitle    string    `json:"encyclopediaTitle,omitempty"`
	Distributor          string    `json:"distributor,omitempty"`
	Genre                string    `json:"genre,omitempty"`
	CaseName             string    `json:"caseName,omitempty"`
	VideoRecordingFormat string    `json:"videoRecordingFormat,omitempty"`
	ForumTitle           string    `json:"forumTitle,omitempty"`
	PostType             string    `json:"postType,omitempty"`
	Committee            string    `json:"committee,omitempty"`
	DocumentNumber       string    `json:"documentNumber,omitempty"`
	InterviewMedium      string    `json:"interviewMedium,omitempty"`
	PublicationTitle     string    `json:"publicationTitle,omitempty"`
	Issue                string    `json:"issue,omitempty"`
	SeriesText           string    `json:"seriesText,omitempty"`
	JournalAbbreviation  string    `json:"journalAbbreviation,omitempty"`
	ISSN                 string    `json:"ISSN,omitempty"`
	LetterType           string    `json:"letterType,omitempty"`
	ManuscriptType       string    `json:"manuscriptType,omitempty"`
	MapType              string    `json:"mapType,omitempty"`
	Scale                string    `json:"scale,omitempty"`
	Note                 string    `json:"note,omitempty"`
	Country              string    `json:"country,omitempty"`
	Assignee             string    `json:"assignee,omitempty"`
	IssuingAuthority     string    `json:"issuingAuthority,omitempty"`
	PatentNumber         string    `json:"patentNumber,omitempty"`
	FilingDate           string    `json:"filingDate,omitempty"`
	ApplicationNumber    string    `json:"applicationNumber,omitempty"`
	PriorityNumbers      string    `json:"priorityNumbers,omitempty"`
	IssueDate            string    `json:"issueDate,omitempty"`
	References           string    `json:"references,omitempty"`
	LegalStatus          string    `json:"legalStatus,omitempty"`
	EpisodeNumber        string    `json:"episodeNumber,omitempty"`
	AudioFileType        string    `json:"audioFileType,omitempty"`
	PresentationType     string    `json:"presentationType,omitempty"`
	MeetingName          string    `json:"meetingName,omitempty"`
	ProgramTitle         string    `json:"programTitle,omitempty"`
	Network              string    `json:"network,omitempty"`
	ReportNumber         string    `json:"reportNumber,omitempty"`
	ReportType           string    `json:"reportType,omitempty"`
	Institution          string    `json:"institution,omitempty"`
	NameOfAct            string    `json:"nameOfAct,omitempty"`
	CodeNumber           string    `json:"codeNumber,omitempty"`
	PublicLawNumber      string    `json:"publicLawNumber,omitempty"`
	DateEnacted          string    `json:"dateEnacted,omitempty"`
	ThesisType           string    `json:"thesisType,omitempty"`
	University           string    `json:"university,omitempty"`
	Studio               string    `json:"studio,omitempty"`
	WebsiteTitle         string    `json:"websiteTitle,omitempty"`
	Language             string    `json:"language,omitempty"`
	ParentItem           string    `json:"parentItem,omitempty"`
	Creators             []Creator `json:"creators,omitempty"`

	// File attachment fields
	LinkMode    string           `json:"linkMode,omitempty"`
	ContentType string           `json:"contentType,omitempty"`
	Filename    string           `json:"filename,omitempty"`
	MD5         string           `json:"md5,omitempty"`
	Mtime       types.FlexUint64 `json:"mtime,omitempty"`
	Charset     string           `json:"charset,omitempty"`

	Tags        []TagRef  `json:"tags,omitempty"`
	Collections []string  `json:"collections,omitempty"`
	Relations   Relations `json:"relations,omitempty"`

	Deleted      int    `json:"deleted,omitempty"`
	DateAdded    string `json:"dateAdded"`
	DateModified string `json:"dateModified"`
}

// Item is a remote item record as returned by the reference API.
type Item struct {
	Key     string   `json:"key"`
	Version int      `json:"version"`
	Library Library  `json:"library"`
	Meta    ItemMeta `json:"meta"`
	Data    ItemData `json:"data"`
}

// GroupMeta carries derived metadata the API computes per group.
type GroupMeta struct {
	Created      string `json:"created"`
	LastModified string `json:"lastModified"`
	NumItems     int    `json:"numItems"`
}

// GroupData is the editable data payload of a remote group.
type GroupData struct {
	ID          int64  `json:"id"`
	Version     int    `json:"version"`
	Name        string `json:"name"`
	Owner       int64  `json:"owner"`
	Type        string `json:"type"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Group is a remote group (library) record.
type Group struct {
	ID      int64     `json:"id"`
	Version int       `json:"version"`
	Meta    GroupMeta `json:"meta"`
	Data    GroupData `json:"data"`
}

// CollectionMeta carries derived per-collection counts.
type CollectionMeta struct {
	NumCollections int `json:"numCollections"`
	NumItems       int `json:"numItems"`
}

// CollectionData is the editable data payload of a remote collection.
type CollectionData struct {
	Key              string    `json:"key"`
	Version          int       `json:"version"`
	Name             string    `json:"name"`
	ParentCollection ParentRef `json:"parentCollection"`
	Relations        Relations `json:"relations,omitempty"`
	Deleted          bool      `json:"deleted,omitempty"`
}

// Collection is a remote collection record.
type Collection struct {
	Key     string         `json:"key"`
	Version int            `json:"version"`
	Library Library        `json:"library"`
	Meta    CollectionMeta `json:"meta"`
	Data    CollectionData `json:"data"`
}
