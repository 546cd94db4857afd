package models

import "time"

// Item is a bibliographic record. Only the field subset relevant to the item's
// type is populated; everything else stays at the column default. Key is the
// natural identity for upserts. ParentItem is a nullable self reference used by
// attachments and notes.
type Item struct {
	ItemID   uint64 `gorm:"primaryKey;autoIncrement"`
	Key      string `gorm:"uniqueIndex:idx_items_key;size:255;not null"`
	Version  int    `gorm:"not null;default:0"`
	ItemType string `gorm:"size:64;not null;index"`

	Title               string `gorm:"type:text"`
	AbstractNote        string `gorm:"type:text"`
	ArtworkMedium       string
	ArtworkSize         string
	Date                string
	ShortTitle          string `gorm:"type:text"`
	Archive             string
	ArchiveLocation     string
	LibraryCatalog      string
	CallNumber          string
	URL                 string `gorm:"type:text"`
	AccessDate          string
	Rights              string
	Extra               string `gorm:"type:text"`
	AudioRecordingFormat string
	SeriesTitle         string
	NumberOfVolumes     string
	Volume              string
	Place               string
	Label               string
	RunningTime         string
	ISBN                string
	BillNumber          string
	Code                string
	CodeVolume          string
	Section             string
	CodePages           string
	LegislativeBody     string
	Session             string
	History             string
	BlogTitle           string
	WebsiteType         string
	Series              string
	SeriesNumber        string
	Edition             string
	Publisher           string
	NumPages            string
	BookTitle           string
	Pages               string
	Court               string
	DateDecided         string
	DocketNumber        string
	Reporter            string
	ReporterVolume      string
	FirstPage           string
	VersionNumber       string
	System              string
	Company             string
	ProgrammingLanguage string
	ProceedingsTitle    string
	ConferenceName      string
	DOI                 string
	DictionaryTitle     string
	Subject             string
	EncyclopediaTitle   string
	Distributor         string
	Genre               string
	CaseName            string
	VideoRecordingFormat string
	ForumTitle          string
	PostType            string
	Committee           string
	DocumentNumber      string
	InterviewMedium     string
	PublicationTitle    string
	Issue               string
	SeriesText          string
	JournalAbbreviation string
	ISSN                string
	LetterType          string
	ManuscriptType      string
	MapType             string
	Scale               string
	Note                string `gorm:"type:text"`
	Country             string
	Assignee            string
	IssuingAuthority    string
	PatentNumber        string
	FilingDate          string
	ApplicationNumber   string
	PriorityNumbers     string
	IssueDate           string
	References          string `gorm:"type:text"`
	LegalStatus         string
	EpisodeNumber       string
	AudioFileType       string
	PresentationType    string
	MeetingName         string
	ProgramTitle        string
	Network             string
	ReportNumber        string
	ReportType          string
	Institution         string
	NameOfAct           string
	CodeNumber          string
	PublicLawNumber     string
	DateEnacted         string
	ThesisType          string
	University          string
	Studio              string
	WebsiteTitle        string

	// File attachment fields
	LinkMode    string
	ContentType string
	Filename    string
	MD5         string
	Mtime       string
	Charset     string

	DateAdded    time.Time
	DateModified time.Time

	FullTextPDF       string `gorm:"type:text"`
	PDFCoverPageImage string `gorm:"type:text"`

	Deleted int `gorm:"default:0"`

	LanguageName    *string `gorm:"size:255;index"`
	GroupExternalID int64   `gorm:"index"`
	ParentItem      *string `gorm:"size:255;index"`

	Tags        StringList `gorm:"type:text"`
	Collections StringList `gorm:"type:text"`

	Relations JSON

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for Item
func (Item) TableName() string {
	return "items"
}
