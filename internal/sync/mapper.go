package sync

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/refsync/refsync/internal/models"
	"github.com/refsync/refsync/internal/zotero"
	"gorm.io/datatypes"
)

// relationsJSON serializes a non-empty relation map; an empty map stays NULL so
// the column distinguishes "no relations" from an empty JSON document.
func relationsJSON(rel zotero.Relations) models.JSON {
	if len(rel) == 0 {
		return models.JSON{}
	}
	data, err := json.Marshal(rel)
	if err != nil {
		return models.JSON{}
	}
	return models.JSON{JSON: datatypes.JSON(data)}
}

// parseDate parses the remote ISO timestamp. The source contract guarantees a
// non-empty value; an unparsable one maps to the zero time (best effort).
func parseDate(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func optionalKey(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}

// NewGroupRow maps a remote group onto its table row. ItemsVersion is seeded
// from the remote data version on first insert and preserved on upsert.
func NewGroupRow(g *zotero.Group) *models.Group {
	return &models.Group{
		ExternalID:   g.ID,
		Version:      g.Version,
		NumItems:     g.Meta.NumItems,
		Description:  g.Data.Description,
		ItemsVersion: g.Data.Version,
		Name:         g.Data.Name,
		Type:         g.Data.Type,
		URL:          g.Data.URL,
	}
}

// NewItemRow maps a normalized remote item onto its table row. The mapping is
// an explicit per-field table: every destination column with a remote
// counterpart is assigned here, with the field-specific transforms (relations
// JSON encoding, tag flattening, date parsing, nullable parent/language refs)
// applied in place. Columns without a remote counterpart (ids, computed
// timestamps) are left to storage defaults. Pure transform, no side effects.
func NewItemRow(it *zotero.Item) *models.Item {
	d := &it.Data

	row := &models.Item{
		Key:             it.Key,
		Version:         it.Version,
		GroupExternalID: it.Library.ID,
		ItemType:        d.ItemType,

		Title:                d.Title,
		AbstractNote:         d.AbstractNote,
		ArtworkMedium:        d.ArtworkMedium,
		ArtworkSize:          d.ArtworkSize,
		Date:                 d.Date,
		ShortTitle:           d.ShortTitle,
		Archive:              d.Archive,
		ArchiveLocation:      d.ArchiveLocation,
		LibraryCatalog:       d.LibraryCatalog,
		CallNumber:           d.CallNumber,
		URL:                  d.URL,
		AccessDate:           d.AccessDate,
		Rights:               d.Rights,
		Extra:                d.Extra,
		AudioRecordingFormat: d.AudioRecordingFormat,
		SeriesTitle:          d.SeriesTitle,
		NumberOfVolumes:      d.NumberOfVolumes,
		Volume:               d.Volume,
		Place:                d.Place,
		Label:                d.Label,
		RunningTime:          d.RunningTime,
		ISBN:                 d.ISBN,
		BillNumber:           d.BillNumber,
		Code:                 d.Code,
		CodeVolume:           d.CodeVolume,
		Section:              d.Section,
		CodePages:            d.CodePages,
		LegislativeBody:      d.LegislativeBody,
		Session:              d.Session,
		History:              d.History,
		BlogTitle:            d.BlogTitle,
		WebsiteType:          d.WebsiteType,
		Series:               d.Series,
		SeriesNumber:         d.SeriesNumber,
		Edition:              d.Edition,
		Publisher:            d.Publisher,
		NumPages:             d.NumPages,
		BookTitle:            d.BookTitle,
		Pages:                d.Pages,
		Court:                d.Court,
		DateDecided:          d.DateDecided,
		DocketNumber:         d.DocketNumber,
		Reporter:             d.Reporter,
		ReporterVolume:       d.ReporterVolume,
		FirstPage:            d.FirstPage,
		VersionNumber:        d.VersionNumber,
		System:               d.System,
		Company:              d.Company,
		ProgrammingLanguage:  d.ProgrammingLanguage,
		ProceedingsTitle:     d.ProceedingsTitle,
		ConferenceName:       d.ConferenceName,
		DOI:                  d.DOI,
		DictionaryTitle:      d.DictionaryTitle,
		Subject:              d.Subject,
		EncyclopediaTitle:    d.EncyclopediaTitle,
		Distributor:          d.Distributor,
		Genre:                d.Genre,
		CaseName:             d.CaseName,
		VideoRecordingFormat: d.VideoRecordingFormat,
		ForumTitle:           d.ForumTitle,
		PostType:             d.PostType,
		Committee:            d.Committee,
		DocumentNumber:       d.DocumentNumber,
		InterviewMedium:      d.InterviewMedium,
		PublicationTitle:     d.PublicationTitle,
		Issue:                d.Issue,
		SeriesText:           d.SeriesText,
		JournalAbbreviation:  d.JournalAbbreviation,
		ISSN:                 d.ISSN,
		LetterType:           d.LetterType,
		ManuscriptType:       d.ManuscriptType,
		MapType:              d.MapType,
		Scale:                d.Scale,
		Note:                 d.Note,
		Country:              d.Country,
		Assignee:             d.Assignee,
		IssuingAuthority:     d.IssuingAuthority,
		PatentNumber:         d.PatentNumber,
		FilingDate:           d.FilingDate,
		ApplicationNumber:    d.ApplicationNumber,
		PriorityNumbers:      d.PriorityNumbers,
		IssueDate:            d.IssueDate,
		References:           d.References,
		LegalStatus:          d.LegalStatus,
		EpisodeNumber:        d.EpisodeNumber,
		AudioFileType:        d.AudioFileType,
		PresentationType:     d.PresentationType,
		MeetingName:          d.MeetingName,
		ProgramTitle:         d.ProgramTitle,
		Network:              d.Network,
		ReportNumber:         d.ReportNumber,
		ReportType:           d.ReportType,
		Institution:          d.Institution,
		NameOfAct:            d.NameOfAct,
		CodeNumber:           d.CodeNumber,
		PublicLawNumber:      d.PublicLawNumber,
		DateEnacted:          d.DateEnacted,
		ThesisType:           d.ThesisType,
		University:           d.University,
		Studio:               d.Studio,
		WebsiteTitle:         d.WebsiteTitle,

		LinkMode:    d.LinkMode,
		ContentType: d.ContentType,
		Filename:    d.Filename,
		MD5:         d.MD5,
		Charset:     d.Charset,

		Deleted: d.Deleted,

		DateAdded:    parseDate(d.DateAdded),
		DateModified: parseDate(d.DateModified),

		ParentItem:   optionalKey(d.ParentItem),
		LanguageName: optionalKey(d.Language),

		Relations: relationsJSON(d.Relations),
	}

	if d.Mtime != 0 {
		row.Mtime = strconv.FormatUint(d.Mtime.Uint64(), 10)
	}

	// Tag objects flatten to a plain list of names.
	tags := make(models.StringList, 0, len(d.Tags))
	for _, t := range d.Tags {
		tags = append(tags, t.Tag)
	}
	row.Tags = tags

	if d.Collections != nil {
		row.Collections = append(models.StringList{}, d.Collections...)
	}

	return row
}

// NewCollectionRow maps a remote collection onto its table row.
func NewCollectionRow(c *zotero.Collection) *models.Collection {
	key := c.Key
	if key == "" {
		key = c.Data.Key
	}

	deleted := 0
	if c.Data.Deleted {
		deleted = 1
	}

	return &models.Collection{
		Key:              key,
		Version:          c.Data.Version,
		Name:             c.Data.Name,
		GroupExternalID:  c.Library.ID,
		NumCollections:   c.Meta.NumCollections,
		NumItems:         c.Meta.NumItems,
		ParentCollection: optionalKey(string(c.Data.ParentCollection)),
		Relations:        relationsJSON(c.Data.Relations),
		Deleted:          deleted,
	}
}
