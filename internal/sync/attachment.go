package sync

import (
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	stdsync "sync"

	"github.com/google/uuid"

	"github.com/refsync/refsync/internal/models"
)

// attachOutcome classifies what processAttachment did with one attachment.
type attachOutcome int

const (
	attachArchived attachOutcome = iota
	attachSkipped
	attachFailed
)

// attachTask pairs a freshly mapped attachment row with its persisted
// predecessor, if any.
type attachTask struct {
	row  *models.Item
	prev *models.Item
}

// qualifiesForArchive reports whether the item is a live PDF attachment whose
// binary content should be archived. A parent reference and a content hash are
// required; top-level or hashless attachments are passed through unarchived.
func qualifiesForArchive(row *models.Item) bool {
	return row.ItemType == "Attachment" &&
		row.ContentType == "application/pdf" &&
		row.ParentItem != nil &&
		row.MD5 != "" &&
		row.Deleted == 0
}

// cleanString keeps only printable ASCII. Extracted PDF text and derived URLs
// pass through here before being persisted.
func cleanString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r >= 32 && r < 127 {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// objectPathFromURL recovers the object path from a previously stored public
// URL. Paths always start with the group segment.
func objectPathFromURL(u, groupID string) string {
	idx := strings.Index(u, groupID+"/")
	if idx < 0 {
		return ""
	}
	return u[idx:]
}

// unchanged reports whether the remote attachment metadata matches the
// persisted row closely enough that the archived copy is still current.
func unchanged(row, prev *models.Item) bool {
	return prev != nil &&
		prev.URL != "" &&
		prev.MD5 == row.MD5 &&
		prev.Mtime == row.Mtime &&
		prev.Filename == row.Filename
}

// processAttachment downloads, extracts and archives one PDF attachment,
// filling the row's URL, FullTextPDF and PDFCoverPageImage columns. When the
// remote metadata is unchanged the previously derived columns are carried over
// without touching the network.
func (s *Syncer) processAttachment(ctx context.Context, groupID string, t *attachTask) (attachOutcome, error) {
	row, prev := t.row, t.prev

	if unchanged(row, prev) {
		row.URL = prev.URL
		row.FullTextPDF = prev.FullTextPDF
		row.PDFCoverPageImage = prev.PDFCoverPageImage
		return attachSkipped, nil
	}

	// A renamed attachment leaves a stale object behind under the old name.
	// The old object must be gone before the new one goes up.
	if prev != nil && prev.URL != "" && prev.Filename != row.Filename {
		if old := objectPathFromURL(prev.URL, groupID); old != "" {
			_, err := retry(ctx, s.opts.RetryAttempts, s.opts.RetryDelay, func() (struct{}, error) {
				if err := s.store.Remove(ctx, old); err != nil {
					return struct{}{}, err
				}
				return struct{}{}, s.store.Remove(ctx, path.Dir(old)+"/cover.png")
			})
			if err != nil {
				return attachFailed, fmt.Errorf("remove stale object %s: %w", old, err)
			}
		}
	}

	if err := os.MkdirAll(s.opts.TempDir, 0o755); err != nil {
		return attachFailed, fmt.Errorf("temp dir: %w", err)
	}
	dest := filepath.Join(s.opts.TempDir, row.Key+".pdf")
	os.Remove(dest)
	defer os.Remove(dest)

	_, err := retry(ctx, s.opts.RetryAttempts, s.opts.RetryDelay, func() (struct{}, error) {
		return struct{}{}, s.remote.DownloadAttachment(ctx, groupID, row.Key, dest)
	})
	if err != nil {
		return attachFailed, fmt.Errorf("download: %w", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		return attachFailed, fmt.Errorf("read temp file: %w", err)
	}

	content, err := s.extractor.Extract(data)
	if err != nil {
		return attachFailed, fmt.Errorf("extract: %w", err)
	}
	if content.Ratio == 0 {
		return attachFailed, fmt.Errorf("extract: unusable page geometry")
	}

	parent := row.Key
	if row.ParentItem != nil {
		parent = *row.ParentItem
	}
	dir := fmt.Sprintf("%s/%s/%s", groupID, parent, row.Key)
	pdfPath := fmt.Sprintf("%s/%s.pdf", dir, uuid.NewString())
	coverPath := dir + "/cover.png"

	_, err = retry(ctx, s.opts.RetryAttempts, s.opts.RetryDelay, func() (struct{}, error) {
		return struct{}{}, s.store.Upload(ctx, pdfPath, data, "application/pdf")
	})
	if err != nil {
		return attachFailed, fmt.Errorf("upload pdf: %w", err)
	}
	_, err = retry(ctx, s.opts.RetryAttempts, s.opts.RetryDelay, func() (struct{}, error) {
		return struct{}{}, s.store.Upload(ctx, coverPath, content.Cover, "image/png")
	})
	if err != nil {
		return attachFailed, fmt.Errorf("upload cover: %w", err)
	}

	row.URL = cleanString(s.store.PublicURL(pdfPath))
	row.FullTextPDF = cleanString(content.Text)
	row.PDFCoverPageImage = s.store.PublicURL(coverPath)
	return attachArchived, nil
}

// runAttachments processes the batch's attachment tasks in sub-batches of
// ProcessBatchSize, tasks within a sub-batch running concurrently. Failures
// are logged and counted; the affected rows keep their mapped columns and are
// persisted without derived content so the pass never stalls on one file.
func (s *Syncer) runAttachments(ctx context.Context, groupID string, tasks []*attachTask) {
	size := s.opts.ProcessBatchSize
	if size < 1 {
		size = 1
	}

	for start := 0; start < len(tasks); start += size {
		end := start + size
		if end > len(tasks) {
			end = len(tasks)
		}
		batch := tasks[start:end]

		outcomes := make([]attachOutcome, len(batch))
		errs := make([]error, len(batch))

		var wg stdsync.WaitGroup
		for i, t := range batch {
			wg.Add(1)
			go func(i int, t *attachTask) {
				defer wg.Done()
				outcomes[i], errs[i] = s.processAttachment(ctx, groupID, t)
			}(i, t)
		}
		wg.Wait()

		for i, t := range batch {
			switch outcomes[i] {
			case attachArchived:
				s.stats.AttachmentsArchived++
			case attachSkipped:
				s.stats.AttachmentsSkipped++
			case attachFailed:
				s.stats.AttachmentFailures++
				log.Printf("attachment %s: %v", t.row.Key, errs[i])
			}
		}
	}
}
