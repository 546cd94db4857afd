package sync

import "fmt"

// Stats counts what a sync pass did, including the diagnostics for conditions
// the pass tolerates (unknown item types, dangling collection references,
// hierarchy cycles) so operators can detect drift.
type Stats struct {
	Items                 int
	Collections           int
	Languages             int
	MembershipInserts     int
	MembershipDeletes     int
	UnknownTypes          int
	UnresolvedCollections int
	HierarchyCycles       int
	AttachmentsArchived   int
	AttachmentsSkipped    int
	AttachmentFailures    int
	MalformedChunks       int
}

func (s Stats) String() string {
	return fmt.Sprintf(
		"items=%d collections=%d languages=%d memberships=+%d/-%d unknownTypes=%d unresolvedCollections=%d cycles=%d attachments archived=%d skipped=%d failed=%d malformedChunks=%d",
		s.Items, s.Collections, s.Languages,
		s.MembershipInserts, s.MembershipDeletes,
		s.UnknownTypes, s.UnresolvedCollections, s.HierarchyCycles,
		s.AttachmentsArchived, s.AttachmentsSkipped, s.AttachmentFailures,
		s.MalformedChunks,
	)
}
