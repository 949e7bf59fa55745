package settlement

import "time"

// UpstreamArchive records an offline upstream reconciliation file that was
// signed on paper and archived on the platform.
type UpstreamArchive struct {
	ID              string
	UpstreamCompany string
	Period          string
	FileName        string
	ArchivedBy      string
	ArchivedAt      time.Time
	Note            string
	Status          string
}

// ArchiveStatusArchived is the only status an upstream archive ever has.
const ArchiveStatusArchived = "archived"
