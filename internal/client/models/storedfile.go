package models

import "time"

// StoredFile is a local file-store entry. Data holds the whole payload as a
// base64 data URL ("data:<mime>;base64,<payload>"). Entries are created on
// store, looked up by ID and never mutated; deletion is explicit.
type StoredFile struct {
	ID         string
	Data       string
	Size       int64
	MimeType   string
	UploadedBy string
	CreatedAt  time.Time
}
