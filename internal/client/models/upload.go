// Package models defines the value types exchanged between the file-sharing
// services and their callers. Values cross service boundaries immutably;
// nothing in this package is shared by mutable reference.
package models

import "math"

// LocalStorageScheme prefixes synthetic URLs that point at the client-local
// file store instead of remote object storage. Both the uploader fallback
// and the download resolver recognize it to short-circuit network access.
const LocalStorageScheme = "local-storage://"

// Progress describes a single transfer progress event. Values are transient
// and recomputed per event; they are never persisted.
type Progress struct {
	Loaded     int64
	Total      int64
	Percentage int
}

// ProgressFunc receives progress events during a transfer. A nil ProgressFunc
// is always permitted and means the caller is not interested.
type ProgressFunc func(Progress)

// NewProgress computes a Progress event with Percentage =
// round(loaded/total*100), clamped to [0, 100]. A non-positive total yields
// zero percent since no meaningful ratio exists.
func NewProgress(loaded, total int64) Progress {
	p := Progress{Loaded: loaded, Total: total}
	if total > 0 {
		pct := int(math.Round(float64(loaded) / float64(total) * 100))
		if pct > 100 {
			pct = 100
		}
		if pct < 0 {
			pct = 0
		}
		p.Percentage = pct
	}
	return p
}

// FileUpload is the caller-supplied file handed to an upload service: the
// original name, the declared MIME type (possibly empty) and the raw bytes.
type FileUpload struct {
	Name     string
	MimeType string
	Data     []byte
}

// Size returns the payload size in bytes.
func (f FileUpload) Size() int64 { return int64(len(f.Data)) }

// UploadResult is produced exactly once per upload attempt and is immutable
// after return. Upload entry points return it instead of raising: a failed
// attempt carries Success=false and a user-facing Error string.
type UploadResult struct {
	Success  bool
	FileURL  string
	FileName string
	FileSize int64
	MimeType string
	FileID   string
	Error    string
}

// DownloadResult carries the resolved bytes of an attachment, tagged with
// the MIME type the caller should treat them as.
type DownloadResult struct {
	Success  bool
	Data     []byte
	MimeType string
	Error    string
}
