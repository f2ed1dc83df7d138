// Package validation gates files before any upload attempt: a size cap and
// a fixed MIME allow-list. It is pure and deterministic; callers must run it
// before touching the network.
package validation

import (
	"fmt"
	"mime"

	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"

	"github.com/chatfiles/chatfiles/internal/client/models"
	"github.com/chatfiles/chatfiles/internal/common"
)

// MaxFileSize is the per-file upload cap.
const MaxFileSize = 50 << 20 // 50 MiB

// allowedTypes is the fixed allow-list: images, common documents, archives,
// audio and video.
var allowedTypes = []string{
	// images
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/svg+xml",
	"image/bmp",

	// documents
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"application/rtf",
	"application/json",
	"text/plain",
	"text/csv",
	"text/html",

	// archives
	"application/zip",
	"application/x-rar-compressed",
	"application/x-7z-compressed",
	"application/x-tar",
	"application/gzip",

	// audio
	"audio/mpeg",
	"audio/wav",
	"audio/ogg",
	"audio/mp4",

	// video
	"video/mp4",
	"video/mpeg",
	"video/quicktime",
	"video/webm",
	"video/x-msvideo",
}

// Validate checks fu against the size cap and the MIME allow-list. A nil
// return means the file may be uploaded; otherwise the error wraps
// common.ErrValidation and carries a user-facing message.
//
// When the declared MIME type is empty the leading bytes are sniffed, so a
// file dragged in without metadata still validates against the real type.
func Validate(fu models.FileUpload) error {
	if fu.Size() > MaxFileSize {
		return fmt.Errorf("%w: size too large (max 50 MiB)", common.ErrValidation)
	}

	mt := NormalizeMimeType(fu)
	if !lo.Contains(allowedTypes, mt) {
		return fmt.Errorf("%w: file type %q is not allowed", common.ErrValidation, mt)
	}

	return nil
}

// NormalizeMimeType resolves the effective MIME type of fu: the declared
// type stripped of parameters, or the sniffed content type when nothing was
// declared.
func NormalizeMimeType(fu models.FileUpload) string {
	declared := fu.MimeType
	if declared == "" {
		declared = mimetype.Detect(fu.Data).String()
	}

	mt, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return declared
	}
	return mt
}
