package models

import "strings"

// Attachment is the persisted pointer a chat message holds for a file,
// independent of where the bytes live. The file-sharing layer reads
// attachments; it never creates or mutates them.
type Attachment struct {
	FileURL      string `json:"fileUrl"`
	OriginalName string `json:"originalName"`
	FileSize     int64  `json:"fileSize"`
	MimeType     string `json:"mimeType"`
	Category     string `json:"category"`
	UploadedBy   string `json:"uploadedBy"`
	Icon         string `json:"icon"`
}

// Coarse attachment categories used for icon selection and previewability.
const (
	CategoryImage    = "image"
	CategoryVideo    = "video"
	CategoryAudio    = "audio"
	CategoryPDF      = "pdf"
	CategoryDocument = "document"
	CategoryArchive  = "archive"
	CategoryFile     = "file"
)

// IconForCategory picks the display glyph for a category.
func IconForCategory(category string) string {
	switch category {
	case CategoryImage:
		return "🖼️"
	case CategoryVideo:
		return "🎥"
	case CategoryAudio:
		return "🎵"
	case CategoryPDF:
		return "📕"
	case CategoryDocument:
		return "📄"
	case CategoryArchive:
		return "🗜️"
	default:
		return "📎"
	}
}

// CategoryForMime maps a MIME type onto a coarse attachment category.
func CategoryForMime(mimeType string) string {
	mt := strings.ToLower(strings.TrimSpace(mimeType))

	switch {
	case strings.HasPrefix(mt, "image/"):
		return CategoryImage
	case strings.HasPrefix(mt, "video/"):
		return CategoryVideo
	case strings.HasPrefix(mt, "audio/"):
		return CategoryAudio
	case mt == "application/pdf":
		return CategoryPDF
	}

	switch mt {
	case "application/zip", "application/x-rar-compressed",
		"application/x-7z-compressed", "application/x-tar", "application/gzip":
		return CategoryArchive
	case "application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-powerpoint",
		"application/vnd.openxmlformats-officedocument.presentationml.presentation",
		"application/rtf", "text/plain", "text/csv", "application/json":
		return CategoryDocument
	}

	return CategoryFile
}
