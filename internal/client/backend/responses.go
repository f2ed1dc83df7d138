package backend

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chatfiles/chatfiles/internal/common"
)

// uploadResponse mirrors the backend's JSON envelope for uploads.
type uploadResponse struct {
	Success bool          `json:"success"`
	File    *uploadedFile `json:"file"`
	Error   string        `json:"error"`
}

type uploadedFile struct {
	ID             string `json:"id"`
	FileURL        string `json:"fileUrl"`
	StoredFilename string `json:"storedFilename"`
	FileSize       int64  `json:"fileSize"`
	ContentType    string `json:"contentType"`
}

// decodeUploadResponse decodes the body and checks its shape at the
// boundary instead of trusting it: a successful envelope must actually
// carry a file object with a URL. Shape violations wrap common.ErrProtocol.
func decodeUploadResponse(r io.Reader) (*uploadResponse, error) {
	var ur uploadResponse
	if err := json.NewDecoder(r).Decode(&ur); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrProtocol, err)
	}

	if ur.Success {
		if ur.File == nil {
			return nil, fmt.Errorf("%w: success response without file object", common.ErrProtocol)
		}
		if ur.File.FileURL == "" {
			return nil, fmt.Errorf("%w: success response without file URL", common.ErrProtocol)
		}
	}

	return &ur, nil
}

// FileInfo describes a stored file as reported by the backend metadata
// endpoint.
type FileInfo struct {
	ID             string `json:"id"`
	FileURL        string `json:"fileUrl"`
	OriginalName   string `json:"originalName"`
	StoredFilename string `json:"storedFilename"`
	FileSize       int64  `json:"fileSize"`
	ContentType    string `json:"contentType"`
	UploadedBy     string `json:"uploadedBy"`
}

// FilePage is one page of a file listing.
type FilePage struct {
	Files []FileInfo `json:"files"`
	Page  int        `json:"page"`
	Size  int        `json:"size"`
	Total int64      `json:"total"`
}

// FileStats summarizes a user's stored files.
type FileStats struct {
	TotalFiles int64 `json:"totalFiles"`
	TotalSize  int64 `json:"totalSize"`
}

type presignedResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	Error   string `json:"error"`
}

type statusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
