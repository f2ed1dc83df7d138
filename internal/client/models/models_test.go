package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProgress_Percentage(t *testing.T) {
	tests := []struct {
		name   string
		loaded int64
		total  int64
		want   int
	}{
		{"zero of total", 0, 100, 0},
		{"half", 50, 100, 50},
		{"rounds up", 667, 1000, 67},
		{"rounds down", 664, 1000, 66},
		{"complete", 2048, 2048, 100},
		{"unknown total", 500, 0, 0},
		{"negative total", 500, -1, 0},
		{"overshoot clamps", 120, 100, 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewProgress(tc.loaded, tc.total)
			assert.Equal(t, tc.want, p.Percentage)
			assert.Equal(t, tc.loaded, p.Loaded)
			assert.Equal(t, tc.total, p.Total)
		})
	}
}

func TestCategoryForMime(t *testing.T) {
	tests := []struct {
		mime string
		want string
	}{
		{"image/jpeg", CategoryImage},
		{"image/png", CategoryImage},
		{"video/mp4", CategoryVideo},
		{"audio/mpeg", CategoryAudio},
		{"application/pdf", CategoryPDF},
		{"application/zip", CategoryArchive},
		{"application/gzip", CategoryArchive},
		{"application/msword", CategoryDocument},
		{"text/plain", CategoryDocument},
		{"application/json", CategoryDocument},
		{"application/octet-stream", CategoryFile},
		{"", CategoryFile},
		{"  IMAGE/GIF  ", CategoryImage},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, CategoryForMime(tc.mime), "mime %q", tc.mime)
	}
}

func TestFileUpload_Size(t *testing.T) {
	fu := FileUpload{Name: "a.bin", Data: make([]byte, 2097152)}
	assert.Equal(t, int64(2097152), fu.Size())

	assert.Equal(t, int64(0), FileUpload{}.Size())
}
