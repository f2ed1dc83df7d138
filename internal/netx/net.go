// Package netx contains the low-level HTTP plumbing shared by the upload and
// download services: a byte-counting reader for progress reporting, the raw
// object-storage PUT and a best-effort connectivity probe.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/chatfiles/chatfiles/internal/client/models"
)

const readChunkSize = 32 * 1024

// ProgressReader wraps an io.Reader and reports cumulative progress through
// a models.ProgressFunc as the underlying transport consumes bytes. When the
// total is unknown (<= 0) no events are emitted.
type ProgressReader struct {
	r      io.Reader
	total  int64
	loaded int64
	fn     models.ProgressFunc
}

func NewProgressReader(r io.Reader, total int64, fn models.ProgressFunc) *ProgressReader {
	return &ProgressReader{r: r, total: total, fn: fn}
}

func (p *ProgressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.loaded += int64(n)
		if p.fn != nil && p.total > 0 {
			p.fn(models.NewProgress(p.loaded, p.total))
		}
	}
	return n, err
}

// Loaded returns the number of bytes read so far.
func (p *ProgressReader) Loaded() int64 { return p.loaded }

// Probe issues a HEAD request to url and reports whether the endpoint
// answered at all. Any HTTP status counts as reachable; only transport-level
// failures do not.
func Probe(ctx context.Context, client *http.Client, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return true
}

// PutWithProgress uploads body to url with a single PUT request, setting
// Content-Type to contentType. Bytes are counted through a ProgressReader so
// onProgress observes them as the transport reads. Any non-2xx status is an
// error; there is exactly one attempt and no retry.
func PutWithProgress(ctx context.Context, client *http.Client, url, contentType string, body []byte, onProgress models.ProgressFunc) error {
	reader := NewProgressReader(bytes.NewReader(body), int64(len(body)), onProgress)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(body))

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}

// ReadAllWithProgress drains r in fixed-size chunks, accumulating the bytes
// into one contiguous buffer. After each chunk, onProgress is invoked with
// the running total when the content length is known; for a well-behaved
// stream the final event therefore reports 100 percent.
func ReadAllWithProgress(r io.Reader, total int64, onProgress models.ProgressFunc) ([]byte, error) {
	out := make([]byte, 0, readChunkSize)
	buf := make([]byte, readChunkSize)
	var loaded int64

	for {
		n, err := r.Read(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
			loaded += int64(n)
			if onProgress != nil && total > 0 {
				onProgress(models.NewProgress(loaded, total))
			}
		}
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
