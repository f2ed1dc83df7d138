package localstore

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeDataURL serializes raw bytes as a base64 data URL, the persisted
// representation of a stored file.
func EncodeDataURL(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// DecodeDataURL parses a base64 data URL back into its MIME type and raw
// bytes. Malformed input is an error; callers treat it as a corrupt entry.
func DecodeDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URL: no payload separator")
	}

	mimeType, enc := meta, ""
	if i := strings.LastIndex(meta, ";"); i >= 0 {
		mimeType, enc = meta[:i], meta[i+1:]
	}
	if enc != "base64" {
		return "", nil, fmt.Errorf("unsupported data URL encoding %q", enc)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("malformed data URL payload: %w", err)
	}

	return mimeType, data, nil
}
