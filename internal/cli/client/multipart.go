package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// DataFieldName is the multipart field carrying the JSON-encoded payload.
// The backend expects all scalar fields packed into this single field, never
// one part per field; splitting them is not wire-compatible.
const DataFieldName = "data"

// FilePart is one raw file attached to a multipart request
type FilePart struct {
	Field    string // form field name, e.g. "profilePhoto"
	FileName string
	Content  []byte
}

// FileFromPath reads a file from disk into a FilePart
func FileFromPath(field, path string) (FilePart, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return FilePart{}, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	return FilePart{
		Field:    field,
		FileName: filepath.Base(path),
		Content:  content,
	}, nil
}

// encodeMultipart builds a multipart body with the structured payload
// JSON-encoded under the "data" field alongside the raw file parts
func encodeMultipart(data interface{}, files []FilePart) (io.Reader, string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal request data: %w", err)
	}

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	if err := w.WriteField(DataFieldName, string(payload)); err != nil {
		return nil, "", fmt.Errorf("failed to write data field: %w", err)
	}

	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create file part %s: %w", f.Field, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", fmt.Errorf("failed to write file part %s: %w", f.Field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return buf, w.FormDataContentType(), nil
}
