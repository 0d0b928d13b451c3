package server

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

// dataField is the multipart form field carrying the JSON payload when a
// request ships files alongside structured data.
const dataField = "data"

// bindPayload decodes the request body into dst. Multipart requests carry
// their JSON in the "data" form field next to the file parts; plain
// requests are decoded as a JSON body.
func bindPayload(c *gin.Context, dst interface{}) error {
	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		raw := c.PostForm(dataField)
		if raw == "" {
			return fmt.Errorf("missing %q form field", dataField)
		}
		if err := json.Unmarshal([]byte(raw), dst); err != nil {
			return fmt.Errorf("invalid %q form field: %w", dataField, err)
		}
		return nil
	}

	return c.ShouldBindJSON(dst)
}

// saveUpload persists an uploaded file under the uploads directory with a
// ULID filename and returns its public URL path.
func (s *Server) saveUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	name := ulid.Make().String() + filepath.Ext(file.Filename)
	dest := filepath.Join(s.config.Uploads.Dir, name)

	if err := c.SaveUploadedFile(file, dest); err != nil {
		return "", fmt.Errorf("failed to save upload %s: %w", file.Filename, err)
	}

	return "/uploads/" + name, nil
}

// saveOptionalUpload saves the named single file if present, returning an
// empty URL when the field was not sent.
func (s *Server) saveOptionalUpload(c *gin.Context, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}
	return s.saveUpload(c, file)
}

// saveUploads saves every file sent under the named field and returns
// their public URL paths.
func (s *Server) saveUploads(c *gin.Context, field string) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	files := form.File[field]
	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := s.saveUpload(c, file)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
