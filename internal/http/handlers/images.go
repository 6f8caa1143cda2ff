package handlers

import (
	"io"
	"net/http"
	"strings"

	"emoticare/internal/domain"
)

const maxImageBytes = 10 << 20

// readImageFile pulls an uploaded image out of a multipart form and sniffs
// its MIME type. Non-image uploads are rejected before they reach a provider.
func readImageFile(r *http.Request, field string) ([]byte, string, error) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		return nil, "", domain.NewValidationError(field, "multipart form expected")
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", domain.NewValidationError(field, "is required")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		return nil, "", domain.NewValidationError(field, "could not be read")
	}
	if len(data) > maxImageBytes {
		return nil, "", domain.NewValidationError(field, "exceeds the 10MB limit")
	}

	mime := header.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mime, "image/") {
		return nil, "", domain.NewValidationError(field, "must be an image")
	}
	return data, mime, nil
}
