package util

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// MaxImageBytes is the ceiling for awareness post image attachments.
const MaxImageBytes = 5 << 20

func BuildImageTooLargeHTTPErr() *HTTPError {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("image must be at most %v bytes", MaxImageBytes),
	}
}

func BuildNotAnImageHTTPErr(contentType string) *HTTPError {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("%q is not an image content type", contentType),
	}
}

// ValidateImage checks the MIME-type prefix and size ceiling for an
// image attachment before any upload happens.
func ValidateImage(contentType string, size int64) *HTTPError {
	if !strings.HasPrefix(contentType, "image/") {
		return BuildNotAnImageHTTPErr(contentType)
	}
	if size > MaxImageBytes {
		return BuildImageTooLargeHTTPErr()
	}
	return nil
}

// DecodeImageDataURL decodes an inline "data:image/...;base64," URL and
// applies the same validation as an uploaded file. Returns the content
// type and decoded bytes.
func DecodeImageDataURL(dataURL string) (string, []byte, *HTTPError) {
	const prefix = "data:"
	if !strings.HasPrefix(dataURL, prefix) {
		return "", nil, &HTTPError{
			Status:  http.StatusBadRequest,
			Message: "not a data URL",
		}
	}
	parts := strings.SplitN(dataURL[len(prefix):], ",", 2)
	if len(parts) != 2 || !strings.HasSuffix(parts[0], ";base64") {
		return "", nil, &HTTPError{
			Status:  http.StatusBadRequest,
			Message: "data URL must be base64 encoded",
		}
	}
	meta, encoded := parts[0], parts[1]
	contentType := strings.TrimSuffix(meta, ";base64")
	if httpErr := ValidateImage(contentType, int64(base64.StdEncoding.DecodedLen(len(encoded)))); httpErr != nil {
		return "", nil, httpErr
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, &HTTPError{
			Status:  http.StatusBadRequest,
			Message: "malformed base64 image data",
		}
	}
	return contentType, data, nil
}
