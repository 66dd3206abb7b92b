package util

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImage(t *testing.T) {
	assert.Nil(t, ValidateImage("image/png", 1024))
	assert.Nil(t, ValidateImage("image/jpeg", MaxImageBytes))

	httpErr := ValidateImage("application/pdf", 1024)
	require.NotNil(t, httpErr)
	assert.Equal(t, 400, httpErr.Status)

	httpErr = ValidateImage("image/png", MaxImageBytes+1)
	require.NotNil(t, httpErr)
	assert.Equal(t, 400, httpErr.Status)
}

func TestDecodeImageDataURL(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	contentType, data, httpErr := DecodeImageDataURL(dataURL)

	require.Nil(t, httpErr)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, payload, data)
}

func TestDecodeImageDataURLRejectsBadInput(t *testing.T) {
	_, _, httpErr := DecodeImageDataURL("https://example.com/pic.png")
	require.NotNil(t, httpErr)

	_, _, httpErr = DecodeImageDataURL("data:image/png,plaintext")
	require.NotNil(t, httpErr)

	_, _, httpErr = DecodeImageDataURL("data:image/png;base64,!!!not-base64!!!")
	require.NotNil(t, httpErr)

	_, _, httpErr = DecodeImageDataURL("data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte("<html>")))
	require.NotNil(t, httpErr)
}

func TestDecodeImageDataURLRejectsOversizedBeforeDecoding(t *testing.T) {
	oversized := "data:image/png;base64," + strings.Repeat("A", (MaxImageBytes/3+2)*4)
	_, _, httpErr := DecodeImageDataURL(oversized)
	require.NotNil(t, httpErr)
	assert.Contains(t, httpErr.Message, "at most")
}
