package utils

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is the 8 byte PNG signature followed by the start of an IHDR chunk
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

// createTestFileHeader creates a multipart.FileHeader for testing
func createTestFileHeader(t *testing.T, filename string, size int64, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content)) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	require.Len(t, form.File["image"], 1)
	fileHeader := form.File["image"][0]
	// Override size for testing purposes
	fileHeader.Size = size
	return fileHeader
}

func TestValidateImageFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		content  []byte
		wantCode string
	}{
		{name: "valid png", filename: "widget.png", content: pngHeader},
		{name: "uppercase extension", filename: "widget.PNG", content: pngHeader},
		{name: "too large", filename: "widget.png", size: 11 * 1024 * 1024, content: pngHeader, wantCode: "FILE_TOO_LARGE"},
		{name: "jpg extension", filename: "widget.jpg", content: pngHeader, wantCode: "INVALID_FILE_FORMAT"},
		{name: "no extension", filename: "widget", content: pngHeader, wantCode: "INVALID_FILE_FORMAT"},
		{name: "png extension with text content", filename: "widget.png", content: []byte("fake png content"), wantCode: "INVALID_FILE_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size := tt.size
			if size == 0 {
				size = int64(len(tt.content))
			}
			fileHeader := createTestFileHeader(t, tt.filename, size, tt.content)

			err := ValidateImageFile(fileHeader)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}

			fileErr, ok := err.(*FileUploadError)
			require.True(t, ok, "Error should be of type FileUploadError")
			assert.Equal(t, tt.wantCode, fileErr.Code)
		})
	}
}

func TestFileUploadError_Error(t *testing.T) {
	err := &FileUploadError{
		Code:    "TEST_CODE",
		Message: "Test error message",
	}

	assert.Equal(t, "Test error message", err.Error())
}
