package upload

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/scandent/orline/internal/domain/errors"
)

func TestExt(t *testing.T) {
	assert.Equal(t, "png", Ext("scan.PNG"))
	assert.Equal(t, "jpg", Ext("dir/sub/placa.jpg"))
	assert.Equal(t, "webp", Ext("foto.webp?token=abc"))
	assert.Equal(t, "", Ext("noextension"))
	assert.Equal(t, "", Ext("trailingdot."))
}

func TestContentTypeByExt(t *testing.T) {
	assert.Equal(t, "image/png", ContentTypeByExt("png"))
	assert.Equal(t, "image/jpeg", ContentTypeByExt("jpg"))
	assert.Equal(t, "image/jpeg", ContentTypeByExt("jpeg"))
	assert.Equal(t, "image/webp", ContentTypeByExt("webp"))
	assert.Equal(t, "text/plain", ContentTypeByExt("txt"))
	assert.Equal(t, "application/octet-stream", ContentTypeByExt("pdf"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		size        int64
		contentType string
		wantErr     bool
	}{
		{"png ok", "scan.png", 1024, "image/png", false},
		{"jpeg ok", "placa.jpeg", 1024, "image/jpeg", false},
		{"txt ok", "notas.txt", 10, "text/plain", false},
		{"at size limit", "scan.png", MaxFileSize, "image/png", false},
		{"over size limit", "scan.png", MaxFileSize + 1, "image/png", true},
		{"disallowed extension", "informe.pdf", 10, "application/pdf", true},
		{"no extension", "archivo", 10, "text/plain", true},
		{"unknown MIME with image ext", "scan.png", 10, "image/x-custom", false},
		{"unknown MIME with txt ext", "notas.txt", 10, "application/json", true},
		{"empty MIME falls back to extension", "scan.png", 10, "", false},
		{"MIME params stripped", "notas.txt", 10, "text/plain; charset=utf-8", false},
		{"upper case MIME", "scan.png", 10, "IMAGE/PNG", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.filename, tt.size, tt.contentType)
			if tt.wantErr {
				var policyErr *domainErrors.UploadPolicyError
				require.ErrorAs(t, err, &policyErr)
				assert.Equal(t, tt.filename, policyErr.Filename)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "mi_placa.jpg", SanitizeFilename("mi placa.jpg"))
	assert.Equal(t, "panor_mica.png", SanitizeFilename("panorámica.png"))
	assert.Equal(t, "scan.png", SanitizeFilename("../../scan.png"))
	assert.Equal(t, "file", SanitizeFilename("???"))
	assert.Equal(t, "a-b_c.txt", SanitizeFilename("a-b_c.txt"))
}

func TestSanitizeFilenameTruncation(t *testing.T) {
	long := strings.Repeat("a", 200) + ".png"
	got := SanitizeFilename(long)
	assert.LessOrEqual(t, len(got), 140)
	assert.True(t, strings.HasSuffix(got, ".png"), "extension must survive truncation, got %q", got)
}

func TestStoragePath(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	got := StoragePath("o-123", "mi placa.jpg", at)
	assert.Equal(t, fmt.Sprintf("o-123/%d_mi_placa.jpg", at.UnixMilli()), got)
}
