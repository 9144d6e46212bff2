package upload

import (
	"fmt"
	"path"
	"strings"
	"time"

	domainErrors "github.com/scandent/orline/internal/domain/errors"
)

// MaxFileSize is the hard per-file limit for order attachments.
const MaxFileSize = 3 << 20 // 3 MB

// maxNameLen bounds sanitized filenames before path construction.
const maxNameLen = 140

var allowedExts = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"webp": {},
	"txt":  {},
}

var allowedMIME = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/webp": {},
	"text/plain": {},
}

var imageExts = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"webp": {},
}

// Ext extracts the lowercase extension without the dot; query strings and
// directories are stripped first.
func Ext(name string) string {
	base := path.Base(strings.SplitN(name, "?", 2)[0])
	i := strings.LastIndexByte(base, '.')
	if i < 0 || i == len(base)-1 {
		return ""
	}
	return strings.ToLower(base[i+1:])
}

// ContentTypeByExt maps an allowed extension to its canonical MIME type.
func ContentTypeByExt(ext string) string {
	switch ext {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "webp":
		return "image/webp"
	case "txt":
		return "text/plain"
	}
	return "application/octet-stream"
}

// Validate checks one file against the attachment policy before any byte is
// transferred: size cap, extension allow-list, and a MIME type that either
// belongs to the allow-list or is an image/* type paired with an image
// extension. An empty content type falls back to the extension's canonical
// type.
func Validate(name string, size int64, contentType string) error {
	if size > MaxFileSize {
		return &domainErrors.UploadPolicyError{Filename: name, Reason: "excede el límite de 3 MB"}
	}

	ext := Ext(name)
	if _, ok := allowedExts[ext]; !ok {
		return &domainErrors.UploadPolicyError{Filename: name, Reason: "extensión no permitida"}
	}

	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "" {
		return nil
	}
	if _, ok := allowedMIME[ct]; ok {
		return nil
	}
	if strings.HasPrefix(ct, "image/") {
		if _, ok := imageExts[ext]; ok {
			return nil
		}
	}
	return &domainErrors.UploadPolicyError{Filename: name, Reason: "tipo de contenido no permitido"}
}

// SanitizeFilename reduces a filename to a safe character set and truncates
// it to 140 characters, keeping the extension when possible.
func SanitizeFilename(name string) string {
	base := path.Base(strings.SplitN(name, "?", 2)[0])

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	clean := strings.Trim(b.String(), "._")
	if clean == "" {
		clean = "file"
	}
	if len(clean) <= maxNameLen {
		return clean
	}

	ext := Ext(clean)
	if ext == "" || len(ext)+1 >= maxNameLen {
		return clean[:maxNameLen]
	}
	stem := clean[:maxNameLen-len(ext)-1]
	return stem + "." + ext
}

// StoragePath builds the object path for one attachment, namespaced by the
// parent order id.
func StoragePath(orderID, filename string, at time.Time) string {
	return fmt.Sprintf("%s/%d_%s", orderID, at.UnixMilli(), SanitizeFilename(filename))
}
