package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SanitizeFilename flattens a client-supplied filename to a safe single path
// component: directory parts are stripped and anything outside a conservative
// character set becomes an underscore.
func SanitizeFilename(name string) string {
	name = filepath.Base(filepath.ToSlash(name))
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}

// UniqueUploadName builds the stored filename for an upload: a unix-timestamp
// prefix on the sanitized original name. The prefix reduces, but does not
// eliminate, collisions between concurrent uploads within the same second.
// When sanitization leaves nothing usable, a UUID stands in for the name.
func UniqueUploadName(originalName string) string {
	safe := SanitizeFilename(originalName)
	if safe == "" {
		safe = uuid.NewString()
	}
	return fmt.Sprintf("%d_%s", time.Now().Unix(), safe)
}
