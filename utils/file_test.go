package utils

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "clip.mp4", "clip.mp4"},
		{"spaces", "my clip.mp4", "my_clip.mp4"},
		{"path stripped", "../../etc/passwd", "passwd"},
		{"windows path stripped", `C:\videos\clip.mp4`, "C__videos_clip.mp4"},
		{"unicode flattened", "видео.mp4", "mp4"},
		{"dot only", ".", ""},
		{"dotdot", "..", ""},
		{"leading dots trimmed", "..hidden", "hidden"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestUniqueUploadNameHasTimestampPrefix(t *testing.T) {
	before := time.Now().Unix()
	name := UniqueUploadName("clip.mp4")
	after := time.Now().Unix()

	parts := strings.SplitN(name, "_", 2)
	require.Len(t, parts, 2)
	assert.Equal(t, "clip.mp4", parts[1])

	ts, err := strconv.ParseInt(parts[0], 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ts, before)
	assert.LessOrEqual(t, ts, after)
}

func TestUniqueUploadNameUnusableOriginal(t *testing.T) {
	name := UniqueUploadName("..")
	parts := strings.SplitN(name, "_", 2)
	require.Len(t, parts, 2)
	// falls back to a generated name rather than an empty one
	assert.NotEmpty(t, parts[1])
	assert.NotEqual(t, "..", parts[1])
}
