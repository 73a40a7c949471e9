package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFilename(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "my_promo_20260102_030405.000000.png", normalizeFilename("my promo.PNG", at))
	assert.Equal(t, "passwd_20260102_030405.000000", normalizeFilename("../../etc/passwd", at))
	assert.Equal(t, "file_20260102_030405.000000.mp4", normalizeFilename("çã.mp4", at))
}

func TestLocalSave(t *testing.T) {
	dir := t.TempDir()
	ls := NewLocalStorage(dir, "http://localhost:8000/")
	ls.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	url, err := ls.Save(context.Background(), "clip.mp4", "video/mp4", strings.NewReader("frames"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/uploads/clip_20260102_030405.000000.mp4", url)

	raw, err := os.ReadFile(filepath.Join(dir, "clip_20260102_030405.000000.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "frames", string(raw))
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "video/webm", ContentTypeFor("a.WEBM"))
	assert.Equal(t, "application/octet-stream", ContentTypeFor("a"))
}
