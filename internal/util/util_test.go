package util

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePositiveInt(t *testing.T) {
	assert.Equal(t, 3, ParsePositiveInt("3", 50))
	assert.Equal(t, 50, ParsePositiveInt("", 50))
	assert.Equal(t, 50, ParsePositiveInt("0", 50))
	assert.Equal(t, 50, ParsePositiveInt("-2", 50))
	assert.Equal(t, 1, ParsePositiveInt("abc", 1))
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, Pagination{Total: 0, Page: 1, Limit: 50, Pages: 0}, NewPagination(0, 1, 50))
	assert.Equal(t, int64(1), NewPagination(50, 1, 50).Pages)
	assert.Equal(t, int64(2), NewPagination(51, 1, 50).Pages)
	assert.Equal(t, int64(7), NewPagination(7, 1, 1).Pages)
	assert.Equal(t, int64(1), NewPagination(5, 1, math.MaxInt).Pages)
}

func TestPageOffset(t *testing.T) {
	offset, ok := PageOffset(1, 50)
	assert.True(t, ok)
	assert.Zero(t, offset)

	offset, ok = PageOffset(3, 20)
	assert.True(t, ok)
	assert.Equal(t, 40, offset)

	_, ok = PageOffset(math.MaxInt, 2)
	assert.False(t, ok)

	_, ok = PageOffset(2, math.MaxInt)
	assert.True(t, ok)
	_, ok = PageOffset(3, math.MaxInt)
	assert.False(t, ok)
}

func TestValidateMimeType(t *testing.T) {
	mp4 := append([]byte{0x00, 0x00, 0x00, 0x18}, []byte("ftypmp42\x00\x00\x00\x00mp42isom")...)

	mime, err := ValidateMimeType(bytes.NewReader(mp4), []string{MimeVideo})
	assert.NoError(t, err)
	assert.True(t, IsVideo(mime))

	_, err = ValidateMimeType(bytes.NewReader([]byte("<html><body>hi</body></html>")), []string{MimeVideo})
	assert.Error(t, err)

	_, err = ValidateMimeType(bytes.NewReader(nil), []string{MimeVideo})
	assert.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "lesson-1.mp4", SanitizeFilename("lesson 1.mp4"))
	assert.Equal(t, "evil.mp4", SanitizeFilename("../../evil.mp4"))
	assert.Equal(t, "clip.mp4", SanitizeFilename(`C:\videos\clip.mp4`))
	assert.Equal(t, "video", SanitizeFilename(".."))
	assert.Equal(t, "video", SanitizeFilename("   "))
}
