package domain

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestCategoryFromMime(t *testing.T) {
	cases := []struct {
		mime string
		want Category
	}{
		{"image/png", CategoryImage},
		{"image/svg+xml", CategoryImage},
		{"video/mp4", CategoryVideo},
		{"audio/mpeg", CategoryAudio},
		{"application/pdf", CategoryDocument},
		{"application/msword", CategoryDocument},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", CategoryDocument},
		{"application/vnd.ms-excel", CategoryDocument},
		{"application/vnd.ms-powerpoint", CategoryDocument},
		{"text/plain", CategoryDocument},
		{"text/csv", CategoryDocument},
		{"text/x-unknown", CategoryDocument},
		{"application/zip", CategoryArchive},
		{"application/vnd.rar", CategoryArchive},
		{"application/x-tar", CategoryArchive},
		{"application/gzip", CategoryArchive},
		{"application/x-7z-compressed", CategoryArchive},
		{"application/octet-stream", CategoryOther},
		{"font/woff2", CategoryOther},
		{"", CategoryOther},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CategoryFromMime(tc.mime), "mime=%q", tc.mime)
	}
}

// Image beats archive when a type matches both prefixes.
func TestCategoryOrderPrecedence(t *testing.T) {
	assert.Equal(t, CategoryImage, CategoryFromMime("image/zip-layered"))
	assert.Equal(t, CategoryVideo, CategoryFromMime("video/x-tar-stream"))
}

func TestCategoryTotality(t *testing.T) {
	known := map[Category]bool{
		CategoryImage:    true,
		CategoryVideo:    true,
		CategoryAudio:    true,
		CategoryDocument: true,
		CategoryArchive:  true,
		CategoryOther:    true,
	}

	properties := gopter.NewProperties(nil)
	properties.Property("every string maps to exactly one known category", prop.ForAll(
		func(mime string) bool {
			return known[CategoryFromMime(mime)]
		},
		gen.AnyString(),
	))
	properties.TestingRun(t)
}

func TestFileExtension(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"report.PDF", "pdf"},
		{"archive.tar.gz", "gz"},
		{"noext", ""},
		{".hidden", "hidden"},
	}
	for _, tc := range cases {
		f := &File{Name: tc.name}
		assert.Equal(t, tc.want, f.Extension(), "name=%q", tc.name)
	}
}

func TestStorageKey(t *testing.T) {
	assert.Equal(t, "7/docs/q3/report.pdf", StorageKey(7, "docs/q3", "report.pdf"))
	assert.Equal(t, "7/report.pdf", StorageKey(7, "", "report.pdf"))
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "docs/q3", NormalizePath("/docs/q3/"))
	assert.Equal(t, "docs/q3", NormalizePath("docs//q3"))
	assert.Equal(t, "", NormalizePath("/"))
}
