package domain

import "strings"

// Category groups files for display and filtering.
type Category string

const (
	CategoryImage    Category = "image"
	CategoryVideo    Category = "video"
	CategoryAudio    Category = "audio"
	CategoryDocument Category = "document"
	CategoryArchive  Category = "archive"
	CategoryOther    Category = "other"
)

var archiveMimes = []string{
	"zip",
	"rar",
	"tar",
	"gzip",
	"7z",
}

// CategoryFromMime classifies a MIME type. Checks run in a fixed order,
// so a type matching several rules gets the first category: image,
// video, audio, document, archive, other. Every input maps to exactly
// one category.
func CategoryFromMime(mimeType string) Category {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return CategoryImage
	case strings.HasPrefix(mimeType, "video/"):
		return CategoryVideo
	case strings.HasPrefix(mimeType, "audio/"):
		return CategoryAudio
	case isDocumentMime(mimeType):
		return CategoryDocument
	case isArchiveMime(mimeType):
		return CategoryArchive
	}
	return CategoryOther
}

func isDocumentMime(mimeType string) bool {
	if mimeType == "application/pdf" {
		return true
	}
	if strings.Contains(mimeType, "word") ||
		strings.Contains(mimeType, "excel") ||
		strings.Contains(mimeType, "powerpoint") {
		return true
	}
	return strings.Contains(mimeType, "text/")
}

func isArchiveMime(mimeType string) bool {
	for _, m := range archiveMimes {
		if strings.Contains(mimeType, m) {
			return true
		}
	}
	return false
}
