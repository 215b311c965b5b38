package search

import (
	"path/filepath"
	"strings"

	"github.com/mwantia/gotags/pkg/db/models"
)

// Type categories accepted by the query language.
const (
	CategoryImage     = "image"
	CategoryVideo     = "video"
	CategoryDocument  = "document"
	CategoryAudio     = "audio"
	CategoryArchive   = "archive"
	CategoryDirectory = "directory"
)

var validCategories = map[string]bool{
	CategoryImage:     true,
	CategoryVideo:     true,
	CategoryDocument:  true,
	CategoryAudio:     true,
	CategoryArchive:   true,
	CategoryDirectory: true,
}

var extensionCategories = map[string]string{
	// image
	"jpg": CategoryImage, "jpeg": CategoryImage, "png": CategoryImage,
	"gif": CategoryImage, "bmp": CategoryImage, "webp": CategoryImage,
	"svg": CategoryImage, "tiff": CategoryImage, "heic": CategoryImage,

	// video
	"mp4": CategoryVideo, "mkv": CategoryVideo, "avi": CategoryVideo,
	"mov": CategoryVideo, "wmv": CategoryVideo, "webm": CategoryVideo,
	"flv": CategoryVideo, "m4v": CategoryVideo,

	// document
	"pdf": CategoryDocument, "doc": CategoryDocument, "docx": CategoryDocument,
	"txt": CategoryDocument, "md": CategoryDocument, "odt": CategoryDocument,
	"rtf": CategoryDocument, "xls": CategoryDocument, "xlsx": CategoryDocument,
	"ppt": CategoryDocument, "pptx": CategoryDocument, "csv": CategoryDocument,

	// audio
	"mp3": CategoryAudio, "wav": CategoryAudio, "flac": CategoryAudio,
	"ogg": CategoryAudio, "m4a": CategoryAudio, "aac": CategoryAudio,
	"wma": CategoryAudio,

	// archive
	"zip": CategoryArchive, "rar": CategoryArchive, "7z": CategoryArchive,
	"tar": CategoryArchive, "gz": CategoryArchive, "bz2": CategoryArchive,
	"xz": CategoryArchive,
}

// classifyItem maps an item to its type category by is-directory flag or
// extension lookup. Items with no known extension have no category.
func classifyItem(item *models.Item) string {
	if item.IsDir {
		return CategoryDirectory
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(item.Path)), ".")
	return extensionCategories[ext]
}
