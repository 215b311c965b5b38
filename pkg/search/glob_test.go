package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlobMatch(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"*.jpg", "photo.jpg", true},
		{"*.jpg", "photo.JPG", true}, // case-insensitive
		{"*.jpg", "photo.jpgx", false},
		{"*.jpg", "jpg", false},
		{"photo.*", "photo.png", true},
		{"*report*", "Q3_report_final.pdf", true},
		{"*report*", "summary.pdf", false},
		{"IMG_????.jpg", "IMG_1234.jpg", true},
		{"IMG_????.jpg", "IMG_12345.jpg", false},
		{"*", "anything", true},
		{"*", "", true},
		{"?", "", false},
		{"a*b*c", "aXXbYYc", true},
		{"a*b*c", "aXXcYYb", false},
		{"exact.txt", "exact.txt", true},
		{"exact.txt", "exact.txT", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, globMatch(tt.pattern, tt.name))
		})
	}
}
