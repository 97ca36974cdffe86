// internal/domain/upload/service_test.go
package upload

import (
	"strings"
	"testing"
)

func TestValidateImage(t *testing.T) {
	const maxSize = 5 * 1024 * 1024

	tests := []struct {
		name        string
		contentType string
		size        int64
		wantErr     bool
	}{
		{"jpeg within limit", "image/jpeg", 1024, false},
		{"png at limit", "image/png", maxSize, false},
		{"webp", "image/webp", 2048, false},
		{"over limit", "image/jpeg", maxSize + 1, true},
		{"empty file", "image/png", 0, true},
		{"pdf rejected", "application/pdf", 1024, true},
		{"text rejected", "text/plain", 10, true},
		{"no content type", "", 1024, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImage(tt.contentType, tt.size, maxSize)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImage(%q, %d) error = %v, wantErr %v", tt.contentType, tt.size, err, tt.wantErr)
			}
		})
	}
}

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		contentType string
		fileName    string
		want        string
	}{
		{"image/jpeg", "photo.jpeg", ".jpg"},
		{"image/png", "shot.png", ".png"},
		{"image/webp", "img", ".webp"},
		{"image/gif", "anim.gif", ".gif"},
		{"image/svg+xml", "logo.SVG", ".svg"},
		{"image/unknown", "noext", ".bin"},
	}

	for _, tt := range tests {
		got := extensionFor(tt.contentType, tt.fileName)
		if got != tt.want {
			t.Errorf("extensionFor(%q, %q) = %q, want %q", tt.contentType, tt.fileName, got, tt.want)
		}
		if got != strings.ToLower(got) {
			t.Errorf("extension %q is not lowercase", got)
		}
	}
}
