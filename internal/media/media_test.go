package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		url  string
		want Kind
	}{
		{"https://cdn.example.com/a.png", KindImage},
		{"https://cdn.example.com/a.JPG", KindImage},
		{"/files/photo.jpeg", KindImage},
		{"/files/anim.gif", KindImage},
		{"/files/pic.webp", KindImage},
		{"/files/old.bmp", KindImage},
		{"/files/clip.mp4", KindVideo},
		{"/files/clip.MOV", KindVideo},
		{"/files/clip.webm?token=x", KindVideo},
		{"/files/sound.ogg#t=10", KindVideo},
		{"/uploads/5f2c9e", KindImage},
		{"/files/report.pdf", KindUnknown},
		{"/files/noext", KindUnknown},
		{"", KindUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.url), tt.url)
	}
}

// Backend uploads without an extension show as images, but a video
// extension under /uploads/ still plays as a video rather than being
// forced into an image viewer.
func TestClassify_ExtensionBeatsUploadsPrefix(t *testing.T) {
	assert.Equal(t, KindImage, Classify("/uploads/5f2c9e"))
	assert.Equal(t, KindVideo, Classify("/uploads/clip.mp4"))
	assert.Equal(t, KindVideo, Classify("https://host/uploads/clip.webm?v=2"))
	assert.Equal(t, KindImage, Classify("/uploads/report.pdf"), "unknown extensions fall back to the uploads rule")
}
