// Package media decides how an attachment URL should be displayed.
package media

import (
	"path"
	"strings"
)

type Kind string

const (
	KindImage   Kind = "image"
	KindVideo   Kind = "video"
	KindUnknown Kind = "unknown"
)

var (
	imageExts = map[string]bool{".jpeg": true, ".jpg": true, ".gif": true, ".png": true, ".webp": true, ".bmp": true}
	videoExts = map[string]bool{".mp4": true, ".webm": true, ".ogg": true, ".mov": true}
)

// uploadsSegment marks files stored by the backend, which are often saved
// without an extension and are images in practice.
const uploadsSegment = "/uploads/"

// Classify guesses the media kind of rawURL from its extension, ignoring
// case, query string and fragment. A known extension wins; otherwise URLs
// under /uploads/ are treated as images.
func Classify(rawURL string) Kind {
	p := rawURL
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	ext := strings.ToLower(path.Ext(p))

	switch {
	case imageExts[ext]:
		return KindImage
	case videoExts[ext]:
		return KindVideo
	case strings.Contains(p, uploadsSegment):
		return KindImage
	default:
		return KindUnknown
	}
}
