package netx

import (
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"
)

func TestMultipartFile(t *testing.T) {
	body, contentType, err := MultipartFile("file", "avatar.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("bad content type %q: %v", contentType, err)
	}
	if mediaType != "multipart/form-data" {
		t.Fatalf("media type = %q, want multipart/form-data", mediaType)
	}

	mr := multipart.NewReader(body, params["boundary"])
	part, err := mr.NextPart()
	if err != nil {
		t.Fatalf("next part: %v", err)
	}
	if part.FormName() != "file" {
		t.Fatalf("form name = %q, want file", part.FormName())
	}
	if part.FileName() != "avatar.png" {
		t.Fatalf("file name = %q, want avatar.png", part.FileName())
	}
	got, _ := io.ReadAll(part)
	if string(got) != "png-bytes" {
		t.Fatalf("content = %q, want png-bytes", string(got))
	}
	if _, err := mr.NextPart(); err != io.EOF {
		t.Fatalf("expected a single part, got err=%v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestMultipartFile_ReaderError(t *testing.T) {
	if _, _, err := MultipartFile("file", "x", failingReader{}); err == nil {
		t.Fatal("expected error from failing reader")
	}
}

func TestReadErrorBody_Truncates(t *testing.T) {
	long := strings.Repeat("x", maxErrorBody+10)
	if got := ReadErrorBody(strings.NewReader(long)); len(got) != maxErrorBody {
		t.Fatalf("len = %d, want %d", len(got), maxErrorBody)
	}
	if got := ReadErrorBody(strings.NewReader(`{"error":"bad"}`)); got != `{"error":"bad"}` {
		t.Fatalf("got %q", got)
	}
}
