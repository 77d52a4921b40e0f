// Package netx contains HTTP body helpers shared by the API client.
package netx

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// maxErrorBody bounds how much of a failed response is kept for the error
// message.
const maxErrorBody = 64 << 10

// MultipartFile encodes r as a single multipart/form-data part named field.
// It returns the encoded body and the Content-Type (with boundary) to send
// alongside it.
func MultipartFile(field, filename string, r io.Reader) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, "", fmt.Errorf("copy file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return body, mw.FormDataContentType(), nil
}

// ReadErrorBody reads at most 64 KiB of a failed response body as text.
// Read errors are ignored: the status code is what matters.
func ReadErrorBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	return string(b)
}
