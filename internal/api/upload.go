package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type upload struct {
	Data     []byte
	MimeType string
}

func readUpload(fh *multipart.FileHeader) (upload, error) {
	f, err := fh.Open()
	if err != nil {
		return upload{}, fmt.Errorf("error opening upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return upload{}, fmt.Errorf("error reading upload: %w", err)
	}

	return upload{
		Data:     data,
		MimeType: pickMIME(fh.Header.Get("Content-Type"), data),
	}, nil
}

// pickMIME prefers the type declared on the multipart part and only sniffs
// the content when the client sent none.
func pickMIME(declared string, data []byte) string {
	if d := strings.TrimSpace(declared); d != "" {
		return d
	}
	return mimetype.Detect(data).String()
}
