package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"slices"

	"github.com/colonyops/adminctl/internal/core/ui"
)

var _ ui.FormSubmitter = (*Client)(nil)

// Submit posts form as multipart/form-data and returns the response body.
func (c *Client) Submit(ctx context.Context, form ui.Form) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, k := range slices.Sorted(maps.Keys(form.Fields)) {
		if err := w.WriteField(k, form.Fields[k]); err != nil {
			return nil, fmt.Errorf("write field %s: %w", k, err)
		}
	}

	for _, f := range form.Files {
		if err := writeFile(w, f); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	return c.send(ctx, http.MethodPost, form.Action, w.FormDataContentType(), &buf)
}

func writeFile(w *multipart.Writer, f ui.FormFile) error {
	src, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Path, err)
	}
	defer func() { _ = src.Close() }()

	part, err := w.CreateFormFile(f.Field, filepath.Base(f.Path))
	if err != nil {
		return fmt.Errorf("create form file %s: %w", f.Field, err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("copy %s: %w", f.Path, err)
	}
	return nil
}
