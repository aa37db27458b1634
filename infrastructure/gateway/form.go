package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	apperrors "blogspace-client/pkg/errors"
)

// multipartForm accumulates fields and files into an encoded multipart
// body. List-valued fields are JSON-encoded into a single part, which
// is the shape the post endpoints expect.
type multipartForm struct {
	buf    bytes.Buffer
	writer *multipart.Writer
	err    error
}

func newMultipartForm() *multipartForm {
	f := &multipartForm{}
	f.writer = multipart.NewWriter(&f.buf)
	return f
}

func (f *multipartForm) addField(name, value string) {
	if f.err != nil {
		return
	}
	f.err = f.writer.WriteField(name, value)
}

func (f *multipartForm) addJSONField(name string, value interface{}) {
	if f.err != nil {
		return
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		f.err = err
		return
	}
	f.err = f.writer.WriteField(name, string(encoded))
}

func (f *multipartForm) addFile(field, filename string, file io.Reader) error {
	if f.err != nil {
		return f.err
	}
	part, err := f.writer.CreateFormFile(field, filename)
	if err != nil {
		f.err = err
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		f.err = err
		return err
	}
	return nil
}

// close finalizes the body and returns it with its content type.
func (f *multipartForm) close() (io.Reader, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	if err := f.writer.Close(); err != nil {
		return nil, "", err
	}
	return &f.buf, f.writer.FormDataContentType(), nil
}

// doMultipart issues a multipart request and decodes a 2xx response
// into out.
func (c *Client) doMultipart(ctx context.Context, method, path string, form *multipartForm, out interface{}) error {
	body, contentType, err := form.close()
	if err != nil {
		return apperrors.NewInternalError("failed to encode form data").WithCause(err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return apperrors.NewInternalError("failed to build request").WithCause(err)
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req, out)
}
