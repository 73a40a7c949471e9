package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// UploadField is the multipart field the backend reads the file from.
const UploadField = "file"

var ErrNoURL = errors.New("upload response carried no url")

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

type uploadResponse struct {
	URL string `json:"url"`
}

// UploadContent streams one file to /contents/upload and returns the URL the backend stored it under.
// mediaType is sent as the part's declared Content-Type.
func (c *Client) UploadContent(ctx context.Context, creds *Credentials, filename, mediaType string, src io.Reader) (string, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, UploadField, quoteEscaper.Replace(filename)))
		if mediaType == "" {
			mediaType = "application/octet-stream"
		}
		h.Set("Content-Type", mediaType)

		part, err := mw.CreatePart(h)
		if err == nil {
			_, err = io.Copy(part, src)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := c.newRequest(ctx, creds, http.MethodPost, "/contents/upload", pr, mw.FormDataContentType())
	if err != nil {
		_ = pr.CloseWithError(err)
		return "", err
	}

	var out uploadResponse
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", ErrNoURL
	}
	return out.URL, nil
}
