package console

import (
	"bytes"
	"context"
	"io"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/backend"
	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

const (
	uploadSuccess = "Arquivo enviado com sucesso!"
	uploadError   = "Erro ao fazer upload do arquivo"

	sniffLen = 3072
)

// Uploader sends media to the backend's upload side-channel.
type Uploader interface {
	UploadContent(ctx context.Context, creds *backend.Credentials, filename, mediaType string, src io.Reader) (string, error)
}

// File is a picked media file. MediaType is what the browser declared and may be empty.
type File struct {
	Name      string
	MediaType string
	Body      io.Reader
}

// Upload sends the file and, on success, points the open content form at the stored URL with the
// type inferred from the media type. Other form fields are untouched and nothing is saved yet.
func Upload(ctx context.Context, creds *backend.Credentials, up Uploader, ctl *Contents, f File) bool {
	ctl.Error, ctl.Success = "", ""

	mediaType, body, err := resolveMediaType(f)
	if err != nil {
		log.Error().Err(err).Str("file", f.Name).Msg("could not read upload")
		ctl.Error = uploadError
		return false
	}

	url, err := up.UploadContent(ctx, creds, f.Name, mediaType, body)
	if err != nil {
		log.Error().Err(err).Str("file", f.Name).Msg("upload failed")
		ctl.Error = backend.Detail(err, uploadError)
		return false
	}

	ctl.Form.URL = url
	ctl.Form.Type = TypeForMedia(mediaType)
	ctl.Success = uploadSuccess
	return true
}

// TypeForMedia: video/* is a video, anything else an image.
func TypeForMedia(mediaType string) model.ContentType {
	if strings.HasPrefix(mediaType, "video/") {
		return model.ContentVideo
	}
	return model.ContentImage
}

// resolveMediaType trusts a declared type and sniffs the head of the body otherwise.
func resolveMediaType(f File) (string, io.Reader, error) {
	declared := strings.TrimSpace(f.MediaType)
	if declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil {
			declared = mt
		}
	}
	if declared != "" && declared != "application/octet-stream" {
		return declared, f.Body, nil
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f.Body, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", nil, err
	}
	head = head[:n]
	mt := mimetype.Detect(head)
	body := io.MultiReader(bytes.NewReader(head), f.Body)

	detected, _, err := mime.ParseMediaType(mt.String())
	if err != nil {
		detected = "application/octet-stream"
	}
	return detected, body, nil
}
