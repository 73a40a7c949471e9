package endpoints

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/db"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/api"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/api/admin/packets"
	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
	"github.com/Nixie-Tech-LLC/signage-console/internal/storage"
)

const (
	contentNotFound = "Content not found"
	uploadField     = "file"
	maxUploadBytes  = 512 << 20
)

type ContentController struct {
	store   db.Store
	storage storage.Storage
}

// ContentModule mounts the authenticated /contents endpoints, including the upload side-channel.
func ContentModule(store db.Store, files storage.Storage) api.Module {
	ctl := &ContentController{store: store, storage: files}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/contents", ctl.listContents)
		c.POST("/contents", ctl.createContent)
		c.POST("/contents/upload", ctl.uploadContent)
		c.GET("/contents/:id", ctl.getContent)
		c.PUT("/contents/:id", ctl.updateContent)
		c.DELETE("/contents/:id", ctl.deleteContent)
	})
}

func (cc *ContentController) listContents(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	all, err := cc.store.ListContents(ctx.Request.Context())
	if err != nil {
		return nil, api.Internal("could not list contents")
	}
	return all, nil
}

func (cc *ContentController) getContent(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	content, err := cc.store.GetContent(ctx.Request.Context(), id)
	if err != nil {
		return nil, storeError(err, contentNotFound)
	}
	return content, nil
}

func (cc *ContentController) createContent(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	var request packets.ContentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BindError(err)
	}
	content, err := cc.store.CreateContent(ctx.Request.Context(), request.Model())
	if err != nil {
		return nil, storeError(err, contentNotFound)
	}
	return api.Created(content), nil
}

func (cc *ContentController) updateContent(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.ContentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BindError(err)
	}
	content, err := cc.store.UpdateContent(ctx.Request.Context(), id, request.Model())
	if err != nil {
		return nil, storeError(err, contentNotFound)
	}
	return content, nil
}

func (cc *ContentController) deleteContent(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, apiErr := api.ParamID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	err := cc.store.DeleteContent(ctx.Request.Context(), id)
	if errors.Is(err, db.ErrInUse) {
		return nil, api.BadRequest("Cannot delete content with associated schedules")
	}
	if err != nil {
		return nil, storeError(err, contentNotFound)
	}
	return packets.MessageResponse{Message: "Content deleted successfully"}, nil
}

// uploadContent stores one image or video and returns its URL. No content record is created.
func (cc *ContentController) uploadContent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxUploadBytes)
	header, err := ctx.FormFile(uploadField)
	if err != nil {
		return nil, api.BadRequest("file is required")
	}

	file, err := header.Open()
	if err != nil {
		return nil, api.BadRequest("could not read file")
	}
	defer file.Close()

	declared, _, _ := mime.ParseMediaType(header.Header.Get("Content-Type"))
	detected, err := mimetype.DetectReader(file)
	if err != nil {
		return nil, api.BadRequest("could not read file")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, api.Internal("could not read file")
	}

	mediaType := declared
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType, _, _ = mime.ParseMediaType(detected.String())
	}
	if !strings.HasPrefix(mediaType, "image/") && !strings.HasPrefix(mediaType, "video/") {
		return nil, api.BadRequest("File must be an image or a video")
	}

	url, err := cc.storage.Save(ctx.Request.Context(), header.Filename, mediaType, file)
	if err != nil {
		log.Error().Err(err).Str("file", header.Filename).Msg("[contents] upload failed")
		return nil, api.Internal("could not store file")
	}
	log.Info().Str("url", url).Str("type", mediaType).Str("by", user.Username).Msg("[contents] uploaded")
	return packets.UploadResponse{URL: url, ContentType: mediaType, Filename: header.Filename}, nil
}
