package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"voxi/internal/api/errors"
	"voxi/internal/api/middleware"
	"voxi/internal/api/v1/dto"
	"voxi/internal/api/v1/services"
)

// allowedExtensions is the accepted upload format whitelist.
var allowedExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".m4a":  true,
}

// ProcessHandler accepts audio uploads and returns finished transcripts.
type ProcessHandler struct {
	service        *services.ProcessService
	maxUploadBytes int64
	log            *zap.Logger
}

// NewProcessHandler wires the process endpoint.
func NewProcessHandler(service *services.ProcessService, maxUploadBytes int64, log *zap.Logger) *ProcessHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProcessHandler{service: service, maxUploadBytes: maxUploadBytes, log: log}
}

// Process handles POST /api/v1/process.
//
//	@Summary		Process an audio file
//	@Description	Diarizes, transcribes, speaker-labels and translates one uploaded audio file.
//	@Tags			process
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file		formData	file	true	"Audio file (wav, mp3, flac, ogg, m4a)"
//	@Param			language	formData	string	false	"Force the transcription language hint"
//	@Param			translate	formData	boolean	false	"Translate to English (default true)"
//	@Success		200	{object}	dto.ProcessResponse
//	@Failure		400	{object}	errors.APIError
//	@Failure		413	{object}	errors.APIError
//	@Failure		422	{object}	errors.APIError
//	@Failure		500	{object}	errors.APIError
//	@Router			/process [post]
func (h *ProcessHandler) Process(c *gin.Context) {
	if c.Request.ContentLength > h.maxUploadBytes {
		middleware.HandleError(c, errors.NewPayloadTooLargeError("upload exceeds size limit"))
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	var opts dto.ProcessOptions
	if err := middleware.ValidateRequest(c, &opts); err != nil {
		middleware.HandleError(c, err)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		if isBodyTooLarge(err) {
			middleware.HandleError(c, errors.NewPayloadTooLargeError("upload exceeds size limit"))
			return
		}
		middleware.HandleError(c, errors.NewBadRequestError("missing file part"))
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		middleware.HandleError(c, errors.NewBadRequestError("unsupported audio format "+ext))
		return
	}

	tmpPath := filepath.Join(os.TempDir(), "voxi-"+uuid.New().String()+ext)
	if err := c.SaveUploadedFile(header, tmpPath); err != nil {
		if isBodyTooLarge(err) {
			middleware.HandleError(c, errors.NewPayloadTooLargeError("upload exceeds size limit"))
			return
		}
		h.log.Error("upload spooling failed", zap.Error(err))
		middleware.HandleError(c, errors.NewInternalError("failed to store upload"))
		return
	}
	defer os.Remove(tmpPath)

	resp, err := h.service.Process(c.Request.Context(), tmpPath, header.Filename, opts)
	if err != nil {
		h.log.Error("processing failed",
			zap.String("file", header.Filename),
			zap.Error(err))
		middleware.HandleError(c, errors.NewInternalError("audio processing failed"))
		return
	}

	c.JSON(http.StatusOK, resp)
}

func isBodyTooLarge(err error) bool {
	return err != nil && strings.Contains(err.Error(), "request body too large")
}
