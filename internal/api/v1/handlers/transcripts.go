package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"voxi/internal/api/errors"
	"voxi/internal/api/middleware"
	"voxi/internal/api/v1/dto"
	"voxi/internal/api/v1/services"
)

// TranscriptHandler serves stored transcripts.
type TranscriptHandler struct {
	service *services.TranscriptService
}

// NewTranscriptHandler wires the transcript read endpoints.
func NewTranscriptHandler(service *services.TranscriptService) *TranscriptHandler {
	return &TranscriptHandler{service: service}
}

// List handles GET /api/v1/transcripts.
//
//	@Summary	List processed transcripts
//	@Tags		transcripts
//	@Produce	json
//	@Param		page		query		int	false	"Page number (1-based)"
//	@Param		per_page	query		int	false	"Page size (max 100)"
//	@Success	200	{object}	dto.ListResponse
//	@Failure	422	{object}	errors.APIError
//	@Router		/transcripts [get]
func (h *TranscriptHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := middleware.ValidateRequest(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	resp, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/v1/transcripts/:id.
//
//	@Summary	Fetch one transcript
//	@Tags		transcripts
//	@Produce	json
//	@Param		id	path		int	true	"Transcript id"
//	@Success	200	{object}	dto.TranscriptDetail
//	@Failure	400	{object}	errors.APIError
//	@Failure	404	{object}	errors.APIError
//	@Router		/transcripts/{id} [get]
func (h *TranscriptHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleError(c, errors.NewBadRequestError("invalid transcript id"))
		return
	}

	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
