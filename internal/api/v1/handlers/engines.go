package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voxi/internal/app/engine"
)

// EngineHandler reports which engines this deployment can serve.
type EngineHandler struct {
	registry *engine.Registry
	active   map[string]string
}

// NewEngineHandler wires the engine listing endpoint. active maps each
// engine kind to the name selected by configuration.
func NewEngineHandler(registry *engine.Registry, active map[string]string) *EngineHandler {
	return &EngineHandler{registry: registry, active: active}
}

// List handles GET /api/v1/engines.
//
//	@Summary	List available engines
//	@Tags		engines
//	@Produce	json
//	@Success	200	{object}	map[string]interface{}
//	@Router		/engines [get]
func (h *EngineHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"available": h.registry.List(),
		"active":    h.active,
	})
}
