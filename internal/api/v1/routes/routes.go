package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voxi/internal/api/v1/handlers"
	"voxi/internal/api/v1/services"
	"voxi/internal/app/engine"
)

// ServiceContainer carries everything the v1 routes need.
type ServiceContainer struct {
	Process        *services.ProcessService
	Transcripts    *services.TranscriptService
	Registry       *engine.Registry
	ActiveEngines  map[string]string
	MaxUploadBytes int64
	Logger         *zap.Logger
}

// RegisterRoutes mounts the v1 API onto the given group.
func RegisterRoutes(v1 *gin.RouterGroup, c ServiceContainer) {
	processHandler := handlers.NewProcessHandler(c.Process, c.MaxUploadBytes, c.Logger)
	transcriptHandler := handlers.NewTranscriptHandler(c.Transcripts)
	engineHandler := handlers.NewEngineHandler(c.Registry, c.ActiveEngines)

	v1.POST("/process", processHandler.Process)
	v1.GET("/transcripts", transcriptHandler.List)
	v1.GET("/transcripts/:id", transcriptHandler.Get)
	v1.GET("/engines", engineHandler.List)
}
