package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"voxi/internal/app/audio"
	"voxi/internal/app/cache"
	appconfig "voxi/internal/app/config"
	"voxi/internal/app/engine"
	"voxi/internal/app/metrics"
	"voxi/internal/app/pipeline"
	"voxi/internal/app/repository"
	"voxi/internal/app/repository/pg"
	"voxi/internal/app/repository/sqlite"
	"voxi/internal/app/storage"
	"voxi/internal/config"
)

// App is the fully wired application container shared by the server and
// the CLI commands.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Registry *engine.Registry
	Pipeline *pipeline.Pipeline
	DAO      repository.TranscriptDAO
	Cache    *cache.ResultCache
	Archiver *storage.Archiver
}

// ActiveEngines reports the engine selected per kind, for diagnostics.
func (a *App) ActiveEngines() map[string]string {
	return map[string]string{
		"diarizer":    a.Config.DiarizerEngine,
		"transcriber": a.Config.TranscriberEngine,
		"translator":  a.Config.TranslatorEngine,
	}
}

// Close releases held resources. Safe to call once at shutdown.
func (a *App) Close() {
	if a.DAO != nil {
		if err := a.DAO.Close(); err != nil {
			a.Logger.Warn("closing repository failed", zap.Error(err))
		}
	}
	_ = a.Logger.Sync()
}

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func providePromRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

func provideMetrics(reg *prometheus.Registry) *metrics.Metrics {
	return metrics.New(reg)
}

func provideGatherer(reg *prometheus.Registry) prometheus.Gatherer {
	return reg
}

func provideEnginesConfig(cfg *config.Config) (*appconfig.EnginesConfig, error) {
	return appconfig.LoadEnginesConfig(cfg.EnginesConfigPath)
}

func provideRegistry(cfg *config.Config, engCfg *appconfig.EnginesConfig, log *zap.Logger) (*engine.Registry, error) {
	return buildRegistry(cfg, engCfg, log)
}

// providePipeline resolves the configured engines from the registry and
// assembles the processing pipeline.
func providePipeline(
	cfg *config.Config,
	engCfg *appconfig.EnginesConfig,
	registry *engine.Registry,
	log *zap.Logger,
	m *metrics.Metrics,
) (*pipeline.Pipeline, error) {
	diarizerName := cfg.DiarizerEngine
	if engCfg.Diarizer.Kind != "" {
		diarizerName = engCfg.Diarizer.Kind
	}
	transcriberName := cfg.TranscriberEngine
	if engCfg.Transcriber.Kind != "" {
		transcriberName = engCfg.Transcriber.Kind
	}
	translatorName := cfg.TranslatorEngine
	if engCfg.Translator.Kind != "" {
		translatorName = engCfg.Translator.Kind
	}

	diarizer, err := registry.Diarizer(diarizerName)
	if err != nil {
		return nil, fmt.Errorf("resolving diarizer: %w", err)
	}
	transcriber, err := registry.Transcriber(transcriberName)
	if err != nil {
		return nil, fmt.Errorf("resolving transcriber: %w", err)
	}

	var translator engine.Translator
	if translatorName != "" && translatorName != "none" {
		translator, err = registry.Translator(translatorName)
		if err != nil {
			return nil, fmt.Errorf("resolving translator: %w", err)
		}
	}

	pipeCfg := pipeline.DefaultConfig()
	if cfg.TranscribeWorkers > 0 {
		pipeCfg.TranscribeWorkers = cfg.TranscribeWorkers
	}

	decoder := audio.NewFFmpegDecoder(audio.DefaultSampleRate, log)
	return pipeline.New(decoder, diarizer, transcriber, translator, pipeCfg, log, m), nil
}

func provideDAO(cfg *config.Config, log *zap.Logger) (repository.TranscriptDAO, error) {
	switch cfg.DBDriver {
	case "postgres":
		return pg.New(pg.Options{
			Host:     cfg.PGHost,
			Port:     cfg.PGPort,
			User:     cfg.PGUser,
			Password: cfg.PGPassword,
			Database: cfg.PGDatabase,
		})
	default:
		return sqlite.New(cfg.SQLitePath)
	}
}

func provideCache(cfg *config.Config, log *zap.Logger) *cache.ResultCache {
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}
	return cache.New(rdb, cfg.CacheTTL, log)
}

// provideArchiver connects object storage when configured. Archival is
// optional, so a missing endpoint yields a nil no-op archiver.
func provideArchiver(cfg *config.Config, log *zap.Logger) (*storage.Archiver, error) {
	if cfg.MinioEndpoint == "" {
		return nil, nil
	}
	return storage.New(context.Background(), storage.Options{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	}, log)
}
