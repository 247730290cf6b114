package server

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/longevitylab/gerograph/internal/assistant"
	"github.com/longevitylab/gerograph/internal/chat"
	"github.com/longevitylab/gerograph/internal/config"
	"github.com/longevitylab/gerograph/internal/dataset"
	"github.com/longevitylab/gerograph/internal/logger"
	"github.com/longevitylab/gerograph/internal/session"
)

type Server struct {
	Cfg      *config.Config
	Log      *logger.Logger
	Data     dataset.Source
	Sessions *session.Store
}

// NewServer wires the whole service: config file with env overrides, logger,
// the compiled-in dataset, the configured assistant, and the session store.
func NewServer() (*Server, error) {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		// Run on defaults when no config file is present; env vars still apply.
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	log, err := logger.New(cfg.Server.LogMode)
	if err != nil {
		return nil, err
	}

	data, err := dataset.NewStaticProvider()
	if err != nil {
		return nil, err
	}

	asst, err := assistant.New(context.Background(), cfg.Assistant)
	if err != nil {
		return nil, err
	}

	log.Info("assistant configured", "provider", cfg.Assistant.Provider)
	return New(cfg, log, data, asst), nil
}

// New assembles a server from explicit collaborators. Tests use this.
func New(cfg *config.Config, log *logger.Logger, data dataset.Source, asst assistant.Assistant) *Server {
	timeout := time.Duration(cfg.Assistant.TimeoutMS) * time.Millisecond
	sessions := session.NewStore(func() *chat.Thread {
		return chat.NewThread(asst, timeout)
	})
	return &Server{
		Cfg:      cfg,
		Log:      log,
		Data:     data,
		Sessions: sessions,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	v1 := r.Group("/api/v1")
	{
		v1.GET("/graph", s.GetGraph)
		v1.GET("/graph/view.svg", s.GetGraphView)
		v1.GET("/graph/search", s.SearchGraph)
		v1.GET("/gaps", s.ListGaps)
		v1.GET("/gaps/:id", s.GetGap)
		v1.GET("/stats", s.GetStats)
		v1.GET("/trends", s.GetTrends)

		v1.POST("/sessions", s.CreateSession)
		v1.GET("/sessions/:id", s.GetSession)
		v1.DELETE("/sessions/:id", s.DeleteSession)
		v1.PUT("/sessions/:id/filter", s.SetFilter)
		v1.PUT("/sessions/:id/selection", s.SetSelection)
		v1.GET("/sessions/:id/messages", s.ListMessages)
		v1.POST("/sessions/:id/messages", s.PostMessage)
	}

	return r
}
