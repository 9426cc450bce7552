package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Andikeys/cloudops-autopilot/domain/analyzer"
	"github.com/Andikeys/cloudops-autopilot/domain/detector"
	"github.com/Andikeys/cloudops-autopilot/domain/repository"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/slack-go/slack"
)

// Run wires the repositories, detector and HTTP server together and serves
// until ctx is canceled.
func Run(ctx context.Context, configPath string) error {
	cfg, err := repository.NewConfigRepository(configPath)
	if err != nil {
		return err
	}

	dynamoRepository, err := repository.NewDynamoDBRepository(ctx)
	if err != nil {
		return err
	}

	var notifier repository.Notifier
	if cfg.NotificationsEnabled() && os.Getenv("SLACK_BOT_TOKEN") != "" {
		webApi := slack.New(os.Getenv("SLACK_BOT_TOKEN"))
		notifier = repository.NewSlackRepository(webApi, cfg.Slack)
		slog.Info("slack notifications enabled", slog.String("channel", cfg.Slack.AlertChannel))
	} else {
		slog.Warn("slack notifications disabled")
	}

	d := detector.New(dynamoRepository, notifier, analyzer.NewRuleBasedAnalyzer())

	server := NewServer(dynamoRepository, d)
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.Any("err", err))
		}
	}()

	slog.Info("server started", slog.String("addr", cfg.ListenAddr))
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Server exposes the event-ingestion and dashboard query surfaces.
type Server struct {
	repo     repository.IncidentRepository
	detector *detector.Detector
}

func NewServer(repo repository.IncidentRepository, d *detector.Detector) *Server {
	return &Server{
		repo:     repo,
		detector: d,
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), MetricsMiddleware())

	router.GET("/health", s.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.POST("/events", s.IngestEvent)
	api.GET("/incidents", s.ListIncidents)
	api.GET("/incidents/:id", s.GetIncident)
	api.GET("/metrics", s.GetMetrics)

	return router
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "cloudops-autopilot",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
