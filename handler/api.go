package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Andikeys/cloudops-autopilot/domain/entity"
	"github.com/Andikeys/cloudops-autopilot/domain/metrics"
	"github.com/Andikeys/cloudops-autopilot/domain/repository"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const defaultIncidentLimit = 50

var validate = validator.New()

// POST /api/events - accept one event, classify it and either create an
// incident or report it suppressed.
func (s *Server) IngestEvent(c *gin.Context) {
	var event entity.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event payload"})
		return
	}
	if err := validate.Struct(event); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if event.ReceivedAt.IsZero() {
		event.ReceivedAt = time.Now().UTC()
	}

	result, err := s.detector.Process(c.Request.Context(), &event)
	if err != nil {
		slog.Error("failed to process event", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process incident"})
		return
	}

	if result.Suppressed {
		c.JSON(http.StatusOK, gin.H{"message": "Event processed - low severity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Incident processed successfully",
		"incident_id": result.Incident.IncidentID,
		"severity":    result.Incident.Severity,
	})
}

// GET /api/incidents - list incidents most recent first, optionally
// filtered by status and severity.
func (s *Server) ListIncidents(c *gin.Context) {
	filter := repository.IncidentFilter{Limit: defaultIncidentLimit}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		filter.Limit = limit
	}
	if v := c.Query("status"); v != "" {
		filter.Status = entity.Status(strings.ToUpper(v))
	}
	if v := c.Query("severity"); v != "" {
		filter.Severity = entity.Severity(strings.ToUpper(v))
	}

	incidents, err := s.repo.QueryIncidents(c.Request.Context(), filter)
	if err != nil {
		slog.Error("failed to query incidents", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"incidents": incidents,
		"count":     len(incidents),
	})
}

// GET /api/incidents/:id
func (s *Server) GetIncident(c *gin.Context) {
	incident, err := s.repo.FindIncidentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrIncidentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Incident not found"})
			return
		}
		slog.Error("failed to fetch incident", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, incident)
}

// GET /api/metrics - dashboard snapshot over the trailing 24 hours,
// recomputed per request.
func (s *Server) GetMetrics(c *gin.Context) {
	now := time.Now()
	incidents, err := s.repo.IncidentsSince(c.Request.Context(), now.Add(-24*time.Hour))
	if err != nil {
		slog.Error("failed to fetch incidents for metrics", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, metrics.Aggregate(incidents, now))
}
