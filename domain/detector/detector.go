// Package detector turns inbound events into persisted incidents.
package detector

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Andikeys/cloudops-autopilot/domain/analyzer"
	"github.com/Andikeys/cloudops-autopilot/domain/classifier"
	"github.com/Andikeys/cloudops-autopilot/domain/entity"
	"github.com/Andikeys/cloudops-autopilot/domain/repository"
	"github.com/google/uuid"
)

var timeNow = time.Now

// Result reports what happened to an event: either an incident was created
// or the event was suppressed as noise.
type Result struct {
	Suppressed bool
	Incident   *entity.Incident
}

type Detector struct {
	repo     repository.IncidentRepository
	notifier repository.Notifier
	analyzer analyzer.Analyzer
}

// New builds a Detector. notifier may be nil when no alert channel is
// configured.
func New(repo repository.IncidentRepository, notifier repository.Notifier, a analyzer.Analyzer) *Detector {
	return &Detector{
		repo:     repo,
		notifier: notifier,
		analyzer: a,
	}
}

// Process classifies one event and, unless it is LOW severity, enriches it
// and writes an incident record. The write must succeed for the event to
// count as processed; a failed notification does not undo it.
func (d *Detector) Process(ctx context.Context, event *entity.Event) (*Result, error) {
	severity := classifier.Classify(event.Source, event.EventType, event.Detail)
	if severity == entity.SeverityLow {
		slog.Info("skipping low-severity event",
			slog.String("source", event.Source),
			slog.String("event_type", event.EventType),
		)
		return &Result{Suppressed: true}, nil
	}

	analysis, err := d.analyzer.Analyze(ctx, event.Source, event.EventType, event.Detail)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze event: %w", err)
	}

	now := timeNow().UTC()
	incident := &entity.Incident{
		IncidentID: newIncidentID(event.Source, now),
		Timestamp:  now.UnixMilli(),
		Source:     event.Source,
		EventType:  event.EventType,
		Severity:   severity,
		Status:     entity.StatusOpen,
		Details:    event.Detail,
		Analysis:   *analysis,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := d.repo.SaveIncident(ctx, incident); err != nil {
		return nil, fmt.Errorf("failed to save incident %s: %w", incident.IncidentID, err)
	}

	if severity.AtLeast(entity.SeverityHigh) && d.notifier != nil {
		if err := d.notifier.PublishIncident(ctx, incident); err != nil {
			slog.Error("failed to publish notification",
				slog.String("incident_id", incident.IncidentID),
				slog.Any("err", err),
			)
		}
	}

	slog.Info("incident created",
		slog.String("incident_id", incident.IncidentID),
		slog.String("severity", string(severity)),
	)
	return &Result{Incident: incident}, nil
}

// newIncidentID mints "{source}-{epoch_ms}-{suffix}". The random suffix
// means a redelivered event creates a distinct incident rather than
// colliding with the first delivery.
func newIncidentID(source string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s-%d-%s", source, now.UnixMilli(), suffix)
}
