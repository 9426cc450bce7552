package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Andikeys/cloudops-autopilot/domain/entity"
)

var ErrIncidentNotFound = errors.New("incident not found")

// IncidentFilter narrows QueryIncidents. Zero values mean "no filter";
// when both Status and Severity are set they apply conjunctively.
type IncidentFilter struct {
	Status   entity.Status
	Severity entity.Severity
	Limit    int
}

type IncidentRepository interface {
	SaveIncident(context.Context, *entity.Incident) error
	FindIncidentByID(context.Context, string) (*entity.Incident, error)
	QueryIncidents(context.Context, IncidentFilter) ([]entity.Incident, error)
	IncidentsSince(context.Context, time.Time) ([]entity.Incident, error)
}

// Notifier publishes an alert for an incident. Publish failures are the
// channel's problem: callers log and move on.
type Notifier interface {
	PublishIncident(context.Context, *entity.Incident) error
}
