package entity

import "time"

type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

var severityRank = map[Severity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

// AtLeast reports whether s is as urgent as other or more.
func (s Severity) AtLeast(other Severity) bool {
	return severityRank[s] >= severityRank[other]
}

type Status string

const (
	StatusOpen     Status = "OPEN"
	StatusResolved Status = "RESOLVED"
)

// Incident is a persisted, severity-tagged record derived from one
// qualifying event. Severity is assigned once at creation and never
// re-classified. Status and ResolvedAt are written by the resolution
// workflow, not by anything in this repository.
type Incident struct {
	IncidentID string    `json:"incident_id" dynamo:"incident_id,hash"`
	Timestamp  int64     `json:"timestamp" dynamo:"timestamp"`
	Source     string    `json:"source" dynamo:"source"`
	EventType  string    `json:"event_type" dynamo:"event_type"`
	Severity   Severity  `json:"severity" dynamo:"severity"`
	Status     Status    `json:"status" dynamo:"status"`
	Details    Detail    `json:"details" dynamo:"details"`
	Analysis   Analysis  `json:"analysis" dynamo:"analysis"`
	CreatedAt  time.Time `json:"created_at" dynamo:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" dynamo:"updated_at"`
	ResolvedAt time.Time `json:"resolved_at,omitempty" dynamo:"resolved_at,omitempty"`
}

// Resolved reports whether the resolution workflow has stamped the record.
func (i *Incident) Resolved() bool {
	return i.Status == StatusResolved && !i.ResolvedAt.IsZero()
}

// Analysis is the structured diagnostic narrative attached to an incident.
type Analysis struct {
	Summary           string   `json:"summary" dynamo:"summary"`
	SeverityReasoning string   `json:"severity_reasoning" dynamo:"severity_reasoning"`
	RootCauses        []string `json:"root_causes" dynamo:"root_causes"`
	Recommendations   []string `json:"recommendations" dynamo:"recommendations"`
	ImpactAssessment  []string `json:"impact_assessment" dynamo:"impact_assessment"`
	NextSteps         []string `json:"next_steps" dynamo:"next_steps"`
	ConfidenceScore   float64  `json:"confidence_score" dynamo:"confidence_score"`
}
