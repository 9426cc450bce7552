package entity

type SystemHealth string

const (
	HealthHealthy  SystemHealth = "HEALTHY"
	HealthWarning  SystemHealth = "WARNING"
	HealthDegraded SystemHealth = "DEGRADED"
	HealthCritical SystemHealth = "CRITICAL"
)

// MetricsSnapshot is a point-in-time aggregate computed over a window of
// incidents for the dashboard. It is recomputed on demand and never stored.
type MetricsSnapshot struct {
	TotalIncidents    int            `json:"total_incidents"`
	OpenIncidents     int            `json:"open_incidents"`
	ResolvedIncidents int            `json:"resolved_incidents"`
	CriticalIncidents int            `json:"critical_incidents"`
	HighIncidents     int            `json:"high_incidents"`
	MediumIncidents   int            `json:"medium_incidents"`
	LowIncidents      int            `json:"low_incidents"`
	AvgResolutionTime int            `json:"avg_resolution_time"`
	IncidentsBySource map[string]int `json:"incidents_by_source"`
	IncidentsByHour   map[string]int `json:"incidents_by_hour"`
	SystemHealth      SystemHealth   `json:"system_health"`
}
