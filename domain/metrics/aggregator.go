// Package metrics computes dashboard aggregates over a window of incidents.
package metrics

import (
	"fmt"
	"math"
	"time"

	"github.com/Andikeys/cloudops-autopilot/domain/entity"
)

// Aggregate reduces a set of incidents to a dashboard snapshot. The caller
// supplies the observation window (normally the trailing 24 hours ending at
// now); the only time-based work done here is the hourly histogram.
func Aggregate(incidents []entity.Incident, now time.Time) *entity.MetricsSnapshot {
	snapshot := &entity.MetricsSnapshot{
		TotalIncidents:    len(incidents),
		IncidentsBySource: bySource(incidents),
		IncidentsByHour:   byHour(incidents, now),
		AvgResolutionTime: avgResolutionMinutes(incidents),
		SystemHealth:      systemHealth(incidents),
	}

	for _, i := range incidents {
		switch i.Status {
		case entity.StatusOpen:
			snapshot.OpenIncidents++
		case entity.StatusResolved:
			snapshot.ResolvedIncidents++
		}
		switch i.Severity {
		case entity.SeverityCritical:
			snapshot.CriticalIncidents++
		case entity.SeverityHigh:
			snapshot.HighIncidents++
		case entity.SeverityMedium:
			snapshot.MediumIncidents++
		case entity.SeverityLow:
			snapshot.LowIncidents++
		}
	}

	return snapshot
}

// avgResolutionMinutes averages resolved_at - created_at over resolved
// incidents, rounded to whole minutes. 0 when nothing is resolved.
func avgResolutionMinutes(incidents []entity.Incident) int {
	var total time.Duration
	var n int
	for _, i := range incidents {
		if !i.Resolved() {
			continue
		}
		total += i.ResolvedAt.Sub(i.CreatedAt)
		n++
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(total.Milliseconds()) / float64(n) / 1000 / 60))
}

func bySource(incidents []entity.Incident) map[string]int {
	sources := map[string]int{}
	for _, i := range incidents {
		source := i.Source
		if source == "" {
			source = "unknown"
		}
		sources[source]++
	}
	return sources
}

// byHour buckets incidents by hour of day over the 24 hours ending at now.
// Buckets are keyed "00:00".."23:00" by hour-of-day, not absolute hour, so
// incidents from different days sharing an hour land in the same bucket.
func byHour(incidents []entity.Incident, now time.Time) map[string]int {
	hours := map[string]int{}
	for i := 23; i >= 0; i-- {
		h := now.Add(-time.Duration(i) * time.Hour)
		hours[hourKey(h)] = 0
	}

	for _, incident := range incidents {
		key := hourKey(incident.CreatedAt)
		if _, ok := hours[key]; ok {
			hours[key]++
		}
	}
	return hours
}

func hourKey(t time.Time) string {
	return fmt.Sprintf("%02d:00", t.Hour())
}

// systemHealth derives one rating from the open incidents, checked in
// strict priority order.
func systemHealth(incidents []entity.Incident) entity.SystemHealth {
	var critical, high int
	for _, i := range incidents {
		if i.Status != entity.StatusOpen {
			continue
		}
		switch i.Severity {
		case entity.SeverityCritical:
			critical++
		case entity.SeverityHigh:
			high++
		}
	}

	switch {
	case critical > 0:
		return entity.HealthCritical
	case high > 2:
		return entity.HealthDegraded
	case high > 0:
		return entity.HealthWarning
	}
	return entity.HealthHealthy
}
