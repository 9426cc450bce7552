// Package classifier assigns a severity level to inbound cloud-resource
// events using a prioritized rule list.
package classifier

import (
	"strings"

	"github.com/Andikeys/cloudops-autopilot/domain/entity"
)

// Classify maps an event to a severity. Rules are evaluated in order and the
// first match wins: a terminated instance is CRITICAL even though the
// stopped-instance rule would also fire on a later state probe. The function
// is total; anything unmatched is LOW.
func Classify(source, eventType string, detail entity.Detail) entity.Severity {
	switch {
	case isCritical(source, eventType, detail):
		return entity.SeverityCritical
	case isHigh(source, eventType, detail):
		return entity.SeverityHigh
	case isMedium(source, detail):
		return entity.SeverityMedium
	}
	return entity.SeverityLow
}

func isCritical(source, eventType string, detail entity.Detail) bool {
	if source == entity.SourceEC2 && detail.State == "terminated" {
		return true
	}
	if source == entity.SourceRDS && strings.Contains(eventType, "failure") {
		return true
	}
	return false
}

func isHigh(source, eventType string, detail entity.Detail) bool {
	if source == entity.SourceLambda && detail.ErrorType != "" {
		return true
	}
	if source == entity.SourceEC2 && detail.State == "stopped" {
		return true
	}
	if source == entity.SourceCloudWatch && detail.AlarmState == "ALARM" {
		return true
	}
	if source == entity.SourceS3 && strings.Contains(eventType, "error") {
		return true
	}
	return false
}

func isMedium(source string, detail entity.Detail) bool {
	if source == entity.SourceEC2 && detail.State == "stopping" {
		return true
	}
	return source == entity.SourceAutoScaling
}
