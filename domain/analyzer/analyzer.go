// Package analyzer produces the diagnostic narrative attached to an
// incident. The rule-based implementation is a deterministic template
// lookup; the interface exists so a model-backed analyzer could be swapped
// in without touching the detector.
package analyzer

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/Andikeys/cloudops-autopilot/domain/entity"
)

type Analyzer interface {
	Analyze(ctx context.Context, source, eventType string, detail entity.Detail) (*entity.Analysis, error)
}

type RuleBasedAnalyzer struct{}

func NewRuleBasedAnalyzer() *RuleBasedAnalyzer {
	return &RuleBasedAnalyzer{}
}

// Analyze never fails: missing or malformed detail fields fall through to
// the generic templates and default texts.
func (a *RuleBasedAnalyzer) Analyze(_ context.Context, source, eventType string, detail entity.Detail) (*entity.Analysis, error) {
	tpl, ok := analysisTemplates[source][eventKey(eventType, detail)]
	if !ok {
		tpl = genericTemplate(source, eventType)
	}

	causes := tpl.Causes
	if len(causes) == 0 {
		causes = []string{"Unknown cause - requires investigation"}
	}
	recommendations := tpl.Recommendations
	if len(recommendations) == 0 {
		recommendations = []string{"Monitor the situation", "Check service logs"}
	}

	return &entity.Analysis{
		Summary:           tpl.Summary,
		SeverityReasoning: severityReasoning(source, eventType, detail),
		RootCauses:        causes,
		Recommendations:   recommendations,
		ImpactAssessment:  assessImpact(source, detail),
		NextSteps:         nextSteps(source),
		ConfidenceScore:   confidenceScore(source, detail),
	}, nil
}

// eventKey derives the template category from the event type and detail
// payload. Checks run in a fixed order so an event type mentioning both
// "terminated" and "failure" resolves to the former.
func eventKey(eventType string, detail entity.Detail) string {
	et := strings.ToLower(eventType)
	switch {
	case strings.Contains(et, "terminated") || detail.State == "terminated":
		return "terminated"
	case strings.Contains(et, "stopped") || detail.State == "stopped":
		return "stopped"
	case strings.Contains(et, "failure") || strings.Contains(et, "error"):
		return "failure"
	case detail.ErrorType != "":
		return "error"
	}
	return "default"
}

func genericTemplate(source, eventType string) template {
	return template{
		Summary: fmt.Sprintf("%s service event detected: %s", source, eventType),
		Causes:  []string{"Service-specific issue", "Configuration problem", "Resource constraints"},
		Recommendations: []string{
			"Check service-specific logs",
			"Review recent configuration changes",
			"Monitor resource utilization",
			"Consult AWS service documentation",
		},
	}
}

func severityReasoning(source, eventType string, detail entity.Detail) string {
	if source == entity.SourceEC2 && detail.State == "terminated" {
		return "Critical: Instance termination can cause service outages and data loss"
	}
	if source == entity.SourceRDS && strings.Contains(eventType, "failure") {
		return "Critical: Database failures directly impact application availability"
	}
	if source == entity.SourceLambda && detail.ErrorType != "" {
		return "High: Function errors can disrupt serverless application workflows"
	}
	return "Medium: Event requires monitoring but may not immediately impact services"
}

func assessImpact(source string, detail entity.Detail) []string {
	var impacts []string

	switch source {
	case entity.SourceEC2:
		impacts = append(impacts, "Potential service downtime", "Application unavailability")
		if detail.State == "terminated" {
			impacts = append(impacts, "Possible data loss")
		}
	case entity.SourceRDS:
		impacts = append(impacts,
			"Database connectivity issues",
			"Application data access problems",
			"Potential transaction failures",
		)
	case entity.SourceLambda:
		impacts = append(impacts,
			"Serverless function failures",
			"API endpoint disruptions",
			"Workflow interruptions",
		)
	}

	if len(impacts) == 0 {
		return []string{"Impact assessment pending"}
	}
	return impacts
}

func nextSteps(source string) []string {
	steps := []string{
		"Monitor incident status",
		"Check related AWS service health",
		"Review CloudWatch metrics and alarms",
	}

	switch source {
	case entity.SourceEC2:
		steps = append(steps, "Verify instance replacement if needed", "Check Auto Scaling group status")
	case entity.SourceRDS:
		steps = append(steps, "Test database connectivity", "Review database performance metrics")
	}

	return steps
}

// confidenceScore starts from a 0.7 base, rewards sources the knowledge
// table covers and payloads with enough context, capped at 1.0.
func confidenceScore(source string, detail entity.Detail) float64 {
	score := 0.7
	if _, ok := analysisTemplates[source]; ok {
		score += 0.2
	}
	if detail.FieldCount() > 2 {
		score += 0.1
	}
	return math.Min(score, 1.0)
}
