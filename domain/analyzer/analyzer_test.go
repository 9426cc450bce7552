package analyzer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Andikeys/cloudops-autopilot/domain/analyzer"
	"github.com/Andikeys/cloudops-autopilot/domain/entity"
)

func TestAnalyzeEC2Terminated(t *testing.T) {
	a := analyzer.NewRuleBasedAnalyzer()
	detail := entity.Detail{
		State: "terminated",
		Fields: map[string]any{
			"instanceId":    "i-123",
			"state":         "terminated",
			"previousState": "running",
		},
	}

	analysis, err := a.Analyze(context.Background(), entity.SourceEC2, "EC2 Instance State-change Notification", detail)
	require.NoError(t, err)

	assert.Equal(t, "EC2 instance unexpectedly terminated", analysis.Summary)
	assert.Contains(t, analysis.RootCauses, "Spot instance interruption")
	assert.Contains(t, analysis.Recommendations, "Check CloudWatch logs for error messages")
	assert.Equal(t, "Critical: Instance termination can cause service outages and data loss", analysis.SeverityReasoning)
	assert.Contains(t, analysis.ImpactAssessment, "Possible data loss")
	assert.Contains(t, analysis.NextSteps, "Check Auto Scaling group status")
	// known source and a payload with more than two fields
	assert.InDelta(t, 1.0, analysis.ConfidenceScore, 1e-9)
}

func TestAnalyzeRDSFailure(t *testing.T) {
	a := analyzer.NewRuleBasedAnalyzer()
	analysis, err := a.Analyze(context.Background(), entity.SourceRDS, "RDS DB Instance failure Event", entity.Detail{})
	require.NoError(t, err)

	assert.Equal(t, "RDS database failure detected", analysis.Summary)
	assert.Equal(t, "Critical: Database failures directly impact application availability", analysis.SeverityReasoning)
	assert.Contains(t, analysis.ImpactAssessment, "Potential transaction failures")
	assert.Contains(t, analysis.NextSteps, "Test database connectivity")
	assert.InDelta(t, 0.9, analysis.ConfidenceScore, 1e-9)
}

func TestAnalyzeLambdaErrorType(t *testing.T) {
	a := analyzer.NewRuleBasedAnalyzer()
	detail := entity.Detail{ErrorType: "TimeoutError"}
	analysis, err := a.Analyze(context.Background(), entity.SourceLambda, "Lambda Function Invocation Result", detail)
	require.NoError(t, err)

	assert.Equal(t, "Lambda function execution error", analysis.Summary)
	assert.Equal(t, "High: Function errors can disrupt serverless application workflows", analysis.SeverityReasoning)
	assert.Contains(t, analysis.ImpactAssessment, "API endpoint disruptions")
}

// An s3 event type containing "error" resolves to the failure category,
// which the s3 table does not carry, so the generic template applies.
func TestAnalyzeS3ErrorFallsBackToGeneric(t *testing.T) {
	a := analyzer.NewRuleBasedAnalyzer()
	analysis, err := a.Analyze(context.Background(), entity.SourceS3, "S3 Bucket error Notification", entity.Detail{})
	require.NoError(t, err)

	assert.Equal(t, "aws.s3 service event detected: S3 Bucket error Notification", analysis.Summary)
	assert.Contains(t, analysis.RootCauses, "Configuration problem")
	assert.Equal(t, []string{"Impact assessment pending"}, analysis.ImpactAssessment)
}

func TestAnalyzeUnknownSource(t *testing.T) {
	a := analyzer.NewRuleBasedAnalyzer()
	analysis, err := a.Analyze(context.Background(), "unknown-service", "ping", entity.Detail{})
	require.NoError(t, err)

	assert.Equal(t, "unknown-service service event detected: ping", analysis.Summary)
	assert.Equal(t, "Medium: Event requires monitoring but may not immediately impact services", analysis.SeverityReasoning)
	assert.Equal(t, []string{"Impact assessment pending"}, analysis.ImpactAssessment)
	assert.Len(t, analysis.NextSteps, 3)
	assert.InDelta(t, 0.7, analysis.ConfidenceScore, 1e-9)
}

func TestAnalyzeNeverEmptyNarrative(t *testing.T) {
	a := analyzer.NewRuleBasedAnalyzer()
	cases := []struct {
		source    string
		eventType string
		detail    entity.Detail
	}{
		{"", "", entity.Detail{}},
		{entity.SourceEC2, "", entity.Detail{}},
		{entity.SourceCloudWatch, "CloudWatch Alarm State Change", entity.Detail{AlarmState: "ALARM"}},
		{"some.other", "weird failure", entity.Detail{Fields: map[string]any{"a": 1, "b": 2, "c": 3}}},
	}

	for _, tc := range cases {
		analysis, err := a.Analyze(context.Background(), tc.source, tc.eventType, tc.detail)
		require.NoError(t, err)
		assert.NotEmpty(t, analysis.Summary)
		assert.NotEmpty(t, analysis.SeverityReasoning)
		assert.NotEmpty(t, analysis.RootCauses)
		assert.NotEmpty(t, analysis.Recommendations)
		assert.GreaterOrEqual(t, analysis.ConfidenceScore, 0.0)
		assert.LessOrEqual(t, analysis.ConfidenceScore, 1.0)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := analyzer.NewRuleBasedAnalyzer()
	detail := entity.Detail{State: "stopped"}

	first, err := a.Analyze(context.Background(), entity.SourceEC2, "state-change", detail)
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), entity.SourceEC2, "state-change", detail)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
