package classifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Andikeys/cloudops-autopilot/domain/classifier"
	"github.com/Andikeys/cloudops-autopilot/domain/entity"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		eventType string
		detail    entity.Detail
		want      entity.Severity
	}{
		{
			name:      "ec2 terminated is critical",
			source:    entity.SourceEC2,
			eventType: "EC2 Instance State-change Notification",
			detail:    entity.Detail{State: "terminated"},
			want:      entity.SeverityCritical,
		},
		{
			name:      "rds failure is critical",
			source:    entity.SourceRDS,
			eventType: "RDS DB Instance failure Event",
			detail:    entity.Detail{},
			want:      entity.SeverityCritical,
		},
		{
			name:      "lambda error type is high",
			source:    entity.SourceLambda,
			eventType: "Lambda Function Invocation Result",
			detail:    entity.Detail{ErrorType: "TimeoutError"},
			want:      entity.SeverityHigh,
		},
		{
			name:      "ec2 stopped is high",
			source:    entity.SourceEC2,
			eventType: "EC2 Instance State-change Notification",
			detail:    entity.Detail{State: "stopped"},
			want:      entity.SeverityHigh,
		},
		{
			name:      "cloudwatch alarm is high",
			source:    entity.SourceCloudWatch,
			eventType: "CloudWatch Alarm State Change",
			detail:    entity.Detail{AlarmState: "ALARM"},
			want:      entity.SeverityHigh,
		},
		{
			name:      "s3 error event type is high",
			source:    entity.SourceS3,
			eventType: "S3 Bucket error Notification",
			detail:    entity.Detail{},
			want:      entity.SeverityHigh,
		},
		{
			name:      "ec2 stopping is medium",
			source:    entity.SourceEC2,
			eventType: "EC2 Instance State-change Notification",
			detail:    entity.Detail{State: "stopping"},
			want:      entity.SeverityMedium,
		},
		{
			name:      "any autoscaling event is medium",
			source:    entity.SourceAutoScaling,
			eventType: "scale-out",
			detail:    entity.Detail{},
			want:      entity.SeverityMedium,
		},
		{
			name:      "unknown source is low",
			source:    "unknown-service",
			eventType: "ping",
			detail:    entity.Detail{},
			want:      entity.SeverityLow,
		},
		{
			name:      "ec2 running is low",
			source:    entity.SourceEC2,
			eventType: "EC2 Instance State-change Notification",
			detail:    entity.Detail{State: "running"},
			want:      entity.SeverityLow,
		},
		{
			name:      "cloudwatch ok state is low",
			source:    entity.SourceCloudWatch,
			eventType: "CloudWatch Alarm State Change",
			detail:    entity.Detail{AlarmState: "OK"},
			want:      entity.SeverityLow,
		},
		{
			name:      "empty everything is low",
			source:    "",
			eventType: "",
			detail:    entity.Detail{},
			want:      entity.SeverityLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.source, tt.eventType, tt.detail)
			assert.Equal(t, tt.want, got)
		})
	}
}

// A terminated instance must classify by the termination rule even though
// later rules also inspect the state field.
func TestClassifyPrecedence(t *testing.T) {
	got := classifier.Classify(entity.SourceEC2, "failure and error", entity.Detail{State: "terminated"})
	assert.Equal(t, entity.SeverityCritical, got)
}

func TestClassifyDeterministic(t *testing.T) {
	detail := entity.Detail{ErrorType: "MemoryError"}
	first := classifier.Classify(entity.SourceLambda, "invocation", detail)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, classifier.Classify(entity.SourceLambda, "invocation", detail))
	}
}
