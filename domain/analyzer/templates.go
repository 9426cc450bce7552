package analyzer

import "github.com/Andikeys/cloudops-autopilot/domain/entity"

type template struct {
	Summary         string
	Causes          []string
	Recommendations []string
}

// analysisTemplates is the knowledge table, keyed by source and then by the
// event category derived in eventKey. It is built once and never mutated.
var analysisTemplates = map[string]map[string]template{
	entity.SourceEC2: {
		"terminated": {
			Summary: "EC2 instance unexpectedly terminated",
			Causes:  []string{"Instance failure", "Auto Scaling action", "Manual termination", "Spot instance interruption"},
			Recommendations: []string{
				"Check CloudWatch logs for error messages",
				"Verify Auto Scaling group configuration",
				"Review instance health checks",
				"Consider using Reserved Instances for critical workloads",
			},
		},
		"stopped": {
			Summary: "EC2 instance stopped",
			Causes:  []string{"Manual stop", "System maintenance", "Instance failure", "Resource constraints"},
			Recommendations: []string{
				"Check instance status and system logs",
				"Verify if stop was intentional",
				"Monitor for automatic restart",
				"Review instance sizing and resource usage",
			},
		},
	},
	entity.SourceRDS: {
		"failure": {
			Summary: "RDS database failure detected",
			Causes:  []string{"Connection limit exceeded", "Storage full", "Parameter group issues", "Network connectivity"},
			Recommendations: []string{
				"Check database connection count",
				"Monitor storage utilization",
				"Review parameter group settings",
				"Verify security group rules",
			},
		},
	},
	entity.SourceLambda: {
		"error": {
			Summary: "Lambda function execution error",
			Causes:  []string{"Code errors", "Timeout", "Memory limit", "Permission issues"},
			Recommendations: []string{
				"Review function logs in CloudWatch",
				"Check function timeout settings",
				"Monitor memory usage",
				"Verify IAM permissions",
			},
		},
	},
	entity.SourceS3: {
		"error": {
			Summary: "S3 service error detected",
			Causes:  []string{"Permission denied", "Bucket policy issues", "Network connectivity", "Service limits"},
			Recommendations: []string{
				"Check bucket policies and ACLs",
				"Verify IAM permissions",
				"Monitor request rates",
				"Review CloudTrail logs",
			},
		},
	},
}
