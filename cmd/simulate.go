package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

// Synthetic events mirroring what the cloud event bus delivers, one slice
// per scenario name.
var incidentTemplates = map[string][]map[string]any{
	"ec2": {
		{
			"source":     "aws.ec2",
			"event_type": "EC2 Instance State-change Notification",
			"detail": map[string]any{
				"instanceId":    "i-1234567890abcdef0",
				"state":         "terminated",
				"previousState": "running",
				"reason":        "User initiated",
			},
		},
		{
			"source":     "aws.ec2",
			"event_type": "EC2 Instance State-change Notification",
			"detail": map[string]any{
				"instanceId":    "i-0987654321fedcba0",
				"state":         "stopped",
				"previousState": "running",
				"reason":        "Instance failure",
			},
		},
	},
	"rds": {
		{
			"source":     "aws.rds",
			"event_type": "RDS DB Instance failure Event",
			"detail": map[string]any{
				"sourceId":   "mydb-instance",
				"message":    "Database connection limit exceeded",
				"sourceType": "db-instance",
			},
		},
	},
	"lambda": {
		{
			"source":     "aws.lambda",
			"event_type": "Lambda Function Invocation Result",
			"detail": map[string]any{
				"functionName": "my-critical-function",
				"errorType":    "TimeoutError",
				"errorMessage": "Task timed out after 30.00 seconds",
				"requestId":    "abc123-def456-ghi789",
			},
		},
		{
			"source":     "aws.lambda",
			"event_type": "Lambda Function Invocation Result",
			"detail": map[string]any{
				"functionName": "data-processor",
				"errorType":    "MemoryError",
				"errorMessage": "Process out of memory",
				"requestId":    "xyz789-uvw456-rst123",
			},
		},
	},
	"s3": {
		{
			"source":     "aws.s3",
			"event_type": "S3 Bucket error Notification",
			"detail": map[string]any{
				"bucketName": "my-app-assets",
				"errorCode":  "AccessDenied",
				"message":    "Access denied on bucket policy",
			},
		},
	},
	"cloudwatch": {
		{
			"source":     "aws.cloudwatch",
			"event_type": "CloudWatch Alarm State Change",
			"detail": map[string]any{
				"alarmName": "high-cpu-utilization",
				"state": map[string]any{
					"value":  "ALARM",
					"reason": "Threshold crossed: cpu > 90%",
				},
			},
		},
	},
	"autoscaling": {
		{
			"source":     "aws.autoscaling",
			"event_type": "EC2 Auto Scaling Instance Launch",
			"detail": map[string]any{
				"autoScalingGroupName": "web-tier-asg",
				"cause":                "Scaling out in response to load",
			},
		},
	},
}

var (
	simulateEndpoint string
	simulateScenario string
	simulateCount    int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "post synthetic incident events to a running server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return simulate()
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simulateEndpoint, "endpoint", "http://localhost:8080", "base URL of the ingestion API")
	simulateCmd.Flags().StringVar(&simulateScenario, "scenario", "random", "scenario to send (ec2|rds|lambda|s3|cloudwatch|autoscaling|random)")
	simulateCmd.Flags().IntVar(&simulateCount, "count", 1, "number of events to send")
	rootCmd.AddCommand(simulateCmd)
}

func simulate() error {
	client := &http.Client{Timeout: 10 * time.Second}

	for i := 0; i < simulateCount; i++ {
		event, err := pickEvent(simulateScenario)
		if err != nil {
			return err
		}
		if err := postEvent(client, event); err != nil {
			return err
		}
	}
	return nil
}

func pickEvent(scenario string) (map[string]any, error) {
	if scenario == "random" {
		keys := make([]string, 0, len(incidentTemplates))
		for k := range incidentTemplates {
			keys = append(keys, k)
		}
		scenario = keys[rand.Intn(len(keys))]
	}
	templates, ok := incidentTemplates[scenario]
	if !ok {
		return nil, fmt.Errorf("unknown scenario: %s", scenario)
	}
	return templates[rand.Intn(len(templates))], nil
}

func postEvent(client *http.Client, event map[string]any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	resp, err := client.Post(simulateEndpoint+"/api/events", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to post event: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	fmt.Printf("%s %s -> %d %s\n", event["source"], event["event_type"], resp.StatusCode, respBody)
	return nil
}
