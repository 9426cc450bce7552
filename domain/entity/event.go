package entity

import (
	"encoding/json"
	"time"
)

// Known event sources. Events from any other source are still accepted and
// classified, they just fall through to the generic rules.
const (
	SourceEC2         = "aws.ec2"
	SourceRDS         = "aws.rds"
	SourceLambda      = "aws.lambda"
	SourceCloudWatch  = "aws.cloudwatch"
	SourceS3          = "aws.s3"
	SourceAutoScaling = "aws.autoscaling"
)

// Event is a single notification about a state change in a monitored
// cloud resource, as delivered by the event bus.
type Event struct {
	Source     string    `json:"source" validate:"required"`
	EventType  string    `json:"event_type" validate:"required"`
	Detail     Detail    `json:"detail"`
	ReceivedAt time.Time `json:"received_at"`
}

// Detail carries the source-specific payload of an event. The fields every
// rule cares about are lifted into typed members; everything else stays in
// the Fields bag. The wire format is not a fixed schema: EC2 sends `state`
// as a string while CloudWatch sends it as an object with a `value` member,
// so decoding goes through UnmarshalJSON.
type Detail struct {
	State        string         `json:"-" dynamo:"state,omitempty"`
	AlarmState   string         `json:"-" dynamo:"alarm_state,omitempty"`
	ErrorType    string         `json:"-" dynamo:"error_type,omitempty"`
	ErrorMessage string         `json:"-" dynamo:"error_message,omitempty"`
	Fields       map[string]any `json:"-" dynamo:"fields,omitempty"`
}

func (d *Detail) UnmarshalJSON(data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*d = NewDetail(fields)
	return nil
}

// MarshalJSON reproduces the payload as it arrived. Details built in code
// without a Fields bag are assembled from the typed members.
func (d Detail) MarshalJSON() ([]byte, error) {
	if d.Fields != nil {
		return json.Marshal(d.Fields)
	}
	m := map[string]any{}
	if d.State != "" {
		m["state"] = d.State
	} else if d.AlarmState != "" {
		m["state"] = map[string]any{"value": d.AlarmState}
	}
	if d.ErrorType != "" {
		m["errorType"] = d.ErrorType
	}
	if d.ErrorMessage != "" {
		m["errorMessage"] = d.ErrorMessage
	}
	return json.Marshal(m)
}

// NewDetail lifts the well-known members out of a raw payload map. The map
// itself is retained verbatim as the escape hatch for unrecognized fields.
func NewDetail(fields map[string]any) Detail {
	d := Detail{Fields: fields}
	switch state := fields["state"].(type) {
	case string:
		d.State = state
	case map[string]any:
		if v, ok := state["value"].(string); ok {
			d.AlarmState = v
		}
	}
	if v, ok := fields["errorType"].(string); ok {
		d.ErrorType = v
	}
	if v, ok := fields["errorMessage"].(string); ok {
		d.ErrorMessage = v
	}
	return d
}

// FieldCount reports how many fields the original payload carried.
func (d Detail) FieldCount() int {
	if d.Fields != nil {
		return len(d.Fields)
	}
	n := 0
	if d.State != "" || d.AlarmState != "" {
		n++
	}
	if d.ErrorType != "" {
		n++
	}
	if d.ErrorMessage != "" {
		n++
	}
	return n
}
