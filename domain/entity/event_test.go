package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Andikeys/cloudops-autopilot/domain/entity"
)

func TestDetailUnmarshalStateString(t *testing.T) {
	var d entity.Detail
	err := json.Unmarshal([]byte(`{"instanceId":"i-123","state":"terminated","previousState":"running"}`), &d)
	require.NoError(t, err)

	assert.Equal(t, "terminated", d.State)
	assert.Empty(t, d.AlarmState)
	assert.Equal(t, 3, d.FieldCount())
	assert.Equal(t, "i-123", d.Fields["instanceId"])
}

func TestDetailUnmarshalStateObject(t *testing.T) {
	var d entity.Detail
	err := json.Unmarshal([]byte(`{"alarmName":"cpu","state":{"value":"ALARM","reason":"threshold"}}`), &d)
	require.NoError(t, err)

	assert.Empty(t, d.State)
	assert.Equal(t, "ALARM", d.AlarmState)
	assert.Equal(t, 2, d.FieldCount())
}

func TestDetailUnmarshalErrorFields(t *testing.T) {
	var d entity.Detail
	err := json.Unmarshal([]byte(`{"functionName":"fn","errorType":"TimeoutError","errorMessage":"timed out"}`), &d)
	require.NoError(t, err)

	assert.Equal(t, "TimeoutError", d.ErrorType)
	assert.Equal(t, "timed out", d.ErrorMessage)
}

func TestDetailMarshalRoundTrip(t *testing.T) {
	payload := []byte(`{"reason":"spot reclaim","state":"terminated"}`)
	var d entity.Detail
	require.NoError(t, json.Unmarshal(payload, &d))

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(out))
}

func TestDetailMarshalFromTypedFields(t *testing.T) {
	d := entity.Detail{State: "stopped"}
	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"stopped"}`, string(out))

	d = entity.Detail{AlarmState: "ALARM"}
	out, err = json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{"value":"ALARM"}}`, string(out))
}

func TestSeverityAtLeast(t *testing.T) {
	assert.True(t, entity.SeverityCritical.AtLeast(entity.SeverityHigh))
	assert.True(t, entity.SeverityHigh.AtLeast(entity.SeverityHigh))
	assert.False(t, entity.SeverityMedium.AtLeast(entity.SeverityHigh))
	assert.False(t, entity.SeverityLow.AtLeast(entity.SeverityMedium))
}
