package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foncier/internal/contract/models"
)

func TestWireEventUsesCanonicalTimestampLayout(t *testing.T) {
	ts := time.Date(2026, 3, 10, 9, 0, 0, 500000000, time.FixedZone("CET", 3600))
	value, err := marshalWireEvent(Event{
		Name:      "ContractCreated",
		TxRef:     "tx-abc",
		Timestamp: ts,
		Payload:   []byte(`{"recordId":"c-01"}`),
	})
	require.NoError(t, err)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(value, &envelope))
	assert.Equal(t, ts.UTC().Format(models.TimeLayout), envelope["timestamp"])
	assert.Equal(t, "2026-03-10T08:00:00", envelope["timestamp"], "UTC, second precision, no zone suffix")
}

func TestWireEventOmitsEmptyFields(t *testing.T) {
	value, err := marshalWireEvent(Event{
		Name:      "ContractCreated",
		Timestamp: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(value, &envelope))
	assert.NotContains(t, envelope, "txRef")
	assert.NotContains(t, envelope, "payload")
}
