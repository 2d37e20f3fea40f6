package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomTimeUnmarshalDateOnly(t *testing.T) {
	var ct CustomTime
	require.NoError(t, json.Unmarshal([]byte(`"2024-09-01"`), &ct))
	assert.Equal(t, time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), ct.Time)
}

func TestCustomTimeUnmarshalNull(t *testing.T) {
	var ct CustomTime
	require.NoError(t, json.Unmarshal([]byte(`null`), &ct))
	assert.True(t, ct.Time.IsZero())
}

func TestCustomTimeUnmarshalRejectsTimestamp(t *testing.T) {
	var ct CustomTime
	assert.Error(t, json.Unmarshal([]byte(`"2024-09-01T10:00:00Z"`), &ct))
}

func TestCustomTimeMarshal(t *testing.T) {
	ct := CustomTime{Time: time.Date(2024, 9, 1, 15, 30, 0, 0, time.UTC)}
	out, err := json.Marshal(ct)
	require.NoError(t, err)
	assert.Equal(t, `"2024-09-01"`, string(out))
}

func TestCustomTimeScan(t *testing.T) {
	var ct CustomTime
	when := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, ct.Scan(when))
	assert.Equal(t, when, ct.Time)

	require.NoError(t, ct.Scan(nil))
	assert.True(t, ct.Time.IsZero())

	assert.Error(t, ct.Scan("2025-01-10"))
}
