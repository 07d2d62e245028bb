package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRequestEvent_HasForms(t *testing.T) {
	tests := []struct {
		name     string
		event    RunRequestEvent
		expected bool
	}{
		{
			name:     "explicit forms",
			event:    RunRequestEvent{RunID: uuid.New(), Forms: []string{"residential"}},
			expected: true,
		},
		{
			name:     "nil forms",
			event:    RunRequestEvent{RunID: uuid.New()},
			expected: false,
		},
		{
			name:     "empty forms",
			event:    RunRequestEvent{RunID: uuid.New(), Forms: []string{}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.HasForms())
		})
	}
}

func TestRunRequestEvent_DecodesWireFormat(t *testing.T) {
	raw := `{"run_id":"7f1c1f3e-4b0b-4c47-9a57-1f0d6a3c2b11","forms":["office"],"requested_at":"2026-03-01T10:00:00Z"}`

	var event RunRequestEvent
	require.NoError(t, json.Unmarshal([]byte(raw), &event))
	assert.Equal(t, "7f1c1f3e-4b0b-4c47-9a57-1f0d6a3c2b11", event.RunID.String())
	assert.Equal(t, []string{"office"}, event.Forms)
	assert.Equal(t, 2026, event.RequestedAt.Year())
}

func TestSite_CloneAndColumn(t *testing.T) {
	s := Site{
		ID:         "a",
		Rents:      map[string]float64{"residential": 30},
		LandCost:   100,
		ParcelSize: 1000,
		MaxFar:     Float(2),
		Attributes: map[string]float64{"zone_id": 7},
	}

	c := s.Clone()
	c.Rents["residential"] = 1
	*c.MaxFar = 9
	c.Attributes["zone_id"] = 0

	assert.Equal(t, 30.0, s.Rents["residential"])
	assert.Equal(t, 2.0, *s.MaxFar)
	assert.Equal(t, 7.0, s.Attributes["zone_id"])

	v, ok := s.Column(ColumnMaxFar)
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)

	_, ok = s.Column(ColumnMaxDua)
	assert.False(t, ok)

	v, ok = s.Column("residential")
	assert.True(t, ok)
	assert.Equal(t, 30.0, v)

	v, ok = s.Column("zone_id")
	assert.True(t, ok)
	assert.Equal(t, 7.0, v)

	_, ok = s.Column("unknown")
	assert.False(t, ok)
}
