package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_SortsByDateAndMapsFields(t *testing.T) {
	schema := &ImportSchema{
		Logs: []LogImport{
			{
				Date:     "2026-03-02",
				WeightKg: 80.6,
				ActualSessions: []SessionImport{
					{Type: "running", DurationMin: 45, PerceivedIntensity: intPtr(7), Notes: "intervals"},
				},
			},
			{Date: "2026-03-01", WeightKg: 81.2, IntakeKcal: floatPtr(2250), Steps: intPtr(9000)},
		},
	}

	logs, err := Convert(schema)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	first := logs[0]
	assert.Equal(t, "2026-03-01", first.Date.Format("2006-01-02"))
	assert.Equal(t, 81.2, first.WeightKg)
	require.NotNil(t, first.IntakeKcal)
	assert.Equal(t, 2250.0, *first.IntakeKcal)
	require.NotNil(t, first.Steps)
	assert.Equal(t, 9000, *first.Steps)
	assert.NotEmpty(t, first.ID)

	second := logs[1]
	require.Len(t, second.ActualSessions, 1)
	sess := second.ActualSessions[0]
	assert.Equal(t, "running", sess.Type)
	assert.Equal(t, 45, sess.DurationMin)
	require.NotNil(t, sess.PerceivedIntensity)
	assert.Equal(t, 7, *sess.PerceivedIntensity)
	assert.Equal(t, "intervals", sess.Notes)
}

func TestConvert_EmptySessionsStayNil(t *testing.T) {
	logs, err := Convert(&ImportSchema{Logs: []LogImport{{Date: "2026-03-01", WeightKg: 80}}})
	require.NoError(t, err)
	assert.Nil(t, logs[0].PlannedSessions)
	assert.Nil(t, logs[0].ActualSessions)
}
