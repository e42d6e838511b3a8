package medicine

import (
	c "medremind/internal/core/domain/common"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmedOn(t *testing.T) {
	kolkata := time.FixedZone("UTC+5:30", 5*3600+1800)

	cases := []struct {
		id            string
		lastConfirmed c.Optional[time.Time]
		at            time.Time
		expected      bool
	}{
		{
			id: "never confirmed",
			at: time.Date(2023, 2, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			id:            "confirmed earlier the same day",
			lastConfirmed: c.NewOptional(time.Date(2023, 2, 1, 8, 0, 30, 0, time.UTC), true),
			at:            time.Date(2023, 2, 1, 8, 1, 0, 0, time.UTC),
			expected:      true,
		},
		{
			id:            "confirmed later the same day",
			lastConfirmed: c.NewOptional(time.Date(2023, 2, 1, 23, 59, 0, 0, time.UTC), true),
			at:            time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
			expected:      true,
		},
		{
			id:            "confirmed the day before",
			lastConfirmed: c.NewOptional(time.Date(2023, 1, 31, 8, 0, 0, 0, time.UTC), true),
			at:            time.Date(2023, 2, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			id:            "confirmed the day after",
			lastConfirmed: c.NewOptional(time.Date(2023, 2, 2, 0, 0, 0, 0, time.UTC), true),
			at:            time.Date(2023, 2, 1, 23, 59, 0, 0, time.UTC),
		},
		{
			// 2023-02-01 20:00 UTC is the same instant as 2023-02-02 01:30
			// in the reference zone; the day is taken in the reference zone.
			id:            "same instant stored in a different location",
			lastConfirmed: c.NewOptional(time.Date(2023, 2, 1, 20, 0, 0, 0, time.UTC), true),
			at:            time.Date(2023, 2, 2, 1, 30, 0, 0, kolkata),
			expected:      true,
		},
		{
			// Both fall on Feb 1 in UTC, but on different days in the
			// reference zone.
			id:            "previous local day despite equal UTC day",
			lastConfirmed: c.NewOptional(time.Date(2023, 2, 1, 10, 0, 0, 0, time.UTC), true),
			at:            time.Date(2023, 2, 2, 1, 30, 0, 0, kolkata),
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			m := Medicine{LastConfirmed: testcase.lastConfirmed}
			assert.Equal(t, testcase.expected, m.ConfirmedOn(testcase.at))
		})
	}
}

func TestIsDueAt(t *testing.T) {
	timeOfDay, err := ParseClockTime("08:00")
	require.NoError(t, err)

	m := Medicine{Name: "Aspirin", Dosage: "100mg", TimeOfDay: timeOfDay}

	at := time.Date(2023, 2, 1, 8, 0, 0, 0, time.UTC)
	assert.True(t, m.IsDueAt(at))
	assert.False(t, m.IsDueAt(at.Add(time.Minute)))

	m.LastConfirmed = c.NewOptional(at.Add(30*time.Second), true)
	assert.False(t, m.IsDueAt(at.Add(time.Minute)))

	// Due again the next day without a new confirmation.
	assert.True(t, m.IsDueAt(at.AddDate(0, 0, 1)))
}

func TestMedicineValidate(t *testing.T) {
	timeOfDay, err := ParseClockTime("08:00")
	require.NoError(t, err)

	m := Medicine{Name: "Aspirin", Dosage: "100mg", TimeOfDay: timeOfDay}
	assert.NoError(t, m.Validate())

	noName := m
	noName.Name = ""
	assert.Error(t, noName.Validate())

	noDosage := m
	noDosage.Dosage = ""
	assert.Error(t, noDosage.Validate())
}
