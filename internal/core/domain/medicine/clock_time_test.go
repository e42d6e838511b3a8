package medicine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	cases := []struct {
		value    string
		expected string
		isValid  bool
	}{
		{value: "00:00", expected: "00:00", isValid: true},
		{value: "08:00", expected: "08:00", isValid: true},
		{value: "12:30", expected: "12:30", isValid: true},
		{value: "23:59", expected: "23:59", isValid: true},
		{value: "24:00", isValid: false},
		{value: "8:00", isValid: false},
		{value: "08:0", isValid: false},
		{value: "08:00 AM", isValid: false},
		{value: "8:00 PM", isValid: false},
		{value: "0800", isValid: false},
		{value: "", isValid: false},
	}

	for _, testcase := range cases {
		t.Run(testcase.value, func(t *testing.T) {
			ct, err := ParseClockTime(testcase.value)
			if !testcase.isValid {
				assert.ErrorIs(t, err, ErrParseClockTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testcase.expected, ct.String())
		})
	}
}

func TestClockTimeOfMatchesParsedValue(t *testing.T) {
	ct, err := ParseClockTime("08:00")
	require.NoError(t, err)

	at := time.Date(2023, 2, 1, 8, 0, 59, 0, time.UTC)
	assert.Equal(t, ct, ClockTimeOf(at))
	assert.NotEqual(t, ct, ClockTimeOf(at.Add(time.Minute)))
}

func TestNewClockTime(t *testing.T) {
	ct, err := NewClockTime(9, 5)
	require.NoError(t, err)
	assert.Equal(t, "09:05", ct.String())

	_, err = NewClockTime(24, 0)
	assert.ErrorIs(t, err, ErrParseClockTime)
	_, err = NewClockTime(0, 60)
	assert.ErrorIs(t, err, ErrParseClockTime)
}
