package worktime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		input string
		want  string
		err   bool
	}{
		{"09:00", "09:00:00", false},
		{"9:05", "09:05:00", false},
		{"18:30:15", "18:30:15", false},
		{"23:59:59", "23:59:59", false},
		{"24:00", "", true},
		{"12:60", "", true},
		{"noon", "", true},
		{"12", "", true},
		{"+9:00", "", true},
		{"09:+5", "", true},
		{"-1:00", "", true},
		{"09:00:+1", "", true},
		{"", "", true},
	}

	for _, c := range cases {
		got, err := ParseClock(c.input)
		if c.err {
			assert.Error(t, err, c.input)
			continue
		}
		require.NoError(t, err, c.input)
		assert.Equal(t, c.want, got.String())
	}
}

func TestClock_Comparison(t *testing.T) {
	// Numeric comparison must not depend on string padding
	assert.True(t, MustClock("9:05").After(MustClock("09:00:00")))
	assert.True(t, MustClock("08:59:59").Before(MustClock("9:00")))
	assert.Equal(t, 660, MustClock("08:00").MinutesUntil(MustClock("19:00")))
	assert.Equal(t, 0, MustClock("09:05").MinutesUntil(MustClock("09:05:30")))
}

func TestClockOf(t *testing.T) {
	ts := time.Date(2024, 3, 4, 7, 45, 12, 0, time.UTC)
	assert.Equal(t, "07:45:12", ClockOf(ts).String())
}

func TestEarliestLatest(t *testing.T) {
	a := MustClock("08:00")
	b := MustClock("09:30")

	assert.Nil(t, Earliest())
	assert.Nil(t, Latest(nil, nil))
	assert.Equal(t, a, *Earliest(nil, &b, &a))
	assert.Equal(t, b, *Latest(&a, nil, &b))
}

func TestClock_JSON(t *testing.T) {
	c := MustClock("08:15")
	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `"08:15:00"`, string(data))

	var out Clock
	require.NoError(t, json.Unmarshal([]byte(`"17:45"`), &out))
	assert.Equal(t, "17:45:00", out.String())

	assert.Error(t, json.Unmarshal([]byte(`1745`), &out))
}

func TestPGTimeRoundTrip(t *testing.T) {
	c := MustClock("13:07:09")
	back := ClockPtr(PGTime(&c))
	require.NotNil(t, back)
	assert.Equal(t, c, *back)

	assert.Nil(t, ClockPtr(PGTime(nil)))
}

func TestPolicy_Validate(t *testing.T) {
	assert.NoError(t, DefaultPolicy().Validate())

	p := DefaultPolicy()
	p.NormalStart = MustClock("19:00")
	p.WorkableMinutesPerDay = 0
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "normal_start")
	assert.Contains(t, err.Error(), "workable_minutes_per_day")
}
