package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	valid := []string{"00:00", "07:30", "19:59", "24:00"}
	for _, v := range valid {
		ts, err := NewTimeStringFromString(v)
		require.NoError(t, err, v)
		assert.Equal(t, v, ts.String())
	}

	invalid := []string{"", "7:30", "25:00", "12:60", "12-30", "24:30", "12:30:00"}
	for _, v := range invalid {
		_, err := NewTimeStringFromString(v)
		assert.ErrorIs(t, err, ErrInvalidTimeString, v)
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("19:30")

	end, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("20:00"), end)

	end, err = ts.AddMinutes(270)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), end)

	_, err = ts.AddMinutes(271)
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = TimeString("00:10").AddMinutes(-11)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.False(t, TimeString("09:30").IsBefore("09:30"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	assert.Equal(t, 600, TimeString("10:00").Minutes())
	assert.Equal(t, -1, TimeString("bad").Minutes())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("08:15:00")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 9, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("09:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("11:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "11:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
