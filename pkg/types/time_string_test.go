package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning slot", input: "08:00", want: "08:00"},
		{name: "valid afternoon slot", input: "16:00", want: "16:00"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "missing leading zero", input: "8:00", wantErr: true},
		{name: "with seconds", input: "08:00:00", wantErr: true},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "out of range minute", input: "08:61", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "morning", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	ts := TimeString("13:30")
	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 13*60+30, minutes)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Ordering(t *testing.T) {
	early := TimeString("08:00")
	late := TimeString("16:00")

	assert.True(t, early.IsBefore(late))
	assert.False(t, late.IsBefore(early))
	assert.True(t, late.IsAfter(early))
	assert.False(t, early.IsAfter(early))

	// Некорректные значения несравнимы
	assert.False(t, TimeString("bad").IsBefore(late))
	assert.False(t, early.IsAfter(TimeString("bad")))
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("08:00")

	next, err := ts.AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:00"), next)

	half, err := ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), half)

	// Переход через полночь запрещён
	_, err = TimeString("23:30").AddMinutes(60)
	assert.Error(t, err)

	_, err = TimeString("00:10").AddMinutes(-30)
	assert.Error(t, err)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// PostgreSQL TIME приходит с секундами
	require.NoError(t, ts.Scan("08:00:00"))
	assert.Equal(t, TimeString("08:00"), ts)

	require.NoError(t, ts.Scan([]byte("13:00:00")))
	assert.Equal(t, TimeString("13:00"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("08:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "08:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bad").Value()
	assert.Error(t, err)
}
