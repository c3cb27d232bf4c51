package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"09:00", false},
		{"00:00", false},
		{"23:59", false},
		{"24:00", true},
		{"9:00", true},
		{"09:60", true},
		{"09-00", true},
		{"0900", true},
		{"ab:cd", true},
		{"09:00 ", true},
		{"abc", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestTimeStringMinutes(t *testing.T) {
	assert.Equal(t, 630, TimeString("10:30").Minutes())
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 1439, TimeString("23:59").Minutes())

	// Некорректное значение даёт 0, валидация отдельно
	assert.Equal(t, 0, TimeString("bad").Minutes())
	assert.Equal(t, 0, TimeString("9:00").Minutes())
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts := TimeString("10:30")

	got, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), got)

	got, err = ts.AddMinutes(-30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:00"), got)

	// Выход за границы суток
	_, err = TimeString("23:30").AddMinutes(60)
	require.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = TimeString("00:30").AddMinutes(-60)
	require.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeStringComparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:30").IsAfter("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))

	// Некорректные значения не считаются ни раньше, ни позже
	assert.False(t, TimeString("bad").IsBefore("10:00"))
	assert.False(t, TimeString("bad").IsAfter("10:00"))
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	// Postgres возвращает TIME как "HH:MM:SS"
	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("09:15:00")))
	assert.Equal(t, TimeString("09:15"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 8, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("08:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	require.Error(t, ts.Scan(42))
}

func TestTimeStringValue(t *testing.T) {
	v, err := TimeString("14:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "14:30:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bad").Value()
	require.Error(t, err)
}
