package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromSeconds(t *testing.T) {
	tests := []struct {
		name string
		secs float64
		want TimeUs
	}{
		{"zero", 0, 0},
		{"one_second", 1, 1_000_000},
		{"fractional", 10.5, 10_500_000},
		{"millisecond", 0.001, 1_000},
		{"negative", -2.5, -2_500_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromSeconds(tt.secs))
		})
	}
}

func TestSecondsRoundTrip(t *testing.T) {
	for _, v := range []TimeUs{0, 1, 999, 1_000_000, 3_600_000_000} {
		assert.Equal(t, v, FromSeconds(v.Seconds()))
	}
}

func TestAbs(t *testing.T) {
	assert.Equal(t, TimeUs(5), TimeUs(5).Abs())
	assert.Equal(t, TimeUs(5), TimeUs(-5).Abs())
	assert.Equal(t, TimeUs(0), ZeroTime.Abs())
}

func TestString(t *testing.T) {
	tests := []struct {
		val  TimeUs
		want string
	}{
		{0, "00:00:00.000"},
		{1_500_000, "00:00:01.500"},
		{90 * Second, "00:01:30.000"},
		{3_661*Second + 42*Millisecond, "01:01:01.042"},
		{-1_500_000, "-00:00:01.500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.val.String())
	}
}
