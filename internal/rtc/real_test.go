//go:build linux

package rtc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRTCTimeConversion(t *testing.T) {
	in := time.Date(2025, time.March, 9, 7, 45, 30, 0, time.UTC)
	rt := toRTCTime(in)

	require.Equal(t, int32(125), rt.Year)
	require.Equal(t, int32(2), rt.Mon)
	require.Equal(t, int32(9), rt.Mday)
	require.Equal(t, int32(0), rt.Wday, "2025-03-09 is a Sunday")
	require.Equal(t, int32(67), rt.Yday)

	require.Equal(t, in, fromRTCTime(&rt))
}

func TestRTCTimeConversionNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	in := time.Date(2025, time.January, 1, 1, 0, 0, 0, loc)
	rt := toRTCTime(in)

	require.Equal(t, int32(23), rt.Hour)
	require.Equal(t, int32(31), rt.Mday)
	require.Equal(t, int32(124), rt.Year)
}
