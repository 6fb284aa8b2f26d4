package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToPercentage(t *testing.T) {
	sc := NewScoreConverterService()

	tests := []struct {
		score float64
		total int
		want  float64
	}{
		{72, 100, 72.0},
		{18, 50, 36.0},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{0, 10, 0},
		{10, 10, 100},
		{7.5, 20, 37.5},
	}
	for _, tc := range tests {
		got, err := sc.ConvertToPercentage(tc.score, tc.total)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "score %v / %d", tc.score, tc.total)
	}
}

func TestConvertToPercentageRejectsInvalidInput(t *testing.T) {
	sc := NewScoreConverterService()

	for _, tc := range []struct {
		score float64
		total int
	}{
		{5, 0},
		{5, -10},
		{-1, 10},
		{11, 10},
		{math.NaN(), 10},
		{math.Inf(1), 10},
	} {
		_, err := sc.ConvertToPercentage(tc.score, tc.total)
		assert.Error(t, err, "score %v / %d", tc.score, tc.total)
	}
}

func TestMeetsPassingRatioAtDisplayPrecision(t *testing.T) {
	sc := NewScoreConverterService()

	assert.True(t, sc.MeetsPassingRatio(72.0, 0.4))
	assert.False(t, sc.MeetsPassingRatio(36.0, 0.4))
	assert.True(t, sc.MeetsPassingRatio(40.0, 0.4))
	// 0.57*100 is 56.99999999999999 in float64.
	assert.True(t, sc.MeetsPassingRatio(57.0, 0.57))
	assert.False(t, sc.MeetsPassingRatio(56.9, 0.57))
	assert.True(t, sc.MeetsPassingRatio(33.3, 1.0/3))
}

func TestFormatPercentage(t *testing.T) {
	sc := NewScoreConverterService()
	assert.Equal(t, "72.0", sc.FormatPercentage(72))
	assert.Equal(t, "33.3", sc.FormatPercentage(33.333))
	assert.Equal(t, "100.0", sc.FormatPercentage(100))
}
