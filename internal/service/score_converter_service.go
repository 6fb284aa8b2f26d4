package service

import (
	"fmt"
	"math"
)

// PercentageDecimals is the precision used both for display and for the pass/fail
// comparison, so a shown percentage never disagrees with the badge.
const PercentageDecimals = 1

type ScoreConverterService interface {
	ConvertToPercentage(score float64, totalMarks int) (float64, error)
	MeetsPassingRatio(percentage, passingRatio float64) bool
	FormatPercentage(percentage float64) string
}

type scoreConverterServiceImpl struct {
	scale float64
}

func NewScoreConverterService() ScoreConverterService {
	return &scoreConverterServiceImpl{scale: math.Pow(10, PercentageDecimals)}
}

// ConvertToPercentage turns a raw score into a percentage rounded to one decimal.
func (s *scoreConverterServiceImpl) ConvertToPercentage(score float64, totalMarks int) (float64, error) {
	if totalMarks <= 0 {
		return 0, fmt.Errorf("total marks must be positive, got %d", totalMarks)
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, fmt.Errorf("score %v is not a finite number", score)
	}
	if score < 0 || score > float64(totalMarks) {
		return 0, fmt.Errorf("score %.2f is out of valid range (0-%d)", score, totalMarks)
	}
	return s.round(score / float64(totalMarks) * 100), nil
}

// MeetsPassingRatio compares at display precision: 0.57 becomes 57.0 rather than 56.99999999999999.
func (s *scoreConverterServiceImpl) MeetsPassingRatio(percentage, passingRatio float64) bool {
	return s.round(percentage) >= s.round(passingRatio*100)
}

func (s *scoreConverterServiceImpl) FormatPercentage(percentage float64) string {
	return fmt.Sprintf("%.*f", PercentageDecimals, percentage)
}

func (s *scoreConverterServiceImpl) round(v float64) float64 {
	return math.Round(v*s.scale) / s.scale
}
