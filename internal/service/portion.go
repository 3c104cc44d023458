package service

import (
	"strconv"
	"strings"
)

const (
	DefaultPortionMultiplier = 1.5
	MaxPortionMultiplier     = 10
)

// PortionPolicy decides how many 100g servings of a recognised food a photo
// represents.
type PortionPolicy interface {
	Multiplier(food string) float64
}

// FixedPortion applies the same multiplier to every food.
type FixedPortion float64

func (p FixedPortion) Multiplier(string) float64 {
	return float64(p)
}

// ParsePortionMultiplier reads a per-request override. The value must be
// greater than zero and at most MaxPortionMultiplier.
func ParsePortionMultiplier(raw string) (PortionPolicy, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v <= 0 || v > MaxPortionMultiplier {
		return nil, ErrInvalidPortion
	}
	return FixedPortion(v), nil
}
