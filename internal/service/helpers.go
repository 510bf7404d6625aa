// Package service contains the business logic for the demo investment
// platform: the transactional ledger engine, the asset catalog, the price
// simulator, and supporting services.
package service

import "math"

// RoundingPrecision is the monetary rounding precision (two decimal places).
const RoundingPrecision = 100

// quantityEpsilon is the threshold below which a remaining position
// quantity is treated as zero. Selling an entire holding computes a
// remainder that may carry float noise; anything at or under this is a
// full sale and the position row is deleted.
const quantityEpsilon = 1e-9

// round rounds a monetary value to two decimal places.
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}

// clamp bounds a value to [min, max].
func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
