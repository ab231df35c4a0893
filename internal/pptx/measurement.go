package pptx

import "math"

// EMU (English Metric Units) conversions.
// 1 inch = 914400 EMU, 1 point = 12700 EMU.
const (
	emuPerInch  = 914400
	emuPerPoint = 12700

	// maxEMU bounds conversions to avoid int64 overflow.
	maxEMU = math.MaxInt64 / 2
)

// Point converts points to EMU.
func Point(n float64) int64 {
	return clampEMU(n * emuPerPoint)
}

// Inch converts inches to EMU.
func Inch(n float64) int64 {
	return clampEMU(n * emuPerInch)
}

// EMUToPoint converts EMU to points.
func EMUToPoint(emu int64) float64 {
	return float64(emu) / emuPerPoint
}

// EMUToInch converts EMU to inches.
func EMUToInch(emu int64) float64 {
	return float64(emu) / emuPerInch
}

func clampEMU(v float64) int64 {
	if v > float64(maxEMU) {
		return maxEMU
	}
	if v < -float64(maxEMU) {
		return -maxEMU
	}
	return int64(v)
}
