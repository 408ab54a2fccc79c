package denoise

import "math"

// classifier decides, band by band, whether the center frame of a history
// window looks like noise given the profiled statistics and a neighborhood
// of windowsToExamine consecutive history slots (the newest windowsToExamine
// frames in the ring, which always straddle center since center ==
// windowsToExamine/2).
type classifier struct {
	method           ClassificationMethod
	stats            *statistics
	newSensitivity   float64 // NewSensitivity scaled by ln(10) once, here, not per classification
	oldSensitivity   float64 // linear power ratio derived from Settings.OldSensitivity
	windowsToExamine int
}

func newClassifier(method ClassificationMethod, stats *statistics, newSensitivityDB, oldSensitivityDB float64, windowsToExamine int) *classifier {
	return &classifier{
		method:           method,
		stats:            stats,
		newSensitivity:   newSensitivityDB * math.Ln10,
		oldSensitivity:   dbToPowerRatio(oldSensitivityDB),
		windowsToExamine: windowsToExamine,
	}
}

// classify writes, band by band, whether the neighborhood reads as noise.
func (c *classifier) classify(h *history, isNoise []bool) {
	switch c.method {
	case Median:
		c.classifyMedian(h, isNoise)
	case Legacy:
		c.classifyLegacy(h, isNoise)
	default:
		c.classifySecondGreatest(h, isNoise)
	}
}

// classifySecondGreatest throws out the loudest window in the neighborhood
// (an outlier is more likely a transient than a noise floor) and compares
// what's left against the profiled mean.
func (c *classifier) classifySecondGreatest(h *history, isNoise []bool) {
	n := c.windowsToExamine
	for band := range isNoise {
		greatest, second := 0.0, 0.0
		for i := 0; i < n; i++ {
			p := h.at(i).spectrum[band]
			if p >= greatest {
				second, greatest = greatest, p
			} else if p >= second {
				second = p
			}
		}
		isNoise[band] = second <= c.newSensitivity*c.stats.means[band]
	}
}

// classifyMedian is identical to classifySecondGreatest for neighborhoods
// of 3 or fewer windows. For 4-5 windows it takes the third-greatest power
// instead, a cruder median that avoids the cost of a full sort. Larger
// neighborhoods are not supported.
func (c *classifier) classifyMedian(h *history, isNoise []bool) {
	n := c.windowsToExamine
	if n <= 3 {
		c.classifySecondGreatest(h, isNoise)
		return
	}
	if n > 5 {
		panic("median classification does not support a neighborhood larger than 5 windows")
	}
	for band := range isNoise {
		greatest, second, third := 0.0, 0.0, 0.0
		for i := 0; i < n; i++ {
			p := h.at(i).spectrum[band]
			switch {
			case p >= greatest:
				third, second, greatest = second, greatest, p
			case p >= second:
				third, second = second, p
			case p >= third:
				third = p
			}
		}
		isNoise[band] = third <= c.newSensitivity*c.stats.means[band]
	}
}

// classifyLegacy compares the minimum power seen across the neighborhood
// against the profiled noise threshold for that band, scaled by the old
// sensitivity factor.
func (c *classifier) classifyLegacy(h *history, isNoise []bool) {
	n := c.windowsToExamine
	for band := range isNoise {
		min := h.at(0).spectrum[band]
		for i := 1; i < n; i++ {
			if p := h.at(i).spectrum[band]; p < min {
				min = p
			}
		}
		isNoise[band] = min <= c.oldSensitivity*c.stats.noiseThreshold[band]
	}
}

// dbToPowerRatio converts a base-10-log-over-power dB value to a linear
// power ratio: 10^(db/10).
func dbToPowerRatio(db float64) float64 {
	return math.Pow(10, db/10)
}
