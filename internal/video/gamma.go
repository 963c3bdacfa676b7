package video

import (
	"fmt"
	"math"
)

// GammaRamp maps each 8-bit channel value to a 16-bit output intensity.
type GammaRamp [256]uint16

// CalculateGammaRamp fills a ramp for the given gamma. 1.0 is the identity
// ramp, 0 turns the channel off, and other values apply out = in^(1/gamma).
func CalculateGammaRamp(gamma float32) (*GammaRamp, error) {
	if gamma < 0 || math.IsNaN(float64(gamma)) {
		return nil, fmt.Errorf("invalid gamma %v", gamma)
	}
	ramp := new(GammaRamp)
	switch gamma {
	case 0:
		return ramp, nil
	case 1:
		for i := range ramp {
			ramp[i] = uint16(i<<8 | i)
		}
		return ramp, nil
	}

	exp := 1.0 / float64(gamma)
	for i := range ramp {
		v := int(math.Pow(float64(i)/256.0, exp)*65535.0 + 0.5)
		if v > 65535 {
			v = 65535
		}
		ramp[i] = uint16(v)
	}
	return ramp, nil
}
