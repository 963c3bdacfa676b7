package video

import (
	"testing"

	"github.com/tuxgo/tuxgo/internal/config"
)

func TestCalculateGammaRampIdentity(t *testing.T) {
	ramp, err := CalculateGammaRamp(1.0)
	if err != nil {
		t.Fatalf("CalculateGammaRamp() failed: %v", err)
	}
	for i, v := range ramp {
		if want := uint16(i<<8 | i); v != want {
			t.Fatalf("ramp[%d] = %d, expected %d", i, v, want)
		}
	}
}

func TestCalculateGammaRampZero(t *testing.T) {
	ramp, err := CalculateGammaRamp(0)
	if err != nil {
		t.Fatalf("CalculateGammaRamp() failed: %v", err)
	}
	for i, v := range ramp {
		if v != 0 {
			t.Fatalf("ramp[%d] = %d, expected 0", i, v)
		}
	}
}

func TestCalculateGammaRampMonotonic(t *testing.T) {
	for _, g := range []float32{0.5, 1.8, 2.2} {
		ramp, err := CalculateGammaRamp(g)
		if err != nil {
			t.Fatalf("CalculateGammaRamp(%v) failed: %v", g, err)
		}
		if ramp[0] != 0 {
			t.Errorf("gamma %v: ramp[0] = %d, expected 0", g, ramp[0])
		}
		for i := 1; i < len(ramp); i++ {
			if ramp[i] < ramp[i-1] {
				t.Fatalf("gamma %v: ramp not monotonic at %d", g, i)
			}
		}
	}

	// brighter gamma lifts the midpoint
	dark, _ := CalculateGammaRamp(0.5)
	bright, _ := CalculateGammaRamp(2.0)
	if bright[128] <= dark[128] {
		t.Errorf("ramp[128] gamma 2.0 = %d, gamma 0.5 = %d", bright[128], dark[128])
	}
}

func TestCalculateGammaRampNegative(t *testing.T) {
	if _, err := CalculateGammaRamp(-0.1); err == nil {
		t.Error("negative gamma should fail")
	}
}

func TestWindowFlagsString(t *testing.T) {
	tests := []struct {
		flags WindowFlags
		want  string
	}{
		{0, "windowed"},
		{FlagResizable, "resizable"},
		{FlagResizable | FlagFullscreenDesktop, "resizable|fullscreen-desktop"},
	}
	for _, tt := range tests {
		if got := tt.flags.String(); got != tt.want {
			t.Errorf("WindowFlags(%d).String() = %q, expected %q", tt.flags, got, tt.want)
		}
	}
}

func TestFullscreenMode(t *testing.T) {
	cfg := &config.VideoConfig{
		FullscreenSize:        config.Size{Width: 1280, Height: 720},
		FullscreenRefreshRate: 75,
	}
	mode := fullscreenMode(cfg)
	if mode.String() != "1280x720@75" {
		t.Errorf("mode = %s, expected 1280x720@75", mode)
	}
	if mode.Format != PixelFormatRGB888 {
		t.Errorf("format = %v, expected RGB888", mode.Format)
	}
}
