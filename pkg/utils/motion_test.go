package utils

import (
	"math"
	"testing"

	"github.com/decker502/tearoom/pkg/math3d"
)

func TestPulse01Range(t *testing.T) {
	for i := 0; i < 2000; i++ {
		tm := float64(i) * 0.37
		phase := math.Mod(float64(i)*1.3, 2*math.Pi)
		p := Pulse01(tm, 2.5, phase)
		if p < 0 || p > 1 {
			t.Fatalf("Pulse01(%v) = %v outside [0,1]", tm, p)
		}
	}
}

func TestFloatOffsetBoundedAndIdempotent(t *testing.T) {
	tests := []struct {
		name     string
		perFrame float64
		speed    float64
		phase    float64
	}{
		{"layer slow", 0.0015, 0.5, 0},
		{"layer fast", 0.0015, 1.7, math.Pi},
		{"spiral", 0.002, 0.8, 5.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bound := 2 * tt.perFrame * ReferenceFrameRate / tt.speed
			for i := 0; i < 500; i++ {
				tm := float64(i) * 0.91
				a := FloatOffset(tm, tt.perFrame, tt.speed, tt.phase)
				b := FloatOffset(tm, tt.perFrame, tt.speed, tt.phase)
				if a != b {
					t.Fatalf("FloatOffset not idempotent at t=%v", tm)
				}
				if math.Abs(a) > bound+1e-12 {
					t.Fatalf("FloatOffset(%v) = %v exceeds %v", tm, a, bound)
				}
			}
			if got := FloatOffset(0, tt.perFrame, tt.speed, tt.phase); math.Abs(got) > 1e-12 {
				t.Errorf("FloatOffset(0) = %v, want 0", got)
			}
		})
	}

	if got := FloatOffset(3, 0.0015, 0, 1); got != 0 {
		t.Errorf("zero speed should not move, got %v", got)
	}
}

func TestFloatOffsetMatchesFrameSum(t *testing.T) {
	// 逐帧累加与闭式解的差应保持在一帧增量的量级
	const perFrame, speed, phase = 0.0015, 1.1, 0.7
	var y float64
	for frame := 1; frame <= 600; frame++ {
		tm := float64(frame) / ReferenceFrameRate
		y += math.Sin(tm*speed+phase) * perFrame
	}
	got := FloatOffset(600/ReferenceFrameRate, perFrame, speed, phase)
	if math.Abs(got-y) > 0.002 {
		t.Errorf("closed form %v vs frame sum %v", got, y)
	}
}

func TestOrbitYKeepsRadius(t *testing.T) {
	center := math3d.V3(1, 0, -2)
	base := math3d.V3(1.3, 0.7, -1.8)
	r0 := base.HorizontalDist(center)

	for _, tm := range []float64{0, 1, 60, 3600, 86400} {
		p := OrbitY(base, center, 0.09, tm)
		if d := p.HorizontalDist(center); math.Abs(d-r0) > 1e-9 {
			t.Fatalf("t=%v radius %v drifted from %v", tm, d, r0)
		}
		if p.Y != base.Y {
			t.Fatalf("t=%v orbit changed height", tm)
		}
	}

	// 正方向从 +X 转向 +Z
	p := OrbitY(math3d.V3(1, 0, 0), math3d.Vec3{}, math.Pi/2, 1)
	if math.Abs(p.X) > 1e-9 || math.Abs(p.Z-1) > 1e-9 {
		t.Errorf("quarter orbit = %v, want (0,0,1)", p)
	}
}

func TestApproachFactor(t *testing.T) {
	if got := ApproachFactor(0.15, 1.0/60); math.Abs(got-0.15) > 1e-12 {
		t.Errorf("one frame factor = %v, want 0.15", got)
	}
	two := ApproachFactor(0.15, 2.0/60)
	if want := 1 - 0.85*0.85; math.Abs(two-want) > 1e-12 {
		t.Errorf("two frame factor = %v, want %v", two, want)
	}
	if ApproachFactor(0.15, 0) != 0 {
		t.Error("zero dt should not move")
	}
	if ApproachFactor(1.5, 0.1) != 1 {
		t.Error("factor >= 1 should snap")
	}
}

func TestApproachConverges(t *testing.T) {
	x := 0.0
	for i := 0; i < 300; i++ {
		x = Approach(x, -1.6575, 0.15, 1.0/60)
	}
	if math.Abs(x+1.6575) > 1e-6 {
		t.Errorf("Approach did not converge: %v", x)
	}
}

func TestFinite(t *testing.T) {
	if Finite(math.NaN(), 2) != 2 || Finite(math.Inf(1), 3) != 3 || Finite(1.5, 0) != 1.5 {
		t.Error("Finite fallback mismatch")
	}
}
