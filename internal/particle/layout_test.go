package particle

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/decker502/tearoom/pkg/math3d"
)

func batteryLayer() RingLayer {
	return RingLayer{
		Height:       0.7,
		Count:        200,
		Radius:       0.32,
		RadiusJitter: Range{0.85, 1.15},
		AngleJitter:  0.3,
		HeightJitter: 0.04,
		Size:         Range{0.012, 0.037},
		Opacity:      Range{0.5, 1.0},
		Speed:        Range{0.5, 1.7},
	}
}

func TestSampleRingLayerBounds(t *testing.T) {
	layer := batteryLayer()
	center := math3d.V3(1, 2, 3)

	for seed := int64(1); seed <= 20; seed++ {
		seeds := SampleRingLayer(rand.New(rand.NewSource(seed)), center, layer)
		if len(seeds) != layer.Count {
			t.Fatalf("seed %d: got %d particles, want %d", seed, len(seeds), layer.Count)
		}
		for i, s := range seeds {
			if d := s.Position.HorizontalDist(center); d > layer.MaxRadius()+1e-9 {
				t.Fatalf("seed %d particle %d: radius %v exceeds %v", seed, i, d, layer.MaxRadius())
			}
			dy := s.Position.Y - (center.Y + layer.Height)
			if math.Abs(dy) > layer.HeightJitter+1e-9 {
				t.Fatalf("seed %d particle %d: height offset %v exceeds jitter", seed, i, dy)
			}
			if !layer.Size.Contains(s.Size) || !layer.Opacity.Contains(s.Opacity) || !layer.Speed.Contains(s.Speed) {
				t.Fatalf("seed %d particle %d: attribute out of range: %+v", seed, i, s)
			}
			if s.Phase < 0 || s.Phase >= 2*math.Pi {
				t.Fatalf("seed %d particle %d: phase %v out of [0,2π)", seed, i, s.Phase)
			}
		}
	}
}

func TestSampleBoxBounds(t *testing.T) {
	extent := math3d.V3(2, 3, 0.5)
	seeds := SampleBox(rand.New(rand.NewSource(3)), math3d.Vec3{}, extent, 300, Fixed(0.02), Fixed(0.6), Fixed(0.4))
	for i, s := range seeds {
		p := s.Position
		if math.Abs(p.X) > 1 || math.Abs(p.Y) > 1.5 || math.Abs(p.Z) > 0.25 {
			t.Fatalf("particle %d at %v outside box", i, p)
		}
	}
}

func TestSampleSpiralDeterministicPositions(t *testing.T) {
	s := Spiral{Count: 150, Turns: 3, Height: 1.5, RadiusStart: 0.4, RadiusGrowth: 0.2,
		Size: Range{0.008, 0.023}, Opacity: Range{0.3, 0.7}, Speed: Range{0.8, 1.4}}

	a := SampleSpiral(rand.New(rand.NewSource(1)), math3d.Vec3{}, s)
	b := SampleSpiral(rand.New(rand.NewSource(99)), math3d.Vec3{}, s)
	for i := range a {
		if a[i].Position != b[i].Position {
			t.Fatalf("spiral position %d depends on rng", i)
		}
		r := a[i].Position.HorizontalDist(math3d.Vec3{})
		if r < 0.4-1e-9 || r > 0.6+1e-9 {
			t.Fatalf("spiral particle %d radius %v outside [0.4,0.6]", i, r)
		}
	}
}

func TestSamplingIsReproducible(t *testing.T) {
	layer := batteryLayer()
	a := SampleRingLayer(rand.New(rand.NewSource(42)), math3d.Vec3{}, layer)
	b := SampleRingLayer(rand.New(rand.NewSource(42)), math3d.Vec3{}, layer)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed should produce identical layouts")
	}
}
