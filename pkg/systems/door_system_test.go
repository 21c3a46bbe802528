package systems

import (
	"math"
	"testing"

	"github.com/decker502/tearoom/pkg/components"
	"github.com/decker502/tearoom/pkg/config"
	"github.com/decker502/tearoom/pkg/ecs"
	"github.com/decker502/tearoom/pkg/math3d"
)

func TestDoorTarget(t *testing.T) {
	left := &components.DoorComponent{IsLeft: true, MaxSlide: 1.6575, HoverNudge: 0.08}
	right := &components.DoorComponent{MaxSlide: 1.6575, HoverNudge: 0.08}

	tests := []struct {
		name          string
		door          *components.DoorComponent
		hovered, open bool
		want          float64
	}{
		{"left closed", left, false, false, 0},
		{"left hovered", left, true, false, -0.08},
		{"left open", left, false, true, -1.6575},
		{"left open and hovered", left, true, true, -1.6575},
		{"right hovered", right, true, false, 0.08},
		{"right open", right, false, true, 1.6575},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DoorTarget(tt.door, tt.hovered, tt.open); !near(got, tt.want) {
				t.Errorf("DoorTarget = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDoorSystemConverges(t *testing.T) {
	em := ecs.NewEntityManager()
	panel, h := addHoverable(em, math3d.Vec3{}, "door.left")
	slide := addNode(em, 0, math3d.Vec3{})
	door := &components.DoorComponent{IsLeft: true, MaxSlide: 1.6575, HoverNudge: 0.08, Approach: 0.15, Panel: panel}
	ecs.AddComponent(em, slide, door)
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, slide)

	ds := NewDoorSystem(em)
	h.Toggled = true

	ds.Update(config.FixedDeltaTime)
	if !near(door.Offset, -1.6575*0.15) {
		t.Errorf("first step offset = %v, want %v", door.Offset, -1.6575*0.15)
	}

	prev := door.Offset
	for i := 0; i < 300; i++ {
		ds.Update(config.FixedDeltaTime)
		if door.Offset > prev+1e-12 {
			t.Fatalf("door moved away from target at step %d", i)
		}
		prev = door.Offset
	}
	if math.Abs(door.Offset+1.6575) > 1e-6 || tr.Position.X != door.Offset {
		t.Errorf("door settled at %v (transform %v), want -1.6575", door.Offset, tr.Position.X)
	}

	h.Toggled = false
	for i := 0; i < 300; i++ {
		ds.Update(config.FixedDeltaTime)
	}
	if math.Abs(door.Offset) > 1e-6 {
		t.Errorf("closed door offset = %v", door.Offset)
	}
}

func TestLiftSystem(t *testing.T) {
	em := ecs.NewEntityManager()
	id, h := addHoverable(em, math3d.V3(0, 0.06, 0), "cushion.0")
	ecs.AddComponent(em, id, &components.LiftComponent{Source: id, IdleY: 0.06, HoverY: 0.08, Approach: 0.12})
	tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)

	ls := NewLiftSystem(em)
	ls.Update(config.FixedDeltaTime)
	if tr.Position.Y != 0.06 {
		t.Errorf("idle cushion moved to %v", tr.Position.Y)
	}

	h.Hovered = true
	for i := 0; i < 200; i++ {
		ls.Update(config.FixedDeltaTime)
		if tr.Position.Y > 0.08+1e-12 {
			t.Fatalf("overshoot: %v", tr.Position.Y)
		}
	}
	if math.Abs(tr.Position.Y-0.08) > 1e-6 {
		t.Errorf("hovered cushion at %v, want 0.08", tr.Position.Y)
	}
}
