package systems

import (
	"testing"

	"github.com/decker502/tearoom/pkg/components"
	"github.com/decker502/tearoom/pkg/config"
	"github.com/decker502/tearoom/pkg/ecs"
	"github.com/decker502/tearoom/pkg/entities"
)

func hoverable(t *testing.T, em *ecs.EntityManager, room *entities.TeaRoom, name string) *components.HoverableComponent {
	t.Helper()
	id, ok := room.Hoverable(name)
	if !ok {
		t.Fatalf("no hoverable %q", name)
	}
	h, _ := ecs.GetComponent[*components.HoverableComponent](em, id)
	return h
}

func overlayRoots(em *ecs.EntityManager) []*components.OverlayRootComponent {
	var out []*components.OverlayRootComponent
	for _, id := range ecs.GetEntitiesWith1[*components.OverlayRootComponent](em) {
		r, _ := ecs.GetComponent[*components.OverlayRootComponent](em, id)
		out = append(out, r)
	}
	return out
}

func hasText(em *ecs.EntityManager, text string) bool {
	for _, id := range ecs.GetEntitiesWith1[*components.StatPanelComponent](em) {
		p, _ := ecs.GetComponent[*components.StatPanelComponent](em, id)
		for _, l := range p.Lines {
			if l.Text == text {
				return true
			}
		}
	}
	return false
}

func TestOverlayAbsentWithoutHover(t *testing.T) {
	em, _ := buildRoom(t, "battery-park")
	os := NewOverlaySystem(em)
	os.Update()
	if roots := overlayRoots(em); len(roots) != 0 {
		t.Errorf("overlays mounted without hover: %d", len(roots))
	}
	if hasText(em, "15,000") {
		t.Error("headline visible without hover")
	}
}

func TestOverlayMountsOnDoorHover(t *testing.T) {
	em, room := buildRoom(t, "battery-park")
	os := NewOverlaySystem(em)
	var events []string
	os.OnChange = func(name string, mounted bool) {
		if mounted {
			events = append(events, "+"+name)
		} else {
			events = append(events, "-"+name)
		}
	}
	before := em.EntityCount()

	door := hoverable(t, em, room, config.TriggerDoorLeft)
	door.Hovered = true
	os.Update()
	os.Update()

	roots := overlayRoots(em)
	if len(roots) != 1 || roots[0].Name != "battery-park-west" {
		t.Fatalf("mounted = %+v, want battery-park-west only", roots)
	}
	if !hasText(em, "15,000") || !hasText(em, "microplastics per cup") {
		t.Error("stat panel missing headline or unit")
	}
	if got := os.Mounted(); len(got) != 1 || got[0] != "battery-park-west" {
		t.Errorf("Mounted() = %v", got)
	}

	door.Hovered = false
	os.Update()
	if len(overlayRoots(em)) != 0 || hasText(em, "15,000") {
		t.Error("overlay should unmount on hover exit")
	}
	if em.EntityCount() != before {
		t.Errorf("entity count after unmount = %d, want %d", em.EntityCount(), before)
	}
	if len(events) != 2 || events[0] != "+battery-park-west" || events[1] != "-battery-park-west" {
		t.Errorf("events = %v", events)
	}
}

func TestOverlayRoundTripWithinFrame(t *testing.T) {
	em, room := buildRoom(t, "battery-park")
	os := NewOverlaySystem(em)
	before := em.EntityCount()

	door := hoverable(t, em, room, config.TriggerDoorRight)
	door.Hovered = true
	door.Hovered = false
	os.Update()

	if len(overlayRoots(em)) != 0 || em.EntityCount() != before {
		t.Error("enter+exit before the next update must leave the scene unchanged")
	}
}

func TestOverlayUnmountsOnHoverExitWhileDoorOpen(t *testing.T) {
	em, room := buildRoom(t, "battery-park")
	os := NewOverlaySystem(em)
	before := em.EntityCount()

	door := hoverable(t, em, room, config.TriggerDoorLeft)
	door.Hovered = true
	door.Toggled = true
	os.Update()
	if len(overlayRoots(em)) != 1 {
		t.Fatal("hovered door should mount its overlay")
	}

	// 门保持打开，但悬停结束后叠加层必须卸载
	door.Hovered = false
	os.Update()
	if len(overlayRoots(em)) != 0 || hasText(em, "15,000") {
		t.Error("overlay must unmount on hover exit even while the door is open")
	}
	if em.EntityCount() != before {
		t.Errorf("entity count = %d, want %d", em.EntityCount(), before)
	}

	// 只打开不悬停也不挂载
	os.Update()
	if len(overlayRoots(em)) != 0 {
		t.Error("an open but unhovered door must not mount its overlay")
	}
}

func TestSharedGateOwnership(t *testing.T) {
	em, room := buildRoom(t, "shared-gate")
	os := NewOverlaySystem(em)
	gate, _ := ecs.GetComponent[*components.OverlayGateComponent](em, room.Gates[0])

	mat := hoverable(t, em, room, config.MatTrigger(4))
	teapot := hoverable(t, em, room, config.TriggerTeapot)
	matID, _ := room.Hoverable(config.MatTrigger(4))
	teapotID, _ := room.Hoverable(config.TriggerTeapot)

	mat.Hovered, mat.EnteredSeq = true, 1
	os.Update()
	mounted := gate.Mounted
	if mounted == 0 || Owner(gate) != matID {
		t.Fatalf("mat should own the overlay, owner=%d", Owner(gate))
	}

	teapot.Hovered, teapot.EnteredSeq = true, 2
	os.Update()
	if gate.Mounted != mounted {
		t.Error("second trigger must not remount the overlay")
	}
	if Owner(gate) != teapotID || len(gate.Active) != 2 {
		t.Errorf("owner = %d active = %v, want teapot last", Owner(gate), gate.Active)
	}
	if n := len(overlayRoots(em)); n != 1 {
		t.Errorf("overlay roots = %d, want 1", n)
	}

	mat.Hovered = false
	os.Update()
	if gate.Mounted != mounted || Owner(gate) != teapotID {
		t.Error("overlay should stay mounted while the teapot is hovered")
	}

	teapot.Hovered = false
	os.Update()
	if gate.Mounted != 0 || Owner(gate) != 0 {
		t.Error("overlay should unmount when no trigger is active")
	}
}
