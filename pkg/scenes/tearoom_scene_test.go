package scenes

import (
	"path/filepath"
	"testing"

	"github.com/decker502/tearoom/pkg/components"
	"github.com/decker502/tearoom/pkg/config"
	"github.com/decker502/tearoom/pkg/ecs"
	"github.com/decker502/tearoom/pkg/game"
	"github.com/decker502/tearoom/pkg/systems"
	"github.com/decker502/tearoom/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

type sceneHarness struct {
	scene   *TeaRoomScene
	input   utils.InputState
	cursors []ebiten.CursorShapeType
}

func newHarness(t *testing.T, variant string, settings *game.SettingsManager) *sceneHarness {
	t.Helper()
	cfg, err := config.LoadSceneConfig(filepath.Join("..", "..", config.SceneConfigPath))
	if err != nil {
		t.Fatalf("load scene config: %v", err)
	}
	v, err := cfg.Variant(variant)
	if err != nil {
		t.Fatal(err)
	}

	h := &sceneHarness{}
	cursor := systems.NewCursorSystemWith(func(s ebiten.CursorShapeType) { h.cursors = append(h.cursors, s) })
	scene, err := newTeaRoomScene(game.NewResourceManager(), settings, v, 1, func() utils.InputState { return h.input }, cursor)
	if err != nil {
		t.Fatalf("newTeaRoomScene: %v", err)
	}
	h.scene = scene
	return h
}

func (h *sceneHarness) step(n int) {
	for i := 0; i < n; i++ {
		h.scene.Update(config.FixedDeltaTime)
		// 边沿事件只持续一帧
		h.input.JustPressed = false
		h.input.JustReleased = false
		h.input.WheelY = 0
	}
}

// pointAt 把指针移到交互元素中心的投影位置
func (h *sceneHarness) pointAt(t *testing.T, name string) *components.HoverableComponent {
	t.Helper()
	s := h.scene
	id, ok := s.Room().Hoverable(name)
	if !ok {
		t.Fatalf("no hoverable %q", name)
	}
	hv, _ := ecs.GetComponent[*components.HoverableComponent](s.entityManager, id)
	pos := s.transformSystem.WorldPose(id).Apply(hv.Center)
	x, y, _, visible := s.cameraSystem.Camera().Project(pos)
	if !visible {
		t.Fatalf("%s is behind the camera", name)
	}
	if picked := s.interactionSystem.Pick(float64(int(x)), float64(int(y))); picked != id {
		t.Fatalf("%s is occluded at (%.0f, %.0f) by entity %d", name, x, y, picked)
	}
	h.input.X, h.input.Y, h.input.InWindow = int(x), int(y), true
	return hv
}

func TestTeaRoomSceneIdle(t *testing.T) {
	h := newHarness(t, "battery-park", nil)
	h.step(30)

	if got := h.scene.overlaySystem.Mounted(); len(got) != 0 {
		t.Errorf("overlays mounted without hover: %v", got)
	}
	if len(h.cursors) != 0 {
		t.Errorf("cursor changed while idle: %v", h.cursors)
	}
	if h.scene.clock.Frames() != 30 {
		t.Errorf("clock frames = %d, want 30", h.scene.clock.Frames())
	}
}

func TestTeaRoomSceneHoverMountsOverlay(t *testing.T) {
	h := newHarness(t, "battery-park", nil)
	before := h.scene.entityManager.EntityCount()

	door := h.pointAt(t, config.TriggerDoorLeft)
	h.step(1)

	if !door.Hovered {
		t.Fatal("door not hovered")
	}
	if got := h.scene.overlaySystem.Mounted(); len(got) != 1 || got[0] != "battery-park-west" {
		t.Errorf("Mounted() = %v, want [battery-park-west]", got)
	}
	if len(h.cursors) != 1 || h.cursors[0] != ebiten.CursorShapePointer {
		t.Errorf("cursor = %v, want pointer", h.cursors)
	}

	h.input.InWindow = false
	h.step(1)
	if door.Hovered || len(h.scene.overlaySystem.Mounted()) != 0 {
		t.Error("leaving the window should end the hover and unmount the overlay")
	}
	if got := h.scene.entityManager.EntityCount(); got != before {
		t.Errorf("entity count = %d, want %d", got, before)
	}
	if len(h.cursors) != 2 || h.cursors[1] != ebiten.CursorShapeDefault {
		t.Errorf("cursor = %v, want pointer then default", h.cursors)
	}
}

func TestTeaRoomSceneClickTogglesDoor(t *testing.T) {
	h := newHarness(t, "battery-park", nil)
	door := h.pointAt(t, config.TriggerDoorRight)
	h.step(1)

	click := func() {
		h.input.JustPressed, h.input.Pressed = true, true
		h.step(1)
		h.input.Pressed, h.input.JustReleased = false, true
		h.step(1)
	}

	click()
	if !door.Toggled {
		t.Fatal("click should open the door")
	}
	click()
	if door.Toggled {
		t.Error("second click should close the door")
	}
}

func TestTeaRoomSceneDragDoesNotClick(t *testing.T) {
	h := newHarness(t, "battery-park", nil)
	door := h.pointAt(t, config.TriggerDoorRight)
	h.step(1)
	az0, _, _ := h.scene.cameraSystem.Orbit()

	h.input.JustPressed, h.input.Pressed = true, true
	h.step(1)
	h.input.X += 3 * utils.DragThreshold
	h.step(1)
	h.input.Pressed, h.input.JustReleased = false, true
	h.step(1)

	if door.Toggled {
		t.Error("a drag must not toggle the door")
	}
	if az, _, _ := h.scene.cameraSystem.Orbit(); az == az0 {
		t.Error("dragging should orbit the camera")
	}
}

func TestTeaRoomSceneSettingsRoundTrip(t *testing.T) {
	settings := game.NewSettingsManager(nil)
	settings.SetCamera(0.4, 1.2, 9)

	h := newHarness(t, "shared-gate", settings)
	cam := h.scene.cameraSystem.Camera()
	if cam.Azimuth != 0.4 || cam.Polar != 1.2 || cam.Distance != 9 {
		t.Errorf("camera = (%v, %v, %v), want restored (0.4, 1.2, 9)", cam.Azimuth, cam.Polar, cam.Distance)
	}

	h.scene.cameraSystem.SetOrbit(1, 1, 12)
	if !h.scene.SaveOnExit() {
		t.Fatal("SaveOnExit failed")
	}
	v := settings.GetSettings()
	if v.CameraAzimuth != 1 || v.CameraDistance != 12 || v.LastVariant != "shared-gate" {
		t.Errorf("saved settings = %+v", v)
	}
}

func TestNewTeaRoomSceneRejectsNil(t *testing.T) {
	if _, err := NewTeaRoomScene(nil, nil, nil, 1); err == nil {
		t.Error("expected error for nil resource manager")
	}
	if _, err := NewTeaRoomScene(game.NewResourceManager(), nil, nil, 1); err == nil {
		t.Error("expected error for nil variant")
	}
}
