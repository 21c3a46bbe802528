package systems

import (
	"math"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/decker502/tearoom/pkg/components"
	"github.com/decker502/tearoom/pkg/config"
	"github.com/decker502/tearoom/pkg/ecs"
	"github.com/decker502/tearoom/pkg/entities"
	"github.com/decker502/tearoom/pkg/math3d"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// frontCamera 从 +Z 看向原点的相机
func frontCamera() *math3d.Camera {
	return math3d.NewCamera(math3d.V3(0, 0, 5), math3d.Vec3{}, 50, config.WindowWidth, config.WindowHeight)
}

func addNode(em *ecs.EntityManager, parent ecs.EntityID, pos math3d.Vec3) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransformComponent{Position: pos, Scale: math3d.V3(1, 1, 1), Parent: parent})
	return id
}

func addHoverable(em *ecs.EntityManager, pos math3d.Vec3, name string) (ecs.EntityID, *components.HoverableComponent) {
	id := addNode(em, 0, pos)
	h := &components.HoverableComponent{Name: name, HalfExtents: math3d.V3(0.5, 0.5, 0.5), Affordance: components.AffordancePointer}
	ecs.AddComponent(em, id, h)
	return id, h
}

func buildRoom(t *testing.T, variant string) (*ecs.EntityManager, *entities.TeaRoom) {
	t.Helper()
	cfg, err := config.LoadSceneConfig(filepath.Join("..", "..", config.SceneConfigPath))
	if err != nil {
		t.Fatalf("load scene config: %v", err)
	}
	v, err := cfg.Variant(variant)
	if err != nil {
		t.Fatal(err)
	}
	em := ecs.NewEntityManager()
	room, err := entities.NewTeaRoom(em, v, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewTeaRoom: %v", err)
	}
	return em, room
}
