// scene_inspect 无窗口地构建茶室场景并打印统计
//
// 用法:
//
//	go run ./cmd/scene_inspect --variant battery-park --seed 7 --mount
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"sort"

	"github.com/decker502/tearoom/pkg/components"
	"github.com/decker502/tearoom/pkg/config"
	"github.com/decker502/tearoom/pkg/ecs"
	"github.com/decker502/tearoom/pkg/entities"
	"github.com/decker502/tearoom/pkg/math3d"
	"github.com/decker502/tearoom/pkg/systems"
)

var (
	variantFlag = flag.String("variant", "", "只检查该变体（默认全部）")
	seedFlag    = flag.Int64("seed", 1, "粒子布局种子")
	configFlag  = flag.String("config", config.SceneConfigPath, "场景配置路径")
	mountFlag   = flag.Bool("mount", false, "依次挂载每个叠加层并统计其内容")
	verbose     = flag.Bool("verbose", false, "显示详细调试信息")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadSceneConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}

	names := cfg.VariantNames()
	if *variantFlag != "" {
		names = []string{*variantFlag}
	}

	for _, name := range names {
		v, err := cfg.Variant(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %v\n", err)
			os.Exit(1)
		}
		if err := inspect(v, *seedFlag, *mountFlag); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", name, err)
			os.Exit(1)
		}
	}
}

func inspect(v *config.VariantConfig, seed int64, mount bool) error {
	em := ecs.NewEntityManager()
	room, err := entities.NewTeaRoom(em, v, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	ts := systems.NewTransformSystem(em)
	ts.Update()

	fmt.Printf("=== %s (%s), seed %d ===\n", v.Name, v.Title, seed)
	fmt.Printf("entities:   %d\n", em.EntityCount())
	fmt.Printf("meshes:     %d\n", len(ecs.GetEntitiesWith1[*components.MeshComponent](em)))
	fmt.Printf("lights:     %d\n", len(ecs.GetEntitiesWith1[*components.LightComponent](em)))
	printParticles("particles: ", em, ts, ecs.GetEntitiesWith1[*components.DecorativeParticleComponent](em))

	hoverables := make([]string, 0, len(room.Hoverables))
	for name := range room.Hoverables {
		hoverables = append(hoverables, name)
	}
	sort.Strings(hoverables)
	fmt.Printf("hoverables: %d %v\n", len(hoverables), hoverables)

	for _, gateID := range room.Gates {
		gate, _ := ecs.GetComponent[*components.OverlayGateComponent](em, gateID)
		fmt.Printf("overlay %-24s triggers %v anchor (%.1f, %.1f, %.1f)\n",
			gate.Name, gate.Def.Triggers, gate.Anchor.X, gate.Anchor.Y, gate.Anchor.Z)
		if mount {
			if err := inspectOverlay(em, ts, gate); err != nil {
				return err
			}
		}
	}
	fmt.Println()
	return nil
}

// inspectOverlay 悬停第一个触发器，挂载叠加层，统计后再卸载
func inspectOverlay(em *ecs.EntityManager, ts *systems.TransformSystem, gate *components.OverlayGateComponent) error {
	before := em.EntityCount()

	// 只调用 Hover，不需要相机
	interaction := systems.NewInteractionSystem(em, ts, nil)
	overlays := systems.NewOverlaySystem(em)
	interaction.Hover(gate.Triggers[0])
	overlays.Update()
	if gate.Mounted == 0 {
		return fmt.Errorf("overlay %s did not mount from trigger %s", gate.Name, gate.Def.Triggers[0])
	}

	ts.Update()
	subtree := entities.Descendants(em, gate.Mounted)
	var particles []ecs.EntityID
	var panels int
	for _, id := range subtree {
		if ecs.HasComponent[*components.DecorativeParticleComponent](em, id) {
			particles = append(particles, id)
		}
		if ecs.HasComponent[*components.StatPanelComponent](em, id) {
			panels++
		}
	}
	fmt.Printf("  mounted:  %d entities, %d stat panels\n", len(subtree), panels)
	printParticles("  particles:", em, ts, particles)

	interaction.Hover(0)
	overlays.Update()
	if after := em.EntityCount(); after != before {
		return fmt.Errorf("overlay %s leaked %d entities", gate.Name, after-before)
	}
	return nil
}

func printParticles(label string, em *ecs.EntityManager, ts *systems.TransformSystem, ids []ecs.EntityID) {
	if len(ids) == 0 {
		fmt.Printf("%s 0\n", label)
		return
	}
	lo := math3d.V3(math.Inf(1), math.Inf(1), math.Inf(1))
	hi := math3d.V3(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	for _, id := range ids {
		p := ts.WorldPosition(id)
		lo = math3d.V3(math.Min(lo.X, p.X), math.Min(lo.Y, p.Y), math.Min(lo.Z, p.Z))
		hi = math3d.V3(math.Max(hi.X, p.X), math.Max(hi.Y, p.Y), math.Max(hi.Z, p.Z))
	}
	fmt.Printf("%s %d, bounds (%.2f, %.2f, %.2f) .. (%.2f, %.2f, %.2f)\n",
		label, len(ids), lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
}
