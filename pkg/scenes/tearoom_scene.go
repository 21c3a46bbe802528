package scenes

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/decker502/tearoom/pkg/components"
	"github.com/decker502/tearoom/pkg/config"
	"github.com/decker502/tearoom/pkg/ecs"
	"github.com/decker502/tearoom/pkg/entities"
	"github.com/decker502/tearoom/pkg/game"
	"github.com/decker502/tearoom/pkg/math3d"
	"github.com/decker502/tearoom/pkg/systems"
	"github.com/decker502/tearoom/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// TeaRoomScene 茶室场景
//
// 持有一个变体的全部实体和系统。每帧顺序：
// 输入 -> 相机 -> 交互 -> 光标 -> 门 / 坐垫 -> 动画 -> 叠加层 -> 变换。
type TeaRoomScene struct {
	settings *game.SettingsManager // 可为 nil
	variant  *config.VariantConfig

	entityManager *ecs.EntityManager
	room          *entities.TeaRoom
	clock         game.Clock
	drag          utils.DragTracker
	readInput     func() utils.InputState

	transformSystem   *systems.TransformSystem
	cameraSystem      *systems.CameraSystem
	interactionSystem *systems.InteractionSystem
	cursorSystem      *systems.CursorSystem
	doorSystem        *systems.DoorSystem
	liftSystem        *systems.LiftSystem
	animationSystem   *systems.AnimationSystem
	overlaySystem     *systems.OverlaySystem
	renderSystem      *systems.RenderSystem

	showDebug bool
}

// NewTeaRoomScene 构建指定变体的茶室场景
//
// 参数:
//   - rm: 资源管理器（贴图、字体）
//   - settings: 观察者设置，可为 nil；有保存的相机视角时恢复
//   - variant: 已验证的变体配置
//   - seed: 粒子布局种子，同一种子得到同样的场景
func NewTeaRoomScene(rm *game.ResourceManager, settings *game.SettingsManager, variant *config.VariantConfig, seed int64) (*TeaRoomScene, error) {
	return newTeaRoomScene(rm, settings, variant, seed, utils.GetInputState, systems.NewCursorSystem())
}

func newTeaRoomScene(rm *game.ResourceManager, settings *game.SettingsManager, variant *config.VariantConfig, seed int64,
	readInput func() utils.InputState, cursor *systems.CursorSystem) (*TeaRoomScene, error) {
	if rm == nil {
		return nil, fmt.Errorf("resource manager cannot be nil")
	}

	em := ecs.NewEntityManager()
	room, err := entities.NewTeaRoom(em, variant, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, fmt.Errorf("failed to build tea room: %w", err)
	}

	cam := math3d.NewCamera(
		math3d.V3(config.CameraEyeX, config.CameraEyeY, config.CameraEyeZ),
		math3d.Vec3{},
		config.CameraFOV,
		config.WindowWidth, config.WindowHeight,
	)

	s := &TeaRoomScene{
		settings:      settings,
		variant:       variant,
		entityManager: em,
		room:          room,
		readInput:     readInput,
		cursorSystem:  cursor,
	}
	s.transformSystem = systems.NewTransformSystem(em)
	s.cameraSystem = systems.NewCameraSystem(cam)
	s.interactionSystem = systems.NewInteractionSystem(em, s.transformSystem, cam)
	s.doorSystem = systems.NewDoorSystem(em)
	s.liftSystem = systems.NewLiftSystem(em)
	s.animationSystem = systems.NewAnimationSystem(em)
	s.overlaySystem = systems.NewOverlaySystem(em)
	s.renderSystem = systems.NewRenderSystem(em, s.transformSystem, cam,
		rm.LoadImageOrPlaceholder, rm.LoadFontOrDefault(game.DefaultFont, config.LabelBaseFontSize))

	if settings != nil && settings.GetSettings().HasCamera() {
		v := settings.GetSettings()
		s.cameraSystem.SetOrbit(v.CameraAzimuth, v.CameraPolar, v.CameraDistance)
		cam.Azimuth, cam.Polar, cam.Distance = s.cameraSystem.Orbit()
		cam.Update()
		log.Printf("[TeaRoomScene] restored camera: azimuth=%.2f polar=%.2f distance=%.2f", cam.Azimuth, cam.Polar, cam.Distance)
	}

	// 首帧之前解析一次世界变换，拾取需要
	s.animationSystem.Update(0)
	s.transformSystem.Update()

	log.Printf("[TeaRoomScene] variant %q ready (seed %d)", variant.Name, seed)
	return s, nil
}

// Update 推进一帧
func (s *TeaRoomScene) Update(deltaTime float64) {
	in := s.readInput()

	// 1. 输入：按住拖动旋转相机，滚轮缩放
	dx, dy := s.drag.Update(in)
	s.cameraSystem.Update(dx, dy, in.WheelY, deltaTime)

	// 2. 交互：悬停 / 点击（拖拽中不做悬停检测）
	s.interactionSystem.Update(systems.PointerInput{
		X:      float64(in.X),
		Y:      float64(in.Y),
		Active: in.InWindow && !s.drag.IsDragging(),
		Click:  s.drag.Click(in),
	})
	s.cursorSystem.Update(s.interactionSystem.Affordance())

	// 3. 动画
	elapsed := s.clock.Tick(deltaTime)
	s.doorSystem.Update(deltaTime)
	s.liftSystem.Update(deltaTime)
	s.animationSystem.Update(elapsed)

	// 4. 叠加层挂载 / 卸载
	s.overlaySystem.Update()

	// 5. 清理并解析世界变换（供绘制和下一帧拾取）
	s.entityManager.RemoveMarkedEntities()
	s.transformSystem.Update()
}

// Draw 绘制场景
func (s *TeaRoomScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(screen)
	if s.showDebug {
		ebitenutil.DebugPrintAt(screen, s.DebugText(), 8, 8)
	}
}

// ToggleDebug 切换调试信息显示
func (s *TeaRoomScene) ToggleDebug() {
	s.showDebug = !s.showDebug
}

// DebugText 调试信息：帧统计、悬停元素、已挂载的叠加层
func (s *TeaRoomScene) DebugText() string {
	st := s.renderSystem.Stats()
	hovered := "-"
	if id := s.interactionSystem.Hovered(); id != 0 {
		if h, ok := ecs.GetComponent[*components.HoverableComponent](s.entityManager, id); ok {
			hovered = h.Name
		}
	}
	mounted := strings.Join(s.overlaySystem.Mounted(), ", ")
	if mounted == "" {
		mounted = "-"
	}
	return fmt.Sprintf("TPS %.0f  FPS %.0f\nvariant %s  t=%.1fs\nentities %d  tris %d  lines %d  particles %d  batches %d\nhover %s\noverlays %s",
		ebiten.ActualTPS(), ebiten.ActualFPS(),
		s.variant.Name, s.clock.Elapsed(),
		s.entityManager.EntityCount(), st.Triangles, st.Lines, st.Particles, st.Batches,
		hovered, mounted)
}

// Variant 返回场景的变体配置
func (s *TeaRoomScene) Variant() *config.VariantConfig {
	return s.variant
}

// Room 返回场景句柄
func (s *TeaRoomScene) Room() *entities.TeaRoom {
	return s.room
}

// SaveOnExit 保存相机视角和变体
func (s *TeaRoomScene) SaveOnExit() bool {
	s.cursorSystem.Reset()
	if s.settings == nil {
		return true
	}
	s.settings.SetCamera(s.cameraSystem.Orbit())
	s.settings.SetLastVariant(s.variant.Name)
	if err := s.settings.Save(); err != nil {
		log.Printf("[TeaRoomScene] failed to save settings: %v", err)
		return false
	}
	return true
}
