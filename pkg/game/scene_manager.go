package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于按变体名称创建场景，避免 game 与 scenes 之间的循环依赖
type SceneFactory func(variant string) (Scene, error)

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene   Scene
	currentVariant string
	sceneFactory   SceneFactory // 场景工厂函数，用于创建新场景
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or LoadVariant to set one.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// The new scene's Update and Draw methods will be called on subsequent game loop iterations.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentVariant 返回最近一次通过 LoadVariant 加载的变体名称
func (sm *SceneManager) CurrentVariant() string {
	return sm.currentVariant
}

// LoadVariant 构建并切换到指定变体的场景
//
// 切换前会让旧场景保存状态；构建失败时保持当前场景不变
func (sm *SceneManager) LoadVariant(variant string) error {
	log.Printf("[SceneManager] 加载变体: %s", variant)

	if sm.sceneFactory == nil {
		return fmt.Errorf("scene factory not set")
	}

	newScene, err := sm.sceneFactory(variant)
	if err != nil {
		return fmt.Errorf("failed to create scene for variant %q: %w", variant, err)
	}
	if newScene == nil {
		return fmt.Errorf("scene factory returned nil for variant %q", variant)
	}

	sm.SaveCurrent()
	sm.SwitchTo(newScene)
	sm.currentVariant = variant
	log.Printf("[SceneManager] 成功切换到变体: %s", variant)
	return nil
}

// SaveCurrent 如果当前场景实现了 Saveable，调用其 SaveOnExit
func (sm *SceneManager) SaveCurrent() bool {
	if s, ok := sm.currentScene.(Saveable); ok {
		return s.SaveOnExit()
	}
	return true
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
