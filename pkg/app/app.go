// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/tearoom/pkg/config"
	"github.com/decker502/tearoom/pkg/game"
	"github.com/decker502/tearoom/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "tearoom"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Variant 指定要加载的场景变体，为空则使用上次浏览的变体或默认变体
	Variant string
	// Seed 粒子布局种子
	Seed int64
	// ConfigPath 从磁盘加载场景配置，为空则使用内置配置
	ConfigPath string
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
	sceneConfig     *config.SceneConfig
	verbose         bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 使用内置配置前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	sceneConfig, err := loadSceneConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("场景配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载场景配置: %d 个变体 (%v)", len(sceneConfig.Variants), sceneConfig.VariantNames())

	// gdata 不可用时进入降级模式（设置仅保存在内存中）
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] gdata unavailable, settings will not persist: %v", err)
		gdataManager = nil
	}
	settingsManager := game.NewSettingsManager(gdataManager)

	resourceManager := game.NewResourceManager()

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(name string) (game.Scene, error) {
		variant, err := sceneConfig.Variant(name)
		if err != nil {
			return nil, err
		}
		return scenes.NewTeaRoomScene(resourceManager, settingsManager, variant, cfg.Seed)
	})

	// 确定加载哪个变体：命令行 > 上次浏览 > 默认
	variant := cfg.Variant
	if variant == "" {
		variant = settingsManager.GetSettings().LastVariant
		if _, err := sceneConfig.Variant(variant); err != nil {
			variant = ""
		}
	}
	if variant == "" {
		variant = sceneConfig.DefaultVariant
	}

	if err := sceneManager.LoadVariant(variant); err != nil {
		return nil, err
	}
	log.Printf("[App] Starting variant: %s (seed %d)", variant, cfg.Seed)

	if settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		sceneConfig:     sceneConfig,
		verbose:         cfg.Verbose,
	}, nil
}

func loadSceneConfig(path string) (*config.SceneConfig, error) {
	if path == "" {
		return config.LoadEmbeddedSceneConfig()
	}
	return config.LoadSceneConfig(path)
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 窗口关闭：保存设置后退出
	if ebiten.IsWindowBeingClosed() {
		a.sceneManager.SaveCurrent()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.WindowWidth, config.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	// Tab 切换到下一个变体
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		next := a.NextVariant()
		if err := a.sceneManager.LoadVariant(next); err != nil {
			log.Printf("[App] failed to switch variant: %v", err)
		} else {
			ebiten.SetWindowTitle(a.Title())
		}
	}

	// F3 调试信息
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		if s, ok := a.sceneManager.GetCurrentScene().(*scenes.TeaRoomScene); ok {
			s.ToggleDebug()
		}
	}

	a.sceneManager.Update(config.FixedDeltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.settingsManager.SetFullscreen(false)
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		return
	}
	ebiten.SetFullscreen(true)
	a.settingsManager.SetFullscreen(true)
}

// NextVariant 返回按字母序排在当前变体之后的变体（循环）
func (a *App) NextVariant() string {
	names := a.sceneConfig.VariantNames()
	current := a.sceneManager.CurrentVariant()
	for i, name := range names {
		if name == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear // 使用线性滤波减少锯齿和模糊
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// GetSceneManager 返回场景管理器
// 用于在窗口关闭时保存设置
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Title 返回当前变体的窗口标题
func (a *App) Title() string {
	if s, ok := a.sceneManager.GetCurrentScene().(*scenes.TeaRoomScene); ok && s.Variant().Title != "" {
		return s.Variant().Title
	}
	return "Tea Room"
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
