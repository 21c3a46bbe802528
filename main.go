package main

import (
	"flag"
	"log"
	"os"

	"github.com/decker502/tearoom/pkg/app"
	"github.com/decker502/tearoom/pkg/config"
	"github.com/decker502/tearoom/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	variantFlag = flag.String("variant", "", "Scene variant to show (default: last viewed or config default)")
	seedFlag    = flag.Int64("seed", 1, "Seed for the procedural particle layout")
	configFlag  = flag.String("config", "", "Load the scene config from this path instead of the embedded one")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（assetsFS 和 dataFS 在 embed.go 中声明）
	embedded.Init(assetsFS, dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		Variant:    *variantFlag,
		Seed:       *seedFlag,
		ConfigPath: *configFlag,
	})
	if err != nil {
		// 非 verbose 模式下日志已被丢弃，启动错误仍需输出
		log.SetOutput(os.Stderr)
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(gameApp.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// 关闭窗口时先保存设置
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
	log.Println("[App] closed")
}
