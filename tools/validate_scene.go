//go:build ignore

// validate_scene 校验场景配置文件
//
// 用法: go run tools/validate_scene.go [data/scene.yaml]
package main

import (
	"fmt"
	"os"

	"github.com/decker502/tearoom/pkg/config"
)

func main() {
	path := config.SceneConfigPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("❌ 读取文件失败: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.ParseSceneConfig(data)
	if err != nil {
		fmt.Printf("❌ 场景配置无效: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ YAML 格式正确\n")
	fmt.Printf("✅ 默认变体: %s\n", cfg.DefaultVariant)

	triggers := 0
	for _, name := range cfg.VariantNames() {
		v, _ := cfg.Variant(name)
		fmt.Printf("✅ %-16s %d 个叠加层\n", name, len(v.Overlays))
		for _, o := range v.Overlays {
			triggers += len(o.Triggers)
		}
	}
	fmt.Printf("✅ 共 %d 个触发绑定\n", triggers)
}
