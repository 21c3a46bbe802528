package config

import (
	"fmt"
	"image/color"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/decker502/tearoom/internal/particle"
	"github.com/decker502/tearoom/pkg/embedded"
	"github.com/decker502/tearoom/pkg/math3d"
	"github.com/decker502/tearoom/pkg/utils"
	"gopkg.in/yaml.v3"
)

// SceneConfigPath 内置场景配置路径
const SceneConfigPath = "data/scene.yaml"

// 可作为叠加层触发器的交互元素名称
const (
	TriggerDoorLeft  = "door.left"
	TriggerDoorRight = "door.right"
	TriggerTeapot    = "teapot"

	triggerMatPrefix     = "mat."
	triggerCupPrefix     = "cup."
	triggerCushionPrefix = "cushion."
)

// 交互元素数量（与场景构建保持一致）
const (
	TatamiMatCount = 9
	TeaCupCount    = 4
	CushionCount   = 6
)

// MatTrigger 返回第 i 块榻榻米的交互名称
func MatTrigger(i int) string { return triggerMatPrefix + strconv.Itoa(i) }

// CupTrigger 返回第 i 个茶杯的交互名称
func CupTrigger(i int) string { return triggerCupPrefix + strconv.Itoa(i) }

// CushionTrigger 返回第 i 个坐垫的交互名称
func CushionTrigger(i int) string { return triggerCushionPrefix + strconv.Itoa(i) }

// IsKnownTrigger 检查名称是否对应场景中的某个交互元素
func IsKnownTrigger(name string) bool {
	switch name {
	case TriggerDoorLeft, TriggerDoorRight, TriggerTeapot:
		return true
	}
	for prefix, count := range map[string]int{
		triggerMatPrefix:     TatamiMatCount,
		triggerCupPrefix:     TeaCupCount,
		triggerCushionPrefix: CushionCount,
	} {
		if rest, ok := strings.CutPrefix(name, prefix); ok {
			i, err := strconv.Atoi(rest)
			return err == nil && i >= 0 && i < count
		}
	}
	return false
}

// Color YAML 中以 "#rrggbb" 书写的颜色
type Color struct {
	color.RGBA
}

// Hex 解析颜色常量，失败时 panic
func Hex(s string) Color {
	return Color{utils.MustHexColor(s)}
}

// UnmarshalYAML 解析 "#rrggbb"
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := utils.ParseHexColor(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	c.RGBA = parsed
	return nil
}

// MarshalYAML 写回 "#rrggbb"
func (c Color) MarshalYAML() (interface{}, error) {
	return utils.HexString(c.RGBA), nil
}

// Point YAML 中以 [x, y, z] 书写的坐标
type Point struct {
	math3d.Vec3
}

// UnmarshalYAML 解析三元素序列
func (p *Point) UnmarshalYAML(value *yaml.Node) error {
	var xyz []float64
	if err := value.Decode(&xyz); err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	if len(xyz) != 3 {
		return fmt.Errorf("line %d: point needs 3 values, got %d", value.Line, len(xyz))
	}
	p.Vec3 = math3d.V3(xyz[0], xyz[1], xyz[2])
	return nil
}

// MarshalYAML 写回三元素序列
func (p Point) MarshalYAML() (interface{}, error) {
	return []float64{p.X, p.Y, p.Z}, nil
}

// SceneConfig 茶室场景配置
//
// 一个配置文件列出所有变体，每个变体只描述差异化常量
// （配色、门尺寸、叠加层表），场景结构由同一个构建器生成。
//
// 配置文件位置: data/scene.yaml
type SceneConfig struct {
	// DefaultVariant 未指定变体时使用的名称
	DefaultVariant string `yaml:"defaultVariant"`

	// Variants 变体表
	Variants map[string]*VariantConfig `yaml:"variants"`
}

// VariantConfig 单个变体
type VariantConfig struct {
	// Name 由加载器填充（等于 map 的键）
	Name string `yaml:"-"`

	Title   string        `yaml:"title"`
	Palette PaletteConfig `yaml:"palette"`
	Door    DoorConfig    `yaml:"door"`

	// PanelTexture 背墙纸屏贴图（可选，缺失时使用纯色）
	PanelTexture string `yaml:"panelTexture"`

	Overlays []OverlayConfig `yaml:"overlays"`
}

// PaletteConfig 交互配色
type PaletteConfig struct {
	HoverColor     Color   `yaml:"hoverColor"`
	HoverEmissive  Color   `yaml:"hoverEmissive"`
	HoverIntensity float64 `yaml:"hoverIntensity"`

	MatColor     Color   `yaml:"matColor"`
	MatEmissive  Color   `yaml:"matEmissive"`
	MatIntensity float64 `yaml:"matIntensity"`

	DoorColor     Color   `yaml:"doorColor"`
	DoorEmissive  Color   `yaml:"doorEmissive"`
	DoorIntensity float64 `yaml:"doorIntensity"`
	LatticeColor  Color   `yaml:"latticeColor"`
}

// DoorConfig 推拉门参数
type DoorConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// OpenFraction 全开时滑动距离 = OpenFraction·Width
	OpenFraction float64 `yaml:"openFraction"`

	// HoverNudge 悬停且关闭时的微移距离
	HoverNudge float64 `yaml:"hoverNudge"`

	// Approach 60Hz 下每帧逼近系数
	Approach float64 `yaml:"approach"`
}

// MaxSlide 全开滑动距离
func (d DoorConfig) MaxSlide() float64 {
	return d.Width * d.OpenFraction
}

// OverlayConfig 数据叠加层
type OverlayConfig struct {
	Name     string   `yaml:"name"`
	Anchor   Point    `yaml:"anchor"`
	Triggers []string `yaml:"triggers"`

	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`

	// Stats 常显统计面板，第一行是标题数字
	Stats []StatLineConfig `yaml:"stats"`

	Layers    []LayerConfig `yaml:"layers"`
	Jitter    JitterConfig  `yaml:"jitter"`
	Spiral    SpiralConfig  `yaml:"spiral"`
	WaveRings WaveConfig    `yaml:"waveRings"`
}

// Headline 返回统计面板的标题行（不存在时为空）
func (o *OverlayConfig) Headline() (value, unit string) {
	if len(o.Stats) > 0 {
		value = o.Stats[0].Text
	}
	if len(o.Stats) > 1 {
		unit = o.Stats[1].Text
	}
	return value, unit
}

// StatLineConfig 面板中的一行文字
type StatLineConfig struct {
	Text    string  `yaml:"text"`
	Color   Color   `yaml:"color"`
	Size    float64 `yaml:"size"`
	OffsetY float64 `yaml:"offsetY"`
}

// LayerConfig 一层环形粒子
type LayerConfig struct {
	Height float64 `yaml:"height"`
	Count  int     `yaml:"count"`
	Radius float64 `yaml:"radius"`
	Color  Color   `yaml:"color"`
}

// JitterConfig 所有层共用的随机扰动
type JitterConfig struct {
	Angle   float64        `yaml:"angle"`
	Radius  particle.Range `yaml:"radius"`
	Height  float64        `yaml:"height"`
	Size    particle.Range `yaml:"size"`
	Opacity particle.Range `yaml:"opacity"`
	Speed   particle.Range `yaml:"speed"`
}

// SpiralConfig 螺旋粒子带
type SpiralConfig struct {
	Count        int            `yaml:"count"`
	Turns        float64        `yaml:"turns"`
	Height       float64        `yaml:"height"`
	RadiusStart  float64        `yaml:"radiusStart"`
	RadiusGrowth float64        `yaml:"radiusGrowth"`
	Size         particle.Range `yaml:"size"`
	Opacity      particle.Range `yaml:"opacity"`
	Speed        particle.Range `yaml:"speed"`

	// Colors 第 i 个粒子取 Colors[0] 当 i%AccentEvery==0，否则取 Colors[1]
	Colors      []Color `yaml:"colors"`
	AccentEvery int     `yaml:"accentEvery"`
}

// WaveConfig 扩散波纹环
type WaveConfig struct {
	Count      int     `yaml:"count"`
	BaseRadius float64 `yaml:"baseRadius"`
	Step       float64 `yaml:"step"`
	DelayStep  float64 `yaml:"delayStep"`
	Colors     []Color `yaml:"colors"`
}

// RingLayer 把层配置与扰动合并为粒子采样参数
func (o *OverlayConfig) RingLayer(i int) particle.RingLayer {
	l := o.Layers[i]
	return particle.RingLayer{
		Height:       l.Height,
		Count:        l.Count,
		Radius:       l.Radius,
		RadiusJitter: o.Jitter.Radius,
		AngleJitter:  o.Jitter.Angle,
		HeightJitter: o.Jitter.Height,
		Size:         o.Jitter.Size,
		Opacity:      o.Jitter.Opacity,
		Speed:        o.Jitter.Speed,
	}
}

// SpiralLayout 螺旋粒子采样参数
func (o *OverlayConfig) SpiralLayout() particle.Spiral {
	s := o.Spiral
	return particle.Spiral{
		Count:        s.Count,
		Turns:        s.Turns,
		Height:       s.Height,
		RadiusStart:  s.RadiusStart,
		RadiusGrowth: s.RadiusGrowth,
		Size:         s.Size,
		Opacity:      s.Opacity,
		Speed:        s.Speed,
	}
}

// LoadSceneConfig 从磁盘加载场景配置
//
// 参数:
//   - path: 配置文件路径（如 "data/scene.yaml"）
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}
	return ParseSceneConfig(data)
}

// LoadEmbeddedSceneConfig 从嵌入资源加载内置场景配置
func LoadEmbeddedSceneConfig() (*SceneConfig, error) {
	data, err := embedded.ReadFile(SceneConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded scene config: %w", err)
	}
	return ParseSceneConfig(data)
}

// ParseSceneConfig 解析并验证 YAML 内容
func ParseSceneConfig(data []byte) (*SceneConfig, error) {
	var config SceneConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse scene config: %w", err)
	}
	for name, v := range config.Variants {
		if v != nil {
			v.Name = name
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}
	return &config, nil
}

// VariantNames 按字母序返回所有变体名称
func (c *SceneConfig) VariantNames() []string {
	names := make([]string, 0, len(c.Variants))
	for name := range c.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Variant 查找变体；name 为空时返回默认变体
func (c *SceneConfig) Variant(name string) (*VariantConfig, error) {
	if name == "" {
		name = c.DefaultVariant
	}
	v, ok := c.Variants[name]
	if !ok {
		return nil, fmt.Errorf("unknown variant %q (available: %s)", name, strings.Join(c.VariantNames(), ", "))
	}
	return v, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 至少一个变体，默认变体存在
//   - 门尺寸为正，逼近系数在 (0, 1]
//   - 每个叠加层至少一个触发器，且触发器名称对应场景元素
//   - 粒子层数量为正，随机区间合法
func (c *SceneConfig) Validate() error {
	if len(c.Variants) == 0 {
		return fmt.Errorf("no variants defined")
	}
	if _, ok := c.Variants[c.DefaultVariant]; !ok {
		return fmt.Errorf("default variant %q not defined", c.DefaultVariant)
	}
	for _, name := range c.VariantNames() {
		v := c.Variants[name]
		if v == nil {
			return fmt.Errorf("variant %q is empty", name)
		}
		if err := v.Validate(); err != nil {
			return fmt.Errorf("variant %q: %w", name, err)
		}
	}
	return nil
}

// Validate 验证单个变体
func (v *VariantConfig) Validate() error {
	d := v.Door
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("door size must be positive, got %.2fx%.2f", d.Width, d.Height)
	}
	if d.OpenFraction <= 0 || d.OpenFraction > 1 {
		return fmt.Errorf("door openFraction must be in (0,1], got %.2f", d.OpenFraction)
	}
	if d.Approach <= 0 || d.Approach > 1 {
		return fmt.Errorf("door approach must be in (0,1], got %.2f", d.Approach)
	}

	names := make(map[string]bool)
	for i := range v.Overlays {
		o := &v.Overlays[i]
		if o.Name == "" {
			return fmt.Errorf("overlay %d has no name", i)
		}
		if names[o.Name] {
			return fmt.Errorf("duplicate overlay %q", o.Name)
		}
		names[o.Name] = true
		if err := o.Validate(); err != nil {
			return fmt.Errorf("overlay %q: %w", o.Name, err)
		}
	}
	return nil
}

// Validate 验证叠加层
func (o *OverlayConfig) Validate() error {
	if len(o.Triggers) == 0 {
		return fmt.Errorf("no triggers")
	}
	for _, t := range o.Triggers {
		if !IsKnownTrigger(t) {
			return fmt.Errorf("unknown trigger %q", t)
		}
	}
	if len(o.Stats) == 0 {
		return fmt.Errorf("stat panel is empty")
	}
	for i, l := range o.Layers {
		if l.Count <= 0 || l.Radius <= 0 {
			return fmt.Errorf("layer %d: count and radius must be positive", i)
		}
	}
	j := o.Jitter
	if len(o.Layers) > 0 && (j.Radius.Min < 0 || j.Size.Min <= 0 || j.Speed.Min <= 0) {
		return fmt.Errorf("jitter ranges must be positive (radius %v, size %v, speed %v)", j.Radius, j.Size, j.Speed)
	}
	if j.Opacity.Min < 0 || j.Opacity.Max > 1 {
		return fmt.Errorf("jitter opacity %v outside [0,1]", j.Opacity)
	}
	s := o.Spiral
	if s.Count > 0 {
		if s.Size.Min <= 0 || s.Speed.Min <= 0 {
			return fmt.Errorf("spiral size and speed must be positive")
		}
		if len(s.Colors) == 0 {
			return fmt.Errorf("spiral needs at least one color")
		}
	}
	if o.WaveRings.Count > 0 && len(o.WaveRings.Colors) == 0 {
		return fmt.Errorf("wave rings need at least one color")
	}
	return nil
}
