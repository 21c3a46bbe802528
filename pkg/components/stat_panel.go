package components

import "image/color"

// StatLine 面板中的一行文字
type StatLine struct {
	Text    string
	Color   color.RGBA
	Size    float64 // 字高（米）
	OffsetY float64 // 相对面板原点的竖直偏移（米）
}

// StatPanelComponent 朝向相机的文字面板（标题、统计数字、详情）
// 创建后不再修改
type StatPanelComponent struct {
	Lines []StatLine
}
