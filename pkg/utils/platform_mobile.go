//go:build mobile

package utils

// IsMobile 移动端构建恒为 true：没有悬停，GetInputState 保留最后一次触摸位置
func IsMobile() bool {
	return true
}
