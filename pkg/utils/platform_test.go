//go:build !mobile

package utils

import "testing"

// TestIsMobile_Desktop 测试桌面端编译时 IsMobile() 返回 false
func TestIsMobile_Desktop(t *testing.T) {
	if IsMobile() {
		t.Error("IsMobile() should return false on desktop")
	}
}

// TestIsMobile_Emulate 环境变量强制启用移动模式
func TestIsMobile_Emulate(t *testing.T) {
	t.Setenv("TEAROOM_MOBILE_EMULATE", "1")
	if !IsMobile() {
		t.Error("IsMobile() should return true when TEAROOM_MOBILE_EMULATE=1")
	}
}
