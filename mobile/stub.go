//go:build !mobile

// stub.go - 桌面端构建时的占位文件
//
// 绑定入口在 mobile.go / embed.go 中，只在 -tags mobile 时编译；
// 普通构建（go build ./...）只看到这个空包。
package mobile

// Dummy 是一个空导出函数，保证包在桌面端也能被引用
func Dummy() {}
