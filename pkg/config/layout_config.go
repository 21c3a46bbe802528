package config

import "math"

// 布局配置常量
// 本文件定义了窗口、相机、雾效等不随变体变化的参数

// Window Configuration (窗口配置)
const (
	// WindowWidth 逻辑屏幕宽度
	WindowWidth = 1280

	// WindowHeight 逻辑屏幕高度
	WindowHeight = 720

	// FixedDeltaTime 固定时间步长（秒）
	FixedDeltaTime = 1.0 / 60.0
)

// Camera Configuration (相机配置)
// 轨道相机围绕 CameraTarget 旋转
const (
	CameraEyeX = 6.0
	CameraEyeY = 4.0
	CameraEyeZ = 7.0

	// CameraFOV 竖直视场角（度）
	CameraFOV = 50.0

	// CameraMinDistance / CameraMaxDistance 缩放限制
	CameraMinDistance = 3.0
	CameraMaxDistance = 20.0

	// CameraDamping 60Hz 下的阻尼系数
	CameraDamping = 0.08

	// CameraRotateSpeed 拖动一个屏幕高度旋转的圈数比例
	CameraRotateSpeed = 0.6

	// CameraZoomSpeed 每格滚轮的缩放倍率指数
	CameraZoomSpeed = 1.2
)

// CameraMinPolar / CameraMaxPolar 俯仰角限制（从 +Y 轴量起）
var (
	CameraMinPolar = math.Pi / 6
	CameraMaxPolar = math.Pi / 2.2
)

// Fog Configuration (雾效配置)
const (
	// BackgroundColor 背景与雾颜色
	BackgroundColor = "#1a2845"

	// FogNear / FogFar 线性雾起止距离
	FogNear = 10.0
	FogFar  = 22.0
)

// Ambient Configuration (环境粒子)
const (
	// AmbientSparkleCount 房间内漂浮的闪光数
	AmbientSparkleCount = 25

	// AmbientSparkleScale 闪光分布的立方体边长
	AmbientSparkleScale = 10.0

	// DoorSparkleCount 门前闪光数
	DoorSparkleCount = 30
)

// Text Configuration (文字)
const (
	// LabelBaseFontSize 文字图集的栅格化字号，绘制时按投影缩放
	LabelBaseFontSize = 32.0
)
