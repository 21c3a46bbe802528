package components

import "github.com/decker502/tearoom/pkg/ecs"

// TeawareComponent 茶具悬停动画
//
// 悬停期间：摇摆 rot.y = BaseYaw + WobbleAmplitude·sin(WobbleFrequency·t)，
// 或以 SpinRate 匀速自转。自转角按 (悬停开始时刻, 已累计角度) 计算，
// 同一 elapsed 重复计算得到相同结果。
type TeawareComponent struct {
	Source ecs.EntityID

	BaseYaw         float64
	WobbleAmplitude float64
	WobbleFrequency float64

	SpinRate float64

	SpinAngle    float64 // 之前各次悬停累计的角度
	SpinningFrom float64 // 当前悬停开始时刻
	Spinning     bool
}
