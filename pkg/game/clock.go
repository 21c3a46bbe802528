package game

// Clock 场景时钟
//
// 以固定步长累加，动画系统只读取 Elapsed，
// 同一帧内重复读取得到相同的时间。
type Clock struct {
	elapsed float64
	frames  uint64
}

// Tick 推进一帧，返回推进后的累计时间（秒）
// 非正的步长被忽略
func (c *Clock) Tick(dt float64) float64 {
	if dt > 0 {
		c.elapsed += dt
		c.frames++
	}
	return c.elapsed
}

// Elapsed 返回累计时间（秒）
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// Frames 返回已推进的帧数
func (c *Clock) Frames() uint64 {
	return c.frames
}

// Reset 归零
func (c *Clock) Reset() {
	c.elapsed = 0
	c.frames = 0
}
