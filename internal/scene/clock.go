package scene

// TickSource supplies the animation time in milliseconds. It must not decrease.
type TickSource interface {
	Now() float64
}

// FrameClock derives time from a frame count, for hosts that call once per tick.
type FrameClock struct {
	TPS    int
	frames int64
}

// Advance counts one frame.
func (c *FrameClock) Advance() { c.frames++ }

func (c *FrameClock) Now() float64 {
	if c.TPS <= 0 {
		return 0
	}
	return float64(c.frames) * 1000 / float64(c.TPS)
}

// FrameMillis is the duration of one frame.
func (c *FrameClock) FrameMillis() float64 {
	if c.TPS <= 0 {
		return 0
	}
	return 1000 / float64(c.TPS)
}

// ManualClock is set explicitly; used headless.
type ManualClock struct {
	T float64
}

func (c *ManualClock) Now() float64 { return c.T }

// Driver feeds the current time to every attached scene once per Step.
type Driver struct {
	src    TickSource
	scenes []*Context
}

func NewDriver(src TickSource) *Driver {
	return &Driver{src: src}
}

// Attach adds a scene. Scenes are independent, so order does not matter.
func (d *Driver) Attach(c *Context) {
	d.scenes = append(d.scenes, c)
}

// Detach removes a scene; it stops animating but keeps its last state.
func (d *Driver) Detach(c *Context) {
	for i, s := range d.scenes {
		if s == c {
			d.scenes = append(d.scenes[:i], d.scenes[i+1:]...)
			return
		}
	}
}

func (d *Driver) Len() int { return len(d.scenes) }

// Step updates every scene for the current time and returns that time.
func (d *Driver) Step() float64 {
	t := d.src.Now()
	for _, s := range d.scenes {
		s.Update(t)
	}
	return t
}
