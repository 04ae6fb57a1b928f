package common

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Camera follows a world point, keeping it near the center of the view.
type Camera struct {
	X, Y float64
	// Smoothing is the fraction of the remaining distance covered per
	// update. Zero snaps.
	Smoothing float64
}

func (c *Camera) Follow(x, y float64) {
	if c.Smoothing <= 0 || c.Smoothing >= 1 {
		c.X, c.Y = x, y
		return
	}
	c.X = Lerp(c.X, x, c.Smoothing)
	c.Y = Lerp(c.Y, y, c.Smoothing)
}

// ToScreen maps a world position into a w by h view centered on the camera.
func (c Camera) ToScreen(x, y, w, h float64) (float64, float64) {
	return x - c.X + w/2, y - c.Y + h/2
}
