package common

// PixelsPerUnit converts physics world units to screen pixels.
const PixelsPerUnit = 32.0

// WorldToScreen maps a +Y-up world point to screen pixels for a view of
// screenHeight pixels.
func WorldToScreen(x, y float64, screenHeight int) (float64, float64) {
	return x * PixelsPerUnit, float64(screenHeight) - y*PixelsPerUnit
}
