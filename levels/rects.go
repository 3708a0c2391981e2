package levels

// Rect is a block of tiles: X, Y is the top-left tile, W and H count tiles.
type Rect struct {
	X, Y, W, H int
}

// SolidRects merges the non-zero tiles of a layer into rectangles, growing
// each one right first and then down. Every solid tile lands in exactly one
// rectangle.
func (l *Level) SolidRects(layer int) []Rect {
	if layer < 0 || layer >= len(l.Layers) {
		return nil
	}
	tiles := l.Layers[layer]
	if len(tiles) != l.Width*l.Height {
		return nil
	}

	solid := func(idx int, processed []bool) bool {
		return !processed[idx] && tiles[idx] != 0
	}

	var rects []Rect
	processed := make([]bool, len(tiles))
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if !solid(y*l.Width+x, processed) {
				continue
			}

			w := 1
			for x+w < l.Width && solid(y*l.Width+x+w, processed) {
				w++
			}

			h := 1
		grow:
			for y+h < l.Height {
				for xi := x; xi < x+w; xi++ {
					if !solid((y+h)*l.Width+xi, processed) {
						break grow
					}
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*l.Width+xx] = true
				}
			}
			rects = append(rects, Rect{X: x, Y: y, W: w, H: h})
		}
	}
	return rects
}

// LayerRects holds the merged rectangles of one layer.
type LayerRects struct {
	Layer int
	Rects []Rect
}

// PhysicsRects returns the merged rectangles of every physics layer, in
// layer order. Layers without solid tiles are skipped.
func (l *Level) PhysicsRects() []LayerRects {
	var out []LayerRects
	for i := range l.Layers {
		if !l.Meta(i).Physics {
			continue
		}
		if rects := l.SolidRects(i); len(rects) > 0 {
			out = append(out, LayerRects{Layer: i, Rects: rects})
		}
	}
	return out
}
