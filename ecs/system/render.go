package system

import (
	"image"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/brawler/common"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

// accentFraction is the share of a sprite's width painted with its accent.
const accentFraction = 0.25

type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screenH := screen.Bounds().Dy()

	type drawable struct {
		e ecs.Entity
		t *component.Transform
		s *component.Sprite
	}
	var items []drawable
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, t *component.Transform, s *component.Sprite) {
		items = append(items, drawable{e: e, t: t, s: s})
	})
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].s.Layer != items[j].s.Layer {
			return items[i].s.Layer < items[j].s.Layer
		}
		return uint64(items[i].e) < uint64(items[j].e)
	})

	for _, it := range items {
		t, s := it.t, it.s
		img := spriteImage(s)
		if img == nil {
			continue
		}

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}

		b := img.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
		// Negative ScaleX mirrors the sprite around its centre.
		op.GeoM.Scale(sx, sy)
		// World angles are counter-clockwise with +Y up; the screen is +Y down.
		op.GeoM.Rotate(-t.Rotation)
		x, y := common.WorldToScreen(t.X, t.Y, screenH)
		op.GeoM.Translate(x, y)
		screen.DrawImage(img, op)
	}
}

// spriteImage builds the sprite's image on first use.
func spriteImage(s *component.Sprite) *ebiten.Image {
	if s.Image != nil {
		return s.Image
	}
	wpx := int(math.Round(s.Width * common.PixelsPerUnit))
	hpx := int(math.Round(s.Height * common.PixelsPerUnit))
	if wpx <= 0 || hpx <= 0 {
		return nil
	}
	img := ebiten.NewImage(wpx, hpx)
	img.Fill(s.Color)
	if s.Accent.A > 0 {
		strip := int(math.Max(1, math.Round(float64(wpx)*accentFraction)))
		sub := img.SubImage(image.Rect(wpx-strip, 0, wpx, hpx)).(*ebiten.Image)
		sub.Fill(s.Accent)
	}
	s.Image = img
	return img
}
