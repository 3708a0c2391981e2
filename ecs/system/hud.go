package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/brawler/common"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/player"
)

const (
	defaultFeedTTL = 60
	feedMaxLines   = 5
	feedLineHeight = 16
)

// CombatFeed lists recent combat messages on screen, each for ttl ticks.
type CombatFeed struct {
	ttl     int
	entries []feedEntry
	face    *text.GoXFace
}

type feedEntry struct {
	text string
	age  int
}

var _ player.CombatHandler = (*CombatFeed)(nil)

func NewCombatFeed(ttl int) *CombatFeed {
	if ttl <= 0 {
		ttl = defaultFeedTTL
	}
	return &CombatFeed{ttl: ttl, face: text.NewGoXFace(basicfont.Face7x13)}
}

func (f *CombatFeed) HandleCombat(action player.Action, _ player.BodyState) {
	f.entries = append(f.entries, feedEntry{text: action.Message()})
	if len(f.entries) > feedMaxLines {
		f.entries = f.entries[len(f.entries)-feedMaxLines:]
	}
}

// Update ages the entries and drops the expired ones.
func (f *CombatFeed) Update(*ecs.World) {
	kept := f.entries[:0]
	for _, e := range f.entries {
		e.age++
		if e.age < f.ttl {
			kept = append(kept, e)
		}
	}
	f.entries = kept
}

func (f *CombatFeed) Lines() []string {
	out := make([]string, len(f.entries))
	for i, e := range f.entries {
		out[i] = e.text
	}
	return out
}

func (f *CombatFeed) Draw(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	x := float64(screen.Bounds().Dx()) - 220
	for i, e := range f.entries {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, 12+float64(i*feedLineHeight))
		op.ColorScale.ScaleWithColor(color.White)
		op.ColorScale.ScaleAlpha(common.Lerp(1, 0, float32(e.age)/float32(f.ttl)))
		text.Draw(screen, e.text, f.face, op)
	}
}
