package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

const DefaultLevel = "arena"

var ErrInvalidLevel = errors.New("levels: invalid level")

// Level is a tile map. Layers are row-major with row 0 at the top.
type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Spawn     Spawn       `json:"spawn"`
}

type LayerMeta struct {
	Physics bool   `json:"physics"`
	Color   string `json:"color,omitempty"`
}

// Spawn is a tile coordinate, row 0 at the top.
type Spawn struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Load reads a level by name from disk first, then from the embedded set.
func Load(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	data, err := os.ReadFile(filepath.Join("levels", clean))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", clean, err)
	}
	return Parse(data, clean)
}

func Parse(data []byte, name string) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("levels: validate %s: %w", name, err)
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidLevel, l.Width, l.Height)
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("%w: layer %d has %d tiles, want %d", ErrInvalidLevel, i, len(layer), l.Width*l.Height)
		}
	}
	if len(l.LayerMeta) > len(l.Layers) {
		return fmt.Errorf("%w: %d layer_meta entries for %d layers", ErrInvalidLevel, len(l.LayerMeta), len(l.Layers))
	}
	if l.Spawn.X < 0 || l.Spawn.X >= l.Width || l.Spawn.Y < 0 || l.Spawn.Y >= l.Height {
		return fmt.Errorf("%w: spawn (%d,%d) outside the map", ErrInvalidLevel, l.Spawn.X, l.Spawn.Y)
	}
	return nil
}

// Meta returns the metadata of layer i, zero when none is set.
func (l *Level) Meta(i int) LayerMeta {
	if i < 0 || i >= len(l.LayerMeta) {
		return LayerMeta{}
	}
	return l.LayerMeta[i]
}

func cleanLevelPath(name string) string {
	if name == "" {
		name = DefaultLevel
	}
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if !strings.HasSuffix(s, ".json") {
		s += ".json"
	}
	return s
}
