package pad

import (
	"fmt"
	"slices"

	"github.com/vito/floatpad/pkg/geom"
)

var directions = map[string]geom.Vec2{
	"left":  {X: -1},
	"right": {X: 1},
	"up":    {Y: -1},
	"down":  {Y: 1},
}

// Directions returns the recognized move directions, sorted.
func Directions() []string {
	ds := make([]string, 0, len(directions))
	for d := range directions {
		ds = append(ds, d)
	}
	slices.Sort(ds)
	return ds
}

// Placements returns the recognized named placements.
func Placements() []string {
	return []string{"center", "topleft", "topright", "botleft", "botright"}
}

// Move shifts the floating window w by count grid cells in the named
// direction, clamped so the float stays on the editor grid. Windows that
// are not floating, or already gone, are left alone.
func Move(h Host, w Window, dir string, count int) error {
	d, ok := directions[dir]
	if !ok {
		return fmt.Errorf("unknown direction %q", dir)
	}
	if count < 1 {
		count = 1
	}

	cfg, err := h.FloatConfig(w)
	if err != nil || !cfg.IsFloat() {
		return nil
	}
	cols, rows, err := h.GridSize()
	if err != nil {
		return err
	}

	off := d.Scale(count)
	cfg.Col = float64(geom.Clamp(int(cfg.Col)+off.X, 0, max(0, cols-cfg.Width)))
	cfg.Row = float64(geom.Clamp(int(cfg.Row)+off.Y, 0, maxRow(rows, cfg.Height)))
	return h.SetFloatConfig(w, cfg)
}

// Place moves the floating window w to a named placement on the editor
// grid, keeping its size. Windows that are not floating, or already gone,
// are left alone.
func Place(h Host, w Window, pos string) error {
	if !slices.Contains(Placements(), pos) {
		return fmt.Errorf("unknown placement %q (expected one of center, topleft, topright, botleft, botright)", pos)
	}

	cfg, err := h.FloatConfig(w)
	if err != nil || !cfg.IsFloat() {
		return nil
	}
	cols, rows, err := h.GridSize()
	if err != nil {
		return err
	}

	cfg.Row, cfg.Col = Placement(pos, cols, rows, cfg.Width, cfg.Height)
	return h.SetFloatConfig(w, cfg)
}

// Placement computes the top-left cell for a named position of a w x h
// float on a cols x rows grid.
func Placement(pos string, cols, rows, w, h int) (row, col float64) {
	right := float64(max(0, cols-w))
	bottom := float64(maxRow(rows, h))
	switch pos {
	case "topleft":
		return 0, 0
	case "topright":
		return 0, right
	case "botleft":
		return bottom, 0
	case "botright":
		return bottom, right
	default: // center
		return float64(maxRow(rows, h) / 2), float64(max(0, cols-w) / 2)
	}
}

// maxRow is the lowest row a float of the given height can sit at while
// leaving the status and command lines visible.
func maxRow(rows, height int) int {
	return max(0, rows-height-2)
}

// BorderChars returns the eight border characters for a named border
// style, clockwise from the top-left corner, or nil for "none" and
// unrecognized names.
func BorderChars(style string) []string {
	switch style {
	case "single":
		return []string{"┌", "─", "┐", "│", "┘", "─", "└", "│"}
	case "double":
		return []string{"╔", "═", "╗", "║", "╝", "═", "╚", "║"}
	case "rounded":
		return []string{"╭", "─", "╮", "│", "╯", "─", "╰", "│"}
	}
	return nil
}
