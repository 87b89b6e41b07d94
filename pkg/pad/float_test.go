package pad_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vito/floatpad/pkg/pad"
	"github.com/vito/floatpad/pkg/pad/padtest"
)

func TestMove(t *testing.T) {
	newFloat := func(row, col float64) (*padtest.Host, pad.Window) {
		h := padtest.New() // 120x40 grid
		w := h.NewFloat(pad.FloatConfig{
			Relative: "editor",
			Row:      row, Col: col,
			Width: 20, Height: 10,
		})
		return h, w
	}

	t.Run("moves by count cells", func(t *testing.T) {
		h, w := newFloat(5, 10)
		require.NoError(t, pad.Move(h, w, "right", 3))
		assert.Equal(t, 13.0, h.Windows[w].Config.Col)
		assert.Equal(t, 5.0, h.Windows[w].Config.Row)

		require.NoError(t, pad.Move(h, w, "down", 2))
		assert.Equal(t, 7.0, h.Windows[w].Config.Row)
	})

	t.Run("count below one moves by one", func(t *testing.T) {
		h, w := newFloat(5, 10)
		require.NoError(t, pad.Move(h, w, "up", 0))
		assert.Equal(t, 4.0, h.Windows[w].Config.Row)
	})

	t.Run("clamps at the grid edges", func(t *testing.T) {
		h, w := newFloat(5, 10)
		require.NoError(t, pad.Move(h, w, "left", 999))
		assert.Equal(t, 0.0, h.Windows[w].Config.Col)

		require.NoError(t, pad.Move(h, w, "right", 999))
		assert.Equal(t, 100.0, h.Windows[w].Config.Col, "cols - width")

		require.NoError(t, pad.Move(h, w, "down", 999))
		assert.Equal(t, 28.0, h.Windows[w].Config.Row, "rows - height - 2")
	})

	t.Run("unknown direction errors", func(t *testing.T) {
		h, w := newFloat(5, 10)
		assert.Error(t, pad.Move(h, w, "sideways", 1))
	})

	t.Run("non-float window is left alone", func(t *testing.T) {
		h := padtest.New()
		w := h.NewSplitWindow()
		require.NoError(t, pad.Move(h, w, "left", 1))
		assert.Equal(t, pad.FloatConfig{}, h.Windows[w].Config)
	})

	t.Run("closed window is left alone", func(t *testing.T) {
		h, w := newFloat(5, 10)
		require.NoError(t, h.CloseWindow(w, true))
		require.NoError(t, pad.Move(h, w, "left", 1))
	})
}

func TestPlace(t *testing.T) {
	h := padtest.New() // 120x40 grid
	w := h.NewFloat(pad.FloatConfig{
		Relative: "editor",
		Row:      5, Col: 10,
		Width: 20, Height: 10,
	})

	for _, tc := range []struct {
		pos      string
		row, col float64
	}{
		{"topleft", 0, 0},
		{"topright", 0, 100},
		{"botleft", 28, 0},
		{"botright", 28, 100},
		{"center", 14, 50},
	} {
		t.Run(tc.pos, func(t *testing.T) {
			require.NoError(t, pad.Place(h, w, tc.pos))
			assert.Equal(t, tc.row, h.Windows[w].Config.Row)
			assert.Equal(t, tc.col, h.Windows[w].Config.Col)
			assert.Equal(t, 20, h.Windows[w].Config.Width, "size unchanged")
		})
	}

	t.Run("unknown placement errors", func(t *testing.T) {
		assert.Error(t, pad.Place(h, w, "middle"))
	})
}

func TestDirectionsAndPlacements(t *testing.T) {
	assert.Equal(t, []string{"down", "left", "right", "up"}, pad.Directions())
	assert.Contains(t, pad.Placements(), "center")
}

func TestBorderChars(t *testing.T) {
	for _, style := range []string{"single", "double", "rounded"} {
		assert.Len(t, pad.BorderChars(style), 8, style)
	}
	assert.Nil(t, pad.BorderChars("none"))
	assert.Nil(t, pad.BorderChars("fancy"))
}
