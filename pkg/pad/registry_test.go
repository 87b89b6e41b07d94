package pad_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vito/floatpad/pkg/pad"
	"github.com/vito/floatpad/pkg/pad/padtest"
)

// addPads registers n fresh floats, advancing the cursor after each add so
// the entries end up in window-creation order. Returns the windows.
func addPads(t *testing.T, h *padtest.Host, r *pad.Registry, n int) []pad.Window {
	t.Helper()
	wins := make([]pad.Window, n)
	for i := range wins {
		w := h.NewFloat(pad.FloatConfig{Relative: "editor", Width: 10, Height: 5})
		_, err := r.Add(w)
		require.NoError(t, err)
		r.SetCurrent(r.IndexOf(w))
		wins[i] = w
	}
	return wins
}

func order(r *pad.Registry) []pad.Window {
	var ws []pad.Window
	for _, e := range r.Entries() {
		ws = append(ws, e.Win)
	}
	return ws
}

func TestNextPrevRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			h := padtest.New()
			r := pad.NewRegistry(h, nil)
			addPads(t, h, r, n)

			for start := 1; start <= n; start++ {
				r.SetCurrent(start)
				r.SetCurrent(r.Next())
				assert.Equal(t, start, r.Prev(), "next then prev from %d", start)

				r.SetCurrent(start)
				r.SetCurrent(r.Prev())
				assert.Equal(t, start, r.Next(), "prev then next from %d", start)
			}
		})
	}
}

func TestNextPrevSmallRegistries(t *testing.T) {
	h := padtest.New()
	r := pad.NewRegistry(h, nil)

	assert.Equal(t, 1, r.Next())
	assert.Equal(t, 1, r.Prev())

	addPads(t, h, r, 1)
	assert.Equal(t, 1, r.Next())
	assert.Equal(t, 1, r.Prev())
}

func TestAddInsertsAfterCursor(t *testing.T) {
	t.Run("cursor inside", func(t *testing.T) {
		h := padtest.New()
		r := pad.NewRegistry(h, nil)
		wins := addPads(t, h, r, 3) // [A, B, C]
		a, b, c := wins[0], wins[1], wins[2]

		r.SetCurrent(1)
		d := h.NewFloat(pad.FloatConfig{Relative: "editor"})
		_, err := r.Add(d)
		require.NoError(t, err)

		assert.Equal(t, []pad.Window{a, d, b, c}, order(r))
		assert.Equal(t, 1, r.CurrentIndex(), "add must not move the cursor")
	})

	t.Run("cursor past the end", func(t *testing.T) {
		h := padtest.New()
		r := pad.NewRegistry(h, nil)
		wins := addPads(t, h, r, 2) // [A, B]

		r.SetCurrent(5)
		c := h.NewFloat(pad.FloatConfig{Relative: "editor"})
		_, err := r.Add(c)
		require.NoError(t, err)

		assert.Equal(t, []pad.Window{wins[0], wins[1], c}, order(r))
	})
}

func TestIndexOfAndRemove(t *testing.T) {
	h := padtest.New()
	r := pad.NewRegistry(h, nil)
	wins := addPads(t, h, r, 3)

	assert.Equal(t, 2, r.IndexOf(wins[1]))

	assert.True(t, r.Remove(wins[1]))
	assert.Equal(t, -1, r.IndexOf(wins[1]))
	assert.Equal(t, 2, r.Len())

	t.Run("non-member is a silent no-op", func(t *testing.T) {
		assert.False(t, r.Remove(pad.Window(9999)))
		assert.Equal(t, 2, r.Len())
	})

	t.Run("cursor clamps but does not rotate", func(t *testing.T) {
		r.SetCurrent(2)
		require.True(t, r.Remove(wins[2]))
		assert.Equal(t, 1, r.CurrentIndex())
	})
}

func TestShowEmptyRegistryIsNoOp(t *testing.T) {
	h := padtest.New()
	r := pad.NewRegistry(h, nil)

	require.NoError(t, r.Show(r.Current()))
	require.NoError(t, r.Toggle())

	assert.Zero(t, h.Opens)
	assert.Zero(t, h.Focuses)
}

func TestShowFocusesVisiblePad(t *testing.T) {
	h := padtest.New()
	r := pad.NewRegistry(h, nil)
	wins := addPads(t, h, r, 1)

	other := h.NewSplitWindow()
	require.NoError(t, h.SetCurrentWindow(other))
	h.Focuses = 0

	require.NoError(t, r.Show(r.Current()))

	assert.Equal(t, wins[0], h.Current)
	assert.Zero(t, h.Opens, "no window should be opened")
	assert.Equal(t, 1, h.Focuses)
}

func TestShowRecreatesHiddenPad(t *testing.T) {
	h := padtest.New()
	r := pad.NewRegistry(h, nil)
	wins := addPads(t, h, r, 1)

	h.Windows[wins[0]].View = map[string]any{"lnum": 12}
	e := r.Current()
	require.NoError(t, r.Hide(e))
	require.False(t, h.IsWindowValid(wins[0]))
	require.NotNil(t, e.State)

	require.NoError(t, r.Show(e))

	assert.Equal(t, 1, h.Opens, "exactly one window opened")
	assert.NotEqual(t, wins[0], e.Win, "a fresh handle was recorded")
	assert.True(t, e.Visible(h))
	assert.Equal(t, map[string]any{"lnum": 12}, h.Windows[e.Win].View, "saved view restored")
}

func TestShowClosesStrayTabHandle(t *testing.T) {
	h := padtest.New()
	r := pad.NewRegistry(h, nil)
	wins := addPads(t, h, r, 1)

	// The pad's window survives, but in another tabpage.
	h.Windows[wins[0]].Tab = 2

	require.NoError(t, r.Show(r.Current()))

	assert.False(t, h.IsWindowValid(wins[0]), "stray handle closed")
	assert.Equal(t, 1, h.Opens)
	assert.True(t, r.Current().Visible(h))
}

func TestShowFallsBackToScratchBuffer(t *testing.T) {
	h := padtest.New()
	r := pad.NewRegistry(h, nil)
	wins := addPads(t, h, r, 1)
	e := r.Current()

	dead := e.Buf
	require.NoError(t, h.CloseWindow(wins[0], true))
	delete(h.Buffers, dead)

	require.NoError(t, r.Show(e))

	assert.True(t, e.Visible(h))
	assert.NotEqual(t, dead, e.Buf)
	assert.True(t, h.IsBufferValid(e.Buf))
}

func TestShowToleratesHostRefusal(t *testing.T) {
	h := padtest.New()
	r := pad.NewRegistry(h, nil)
	wins := addPads(t, h, r, 1)
	e := r.Current()
	require.NoError(t, h.CloseWindow(wins[0], true))

	h.RefuseOpen = true
	require.NoError(t, r.Show(e))

	assert.Equal(t, wins[0], e.Win, "entry left untouched on refusal")
	assert.False(t, e.Visible(h))
}

func TestHideSavesStateAndClosesWindow(t *testing.T) {
	h := padtest.New()
	r := pad.NewRegistry(h, nil)
	wins := addPads(t, h, r, 1)
	e := r.Current()

	h.Windows[wins[0]].Options["wrap"] = false
	h.Windows[wins[0]].View = map[string]any{"topline": 4}

	require.NoError(t, r.Hide(e))

	assert.False(t, h.IsWindowValid(wins[0]))
	require.NotNil(t, e.State)
	assert.Equal(t, false, e.State.Options["wrap"])
	assert.Equal(t, map[string]any{"topline": 4}, e.State.View)

	t.Run("hiding again is a no-op", func(t *testing.T) {
		require.NoError(t, r.Hide(e))
	})
}

func TestToggle(t *testing.T) {
	h := padtest.New()
	r := pad.NewRegistry(h, nil)
	addPads(t, h, r, 1)
	e := r.Current()

	require.NoError(t, r.Toggle())
	assert.False(t, e.Visible(h))

	require.NoError(t, r.Toggle())
	assert.True(t, e.Visible(h))
}

func TestCycleShowsOnePadAtATime(t *testing.T) {
	h := padtest.New()
	r := pad.NewRegistry(h, nil)
	addPads(t, h, r, 3)
	r.SetCurrent(1)

	// Start from the steady state: only the current pad on screen.
	require.NoError(t, r.Hide(r.Entries()[1]))
	require.NoError(t, r.Hide(r.Entries()[2]))

	require.NoError(t, r.Cycle(1))
	assert.Equal(t, 2, r.CurrentIndex())

	visible := 0
	for _, e := range r.Entries() {
		if e.Visible(h) {
			visible++
		}
	}
	assert.Equal(t, 1, visible, "only the current pad is on screen")

	require.NoError(t, r.Cycle(-1))
	assert.Equal(t, 1, r.CurrentIndex())
}

func TestWindowLeftRefreshesEntry(t *testing.T) {
	h := padtest.New()
	r := pad.NewRegistry(h, nil)
	wins := addPads(t, h, r, 1)
	e := r.Current()

	moved := e.Config
	moved.Row += 3
	require.NoError(t, h.SetFloatConfig(wins[0], moved))

	r.WindowLeft(wins[0])
	assert.Equal(t, moved, e.Config)

	t.Run("non-member is ignored", func(t *testing.T) {
		r.WindowLeft(pad.Window(12345))
	})
}

func TestWindowClosedKeepsEntryForRecreation(t *testing.T) {
	h := padtest.New()
	r := pad.NewRegistry(h, nil)
	wins := addPads(t, h, r, 1)

	require.NoError(t, h.CloseWindow(wins[0], true))
	r.WindowClosed(wins[0])

	assert.Equal(t, 1, r.Len())
	require.NoError(t, r.Show(r.Current()))
	assert.True(t, r.Current().Visible(h))
}
