// Package pad implements the scratchpad collection: an ordered, cyclable
// set of floating windows that can be shown and hidden one at a time, with
// their view and window-local options preserved across hide/show.
//
// The package talks to the hosting editor exclusively through the Host
// interface; pkg/nvimhost provides the production implementation over
// Neovim's msgpack-RPC API, and pkg/pad/padtest provides an in-memory one
// for tests.
package pad

// Window and Buffer are host window and buffer handles. They match
// Neovim's numeric handle representation; zero and negative values never
// refer to a live object.
type (
	Window int
	Buffer int
)

// FloatConfig is the placement of a floating window. It is the typed
// subset of the host's float configuration that the scratchpad records and
// replays; Border holds the eight border characters (see BorderChars).
type FloatConfig struct {
	Relative string // "editor", "win", "cursor"; empty for non-floats
	Win      Window // anchor window when Relative == "win"
	Anchor   string
	Row      float64
	Col      float64
	Width    int
	Height   int
	ZIndex   int
	Style    string
	Border   []string
}

// IsFloat reports whether the configuration describes a floating window.
// Normal splits report an empty Relative.
func (c FloatConfig) IsFloat() bool {
	return c.Relative != ""
}

// OptionInfo describes one host option. Scope is the option's declared
// scope: "global", "win", or "buf".
type OptionInfo struct {
	Name  string
	Scope string
}

// Host is the contract the scratchpad core consumes from the hosting
// editor. All calls run on the editor's event loop, but a hook can fire
// between any two of them, so every call can find its target already gone;
// implementations report that as an error which the core treats as "not
// found", never as fatal.
type Host interface {
	CurrentWindow() (Window, error)
	SetCurrentWindow(Window) error
	CloseWindow(w Window, force bool) error
	IsWindowValid(Window) bool
	// WindowInCurrentTab reports whether w is part of the active tabpage.
	WindowInCurrentTab(Window) (bool, error)

	WindowBuffer(Window) (Buffer, error)
	SetWindowBuffer(Window, Buffer) error
	IsBufferValid(Buffer) bool
	CreateBuffer(scratch bool) (Buffer, error)

	// OpenFloat opens a floating window showing buf. A non-positive
	// returned handle means the host refused; callers must check before
	// use.
	OpenFloat(buf Buffer, enter bool, cfg FloatConfig) (Window, error)
	FloatConfig(Window) (FloatConfig, error)
	SetFloatConfig(Window, FloatConfig) error
	// OpenSplit opens a new split below or to the right of the window at.
	OpenSplit(at Window, vertical bool) (Window, error)

	WindowOption(w Window, name string) (any, error)
	SetWindowOption(w Window, name string, value any) error
	// OptionsInfo enumerates every host option with its declared scope.
	OptionsInfo() ([]OptionInfo, error)

	// SaveCurrentView and RestoreCurrentView round-trip the current
	// window's cursor/scroll position as an opaque blob.
	SaveCurrentView() (any, error)
	RestoreCurrentView(view any) error

	// Layout returns the host's nested kind/payload description of the
	// current split layout, in the shape layout.Build consumes.
	Layout() (any, error)
	GridSize() (cols, rows int, err error)

	Notify(msg string) error
}

// InWindow runs fn with w as the current window, restoring the previously
// current window on every exit path, including error exits.
func InWindow(h Host, w Window, fn func() error) error {
	prev, err := h.CurrentWindow()
	if err != nil {
		return err
	}
	if err := h.SetCurrentWindow(w); err != nil {
		return err
	}
	defer func() {
		// The previous window can be gone by now; nothing to restore then.
		_ = h.SetCurrentWindow(prev)
	}()
	return fn()
}
