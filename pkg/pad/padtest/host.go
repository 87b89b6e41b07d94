// Package padtest provides an in-memory pad.Host for exercising the
// scratchpad core without a running editor.
package padtest

import (
	"fmt"

	"github.com/vito/floatpad/pkg/pad"
)

// Window is the fake's record of one open window.
type Window struct {
	Buf     pad.Buffer
	Config  pad.FloatConfig
	Options map[string]any
	View    any
	Tab     int
}

// Split records one OpenSplit call.
type Split struct {
	At       pad.Window
	Vertical bool
	Win      pad.Window
}

// Host is an in-memory pad.Host. The zero value is not usable; construct
// with New. Fields are exported so tests can arrange window state directly
// and assert on the calls the core made.
type Host struct {
	Windows map[pad.Window]*Window
	Buffers map[pad.Buffer]bool
	Current pad.Window
	Tab     int

	Cols, Rows int
	LayoutDesc any
	OptInfo    []pad.OptionInfo

	// RefuseOpen makes OpenFloat answer with handle 0, the host's way of
	// declining.
	RefuseOpen bool
	// BadOptions lists window option names whose get/set always errors.
	BadOptions map[string]bool

	Opens   int // OpenFloat calls
	Focuses int // SetCurrentWindow calls
	Splits  []Split
	Notices []string

	nextWin pad.Window
	nextBuf pad.Buffer
}

var _ pad.Host = (*Host)(nil)

// New returns a host with an empty 120x40 grid, tabpage 1, and a small
// option table containing both window-scoped and non-window options.
func New() *Host {
	return &Host{
		Windows: make(map[pad.Window]*Window),
		Buffers: make(map[pad.Buffer]bool),
		Tab:     1,
		Cols:    120,
		Rows:    40,
		OptInfo: []pad.OptionInfo{
			{Name: "number", Scope: "win"},
			{Name: "wrap", Scope: "win"},
			{Name: "winblend", Scope: "win"},
			{Name: "filetype", Scope: "buf"},
			{Name: "mouse", Scope: "global"},
		},
		nextWin: 1000,
		nextBuf: 1,
	}
}

// NewFloat opens a floating window with a fresh buffer and focuses it.
func (h *Host) NewFloat(cfg pad.FloatConfig) pad.Window {
	if !cfg.IsFloat() {
		cfg.Relative = "editor"
	}
	buf := h.newBuffer()
	w := h.addWindow(buf, cfg)
	h.Current = w
	return w
}

// NewSplitWindow opens a non-floating window with a fresh buffer.
func (h *Host) NewSplitWindow() pad.Window {
	return h.addWindow(h.newBuffer(), pad.FloatConfig{})
}

func (h *Host) addWindow(buf pad.Buffer, cfg pad.FloatConfig) pad.Window {
	h.nextWin++
	w := h.nextWin
	h.Windows[w] = &Window{
		Buf:     buf,
		Config:  cfg,
		Options: map[string]any{"number": false, "wrap": true, "winblend": 0},
		Tab:     h.Tab,
	}
	return w
}

func (h *Host) newBuffer() pad.Buffer {
	h.nextBuf++
	h.Buffers[h.nextBuf] = true
	return h.nextBuf
}

func (h *Host) win(w pad.Window) (*Window, error) {
	fw, ok := h.Windows[w]
	if !ok {
		return nil, fmt.Errorf("invalid window %d", w)
	}
	return fw, nil
}

func (h *Host) CurrentWindow() (pad.Window, error) {
	return h.Current, nil
}

func (h *Host) SetCurrentWindow(w pad.Window) error {
	if _, err := h.win(w); err != nil {
		return err
	}
	h.Current = w
	h.Focuses++
	return nil
}

func (h *Host) CloseWindow(w pad.Window, force bool) error {
	if _, err := h.win(w); err != nil {
		return err
	}
	delete(h.Windows, w)
	if h.Current == w {
		h.Current = 0
	}
	return nil
}

func (h *Host) IsWindowValid(w pad.Window) bool {
	_, ok := h.Windows[w]
	return ok
}

func (h *Host) WindowInCurrentTab(w pad.Window) (bool, error) {
	fw, err := h.win(w)
	if err != nil {
		return false, err
	}
	return fw.Tab == h.Tab, nil
}

func (h *Host) WindowBuffer(w pad.Window) (pad.Buffer, error) {
	fw, err := h.win(w)
	if err != nil {
		return 0, err
	}
	return fw.Buf, nil
}

func (h *Host) SetWindowBuffer(w pad.Window, buf pad.Buffer) error {
	fw, err := h.win(w)
	if err != nil {
		return err
	}
	if !h.Buffers[buf] {
		return fmt.Errorf("invalid buffer %d", buf)
	}
	fw.Buf = buf
	return nil
}

func (h *Host) IsBufferValid(buf pad.Buffer) bool {
	return h.Buffers[buf]
}

func (h *Host) CreateBuffer(scratch bool) (pad.Buffer, error) {
	return h.newBuffer(), nil
}

func (h *Host) OpenFloat(buf pad.Buffer, enter bool, cfg pad.FloatConfig) (pad.Window, error) {
	if h.RefuseOpen {
		return 0, nil
	}
	if !h.Buffers[buf] {
		return 0, fmt.Errorf("invalid buffer %d", buf)
	}
	h.Opens++
	w := h.addWindow(buf, cfg)
	if enter {
		h.Current = w
	}
	return w, nil
}

func (h *Host) FloatConfig(w pad.Window) (pad.FloatConfig, error) {
	fw, err := h.win(w)
	if err != nil {
		return pad.FloatConfig{}, err
	}
	return fw.Config, nil
}

func (h *Host) SetFloatConfig(w pad.Window, cfg pad.FloatConfig) error {
	fw, err := h.win(w)
	if err != nil {
		return err
	}
	fw.Config = cfg
	return nil
}

func (h *Host) OpenSplit(at pad.Window, vertical bool) (pad.Window, error) {
	if _, err := h.win(at); err != nil {
		return 0, err
	}
	w := h.addWindow(h.newBuffer(), pad.FloatConfig{})
	h.Splits = append(h.Splits, Split{At: at, Vertical: vertical, Win: w})
	h.Current = w
	return w, nil
}

func (h *Host) WindowOption(w pad.Window, name string) (any, error) {
	fw, err := h.win(w)
	if err != nil {
		return nil, err
	}
	if h.BadOptions[name] {
		return nil, fmt.Errorf("unknown option %q", name)
	}
	v, ok := fw.Options[name]
	if !ok {
		return nil, fmt.Errorf("unknown option %q", name)
	}
	return v, nil
}

func (h *Host) SetWindowOption(w pad.Window, name string, value any) error {
	fw, err := h.win(w)
	if err != nil {
		return err
	}
	if h.BadOptions[name] {
		return fmt.Errorf("unknown option %q", name)
	}
	fw.Options[name] = value
	return nil
}

func (h *Host) OptionsInfo() ([]pad.OptionInfo, error) {
	return h.OptInfo, nil
}

func (h *Host) SaveCurrentView() (any, error) {
	fw, err := h.win(h.Current)
	if err != nil {
		return nil, err
	}
	return fw.View, nil
}

func (h *Host) RestoreCurrentView(view any) error {
	fw, err := h.win(h.Current)
	if err != nil {
		return err
	}
	fw.View = view
	return nil
}

func (h *Host) Layout() (any, error) {
	return h.LayoutDesc, nil
}

func (h *Host) GridSize() (cols, rows int, err error) {
	return h.Cols, h.Rows, nil
}

func (h *Host) Notify(msg string) error {
	h.Notices = append(h.Notices, msg)
	return nil
}
