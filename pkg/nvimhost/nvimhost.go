// Package nvimhost implements pad.Host over a live Neovim msgpack-RPC
// session via github.com/neovim/go-client.
package nvimhost

import (
	"github.com/neovim/go-client/nvim"

	"github.com/vito/floatpad/pkg/pad"
)

// Host adapts *nvim.Nvim to the pad.Host contract.
type Host struct {
	v *nvim.Nvim
}

var _ pad.Host = (*Host)(nil)

// New returns a host backed by v.
func New(v *nvim.Nvim) *Host {
	return &Host{v: v}
}

func (h *Host) CurrentWindow() (pad.Window, error) {
	w, err := h.v.CurrentWindow()
	return pad.Window(w), err
}

func (h *Host) SetCurrentWindow(w pad.Window) error {
	return h.v.SetCurrentWindow(nvim.Window(w))
}

func (h *Host) CloseWindow(w pad.Window, force bool) error {
	return h.v.CloseWindow(nvim.Window(w), force)
}

func (h *Host) IsWindowValid(w pad.Window) bool {
	ok, err := h.v.IsWindowValid(nvim.Window(w))
	return err == nil && ok
}

func (h *Host) WindowInCurrentTab(w pad.Window) (bool, error) {
	tab, err := h.v.WindowTabpage(nvim.Window(w))
	if err != nil {
		return false, err
	}
	cur, err := h.v.CurrentTabpage()
	if err != nil {
		return false, err
	}
	return tab == cur, nil
}

func (h *Host) WindowBuffer(w pad.Window) (pad.Buffer, error) {
	buf, err := h.v.WindowBuffer(nvim.Window(w))
	return pad.Buffer(buf), err
}

func (h *Host) SetWindowBuffer(w pad.Window, buf pad.Buffer) error {
	return h.v.SetBufferToWindow(nvim.Window(w), nvim.Buffer(buf))
}

func (h *Host) IsBufferValid(buf pad.Buffer) bool {
	ok, err := h.v.IsBufferValid(nvim.Buffer(buf))
	return err == nil && ok
}

func (h *Host) CreateBuffer(scratch bool) (pad.Buffer, error) {
	buf, err := h.v.CreateBuffer(!scratch, scratch)
	return pad.Buffer(buf), err
}

func (h *Host) OpenFloat(buf pad.Buffer, enter bool, cfg pad.FloatConfig) (pad.Window, error) {
	w, err := h.v.OpenWindow(nvim.Buffer(buf), enter, windowConfig(cfg))
	return pad.Window(w), err
}

func (h *Host) FloatConfig(w pad.Window) (pad.FloatConfig, error) {
	wc, err := h.v.WindowConfig(nvim.Window(w))
	if err != nil || wc == nil {
		return pad.FloatConfig{}, err
	}
	return floatConfig(wc), nil
}

func (h *Host) SetFloatConfig(w pad.Window, cfg pad.FloatConfig) error {
	return h.v.SetWindowConfig(nvim.Window(w), windowConfig(cfg))
}

func (h *Host) OpenSplit(at pad.Window, vertical bool) (pad.Window, error) {
	if err := h.v.SetCurrentWindow(nvim.Window(at)); err != nil {
		return 0, err
	}
	cmd := "belowright split"
	if vertical {
		cmd = "belowright vsplit"
	}
	if err := h.v.Command(cmd); err != nil {
		return 0, err
	}
	w, err := h.v.CurrentWindow()
	return pad.Window(w), err
}

func (h *Host) WindowOption(w pad.Window, name string) (any, error) {
	var v any
	err := h.v.WindowOption(nvim.Window(w), name, &v)
	return v, err
}

func (h *Host) SetWindowOption(w pad.Window, name string, value any) error {
	return h.v.SetWindowOption(nvim.Window(w), name, value)
}

func (h *Host) OptionsInfo() ([]pad.OptionInfo, error) {
	// nvim_get_all_options_info is callable as a Vimscript builtin, which
	// keeps this to a single round trip.
	var raw map[string]map[string]interface{}
	if err := h.v.Eval("nvim_get_all_options_info()", &raw); err != nil {
		return nil, err
	}
	infos := make([]pad.OptionInfo, 0, len(raw))
	for name, info := range raw {
		scope, _ := info["scope"].(string)
		infos = append(infos, pad.OptionInfo{Name: name, Scope: scope})
	}
	return infos, nil
}

func (h *Host) SaveCurrentView() (any, error) {
	var view map[string]interface{}
	if err := h.v.Call("winsaveview", &view); err != nil {
		return nil, err
	}
	return view, nil
}

func (h *Host) RestoreCurrentView(view any) error {
	return h.v.Call("winrestview", nil, view)
}

func (h *Host) Layout() (any, error) {
	var desc []interface{}
	if err := h.v.Call("winlayout", &desc); err != nil {
		return nil, err
	}
	return desc, nil
}

func (h *Host) GridSize() (cols, rows int, err error) {
	if err := h.v.Eval("&columns", &cols); err != nil {
		return 0, 0, err
	}
	if err := h.v.Eval("&lines", &rows); err != nil {
		return 0, 0, err
	}
	return cols, rows, nil
}

func (h *Host) Notify(msg string) error {
	return h.v.WriteOut(msg + "\n")
}

func windowConfig(cfg pad.FloatConfig) *nvim.WindowConfig {
	wc := &nvim.WindowConfig{
		Relative: cfg.Relative,
		Win:      nvim.Window(cfg.Win),
		Anchor:   cfg.Anchor,
		Row:      cfg.Row,
		Col:      cfg.Col,
		Width:    cfg.Width,
		Height:   cfg.Height,
		ZIndex:   cfg.ZIndex,
		Style:    cfg.Style,
	}
	if len(cfg.Border) > 0 {
		wc.Border = append([]string(nil), cfg.Border...)
	}
	return wc
}

func floatConfig(wc *nvim.WindowConfig) pad.FloatConfig {
	cfg := pad.FloatConfig{
		Relative: wc.Relative,
		Win:      pad.Window(wc.Win),
		Anchor:   wc.Anchor,
		Row:      wc.Row,
		Col:      wc.Col,
		Width:    wc.Width,
		Height:   wc.Height,
		ZIndex:   wc.ZIndex,
		Style:    wc.Style,
	}
	if border, ok := wc.Border.([]string); ok && len(border) > 0 {
		cfg.Border = append([]string(nil), border...)
	}
	return cfg
}
