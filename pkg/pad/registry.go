package pad

import (
	"log/slog"
	"slices"

	"github.com/pkg/errors"

	"github.com/vito/floatpad/pkg/geom"
)

// Entry is one member of the scratchpad collection.
type Entry struct {
	Win    Window       // last known window handle; stale once the window closes
	Buf    Buffer       // buffer shown in the window, refreshed on focus loss
	Config FloatConfig  // last known float placement, refreshed on focus loss
	State  *WindowState // populated while hidden, consumed when shown again
}

// Visible reports whether the entry's window handle currently refers to a
// live window.
func (e *Entry) Visible(h Host) bool {
	return e.Win > 0 && h.IsWindowValid(e.Win)
}

// Registry is the ordered scratchpad collection. Insertion order is the
// cycle order; current is a 1-based cursor into the entries.
//
// One Registry is owned by the plugin host for the editor session and
// injected into every command handler; it is mutated only by the
// add/remove/show operations and the focus-loss/window-closed hooks, all of
// which the host serializes on its event loop.
type Registry struct {
	host    Host
	log     *slog.Logger
	entries []*Entry
	current int
}

// NewRegistry returns an empty registry operating against h.
func NewRegistry(h Host, log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{host: h, log: log, current: 1}
}

// Len returns the number of registered pads.
func (r *Registry) Len() int { return len(r.entries) }

// Entries returns the pads in cycle order. The slice is the registry's
// own; callers must treat it as read-only.
func (r *Registry) Entries() []*Entry { return r.entries }

// CurrentIndex returns the 1-based cursor position. The value may sit past
// the end after removals; operations clamp it on use.
func (r *Registry) CurrentIndex() int { return r.current }

// SetCurrent moves the cursor to i. Values below 1 are clamped up; values
// past the end are kept as-is, matching how removals can already leave the
// cursor dangling (the cyclic arithmetic tolerates it).
func (r *Registry) SetCurrent(i int) {
	r.current = max(1, i)
}

// Current returns the entry under the cursor, or nil when the registry is
// empty.
func (r *Registry) Current() *Entry {
	if len(r.entries) == 0 {
		return nil
	}
	return r.entries[geom.Clamp(r.current, 1, len(r.entries))-1]
}

// IndexOf returns w's 1-based position in the cycle order, or -1 when w is
// not a pad.
func (r *Registry) IndexOf(w Window) int {
	for i, e := range r.entries {
		if e.Win == w {
			return i + 1
		}
	}
	return -1
}

// Add registers the window w as a new pad, capturing its current buffer
// and float configuration. The new pad is inserted immediately after the
// cursor, or at the end when the cursor is past the end, so newly added
// pads stay adjacent to the one being viewed. The cursor itself does not
// move; callers that want the new pad focused advance it separately.
//
// w is assumed to be a valid, currently open window.
func (r *Registry) Add(w Window) (*Entry, error) {
	buf, err := r.host.WindowBuffer(w)
	if err != nil {
		return nil, errors.Wrap(err, "reading pad buffer")
	}
	cfg, err := r.host.FloatConfig(w)
	if err != nil {
		return nil, errors.Wrap(err, "reading float config")
	}

	e := &Entry{Win: w, Buf: buf, Config: cfg}
	pos := min(r.current, len(r.entries)) + 1
	r.entries = slices.Insert(r.entries, pos-1, e)
	r.log.Debug("pad added", "win", w, "pos", pos, "pads", len(r.entries))
	return e, nil
}

// Remove deletes the pad owning w and reports whether anything was
// removed; a handle that is not a pad is a silent no-op. The cursor is
// only clamped back into range. Rotating away from a removed pad is the
// caller's job, and the float-to-split path deliberately does not rotate.
func (r *Registry) Remove(w Window) bool {
	i := r.IndexOf(w)
	if i < 0 {
		return false
	}
	r.entries = slices.Delete(r.entries, i-1, i)
	if r.current > len(r.entries) {
		r.current = max(1, len(r.entries))
	}
	r.log.Debug("pad removed", "win", w, "pads", len(r.entries))
	return true
}

// Next returns the cursor position one step forward in cyclic order.
// Registries with one pad or fewer always answer 1. The cursor is not
// moved; callers assign the result via SetCurrent.
func (r *Registry) Next() int {
	n := len(r.entries)
	if n <= 1 {
		return 1
	}
	return r.current%n + 1
}

// Prev returns the cursor position one step backward in cyclic order,
// under the same contract as Next.
func (r *Registry) Prev() int {
	n := len(r.entries)
	if n <= 1 {
		return 1
	}
	return (r.current-2+n)%n + 1
}

// Show brings e to the front. A window that is already open in the active
// tabpage is simply focused; one surviving in another tabpage is
// force-closed and recreated here; a closed one is recreated from the
// entry's remembered buffer (or a fresh scratch buffer when that buffer
// died) and float configuration. When the host refuses to open a window
// the entry is left untouched.
//
// Shown entries get their saved state restored; the snapshot is left in
// place afterwards, which is harmless since restoring is idempotent.
// Show(nil) is a no-op, so callers can pass Current() unconditionally.
func (r *Registry) Show(e *Entry) error {
	if e == nil {
		return nil
	}

	if e.Visible(r.host) {
		here, err := r.host.WindowInCurrentTab(e.Win)
		if err == nil && here {
			return r.host.SetCurrentWindow(e.Win)
		}
		// Stray handle in another tabpage: drop it and reopen here.
		_ = r.host.CloseWindow(e.Win, true)
	}

	buf := e.Buf
	if !r.host.IsBufferValid(buf) {
		nb, err := r.host.CreateBuffer(true)
		if err != nil {
			return errors.Wrap(err, "creating pad buffer")
		}
		buf = nb
	}

	w, err := r.host.OpenFloat(buf, true, e.Config)
	if err != nil {
		return errors.Wrap(err, "opening pad window")
	}
	if w <= 0 {
		r.log.Warn("host refused to open pad window", "buf", buf)
		return nil
	}

	e.Win = w
	e.Buf = buf
	if e.State != nil {
		if err := RestoreState(r.host, w, e.State); err != nil {
			r.log.Debug("state restore failed", "win", w, "error", err)
		}
	}
	return nil
}

// Hide snapshots e's view and window-scoped options, refreshes its buffer
// and float configuration, then closes its window. Entries that are
// already hidden, or whose window vanished underneath us, are left
// alone.
func (r *Registry) Hide(e *Entry) error {
	if e == nil || !e.Visible(r.host) {
		return nil
	}
	r.refresh(e)
	st, err := SaveState(r.host, e.Win)
	if err != nil {
		r.log.Debug("state save failed", "win", e.Win, "error", err)
	} else {
		e.State = st
	}
	return r.host.CloseWindow(e.Win, true)
}

// Cycle hides the current pad and shows the one dir steps away: dir >= 0
// rotates forward, dir < 0 backward. Empty registries are a no-op.
func (r *Registry) Cycle(dir int) error {
	if len(r.entries) == 0 {
		return nil
	}
	if err := r.Hide(r.Current()); err != nil {
		// The window can be gone by the time we close it; routine.
		r.log.Debug("hide on cycle failed", "error", err)
	}
	if dir >= 0 {
		r.current = r.Next()
	} else {
		r.current = r.Prev()
	}
	return r.Show(r.Current())
}

// Toggle hides the current pad when it is visible and shows it otherwise.
// Empty registries are a no-op.
func (r *Registry) Toggle() error {
	e := r.Current()
	if e == nil {
		return nil
	}
	if e.Visible(r.host) {
		return r.Hide(e)
	}
	return r.Show(e)
}

// WindowLeft is the focus-loss hook: it refreshes the matching entry's
// buffer and float configuration so later recreation reflects what the
// user last saw. Windows that are not pads are ignored.
func (r *Registry) WindowLeft(w Window) {
	i := r.IndexOf(w)
	if i < 0 {
		return
	}
	r.refresh(r.entries[i-1])
}

// WindowClosed is the window-closed hook. The entry stays registered with
// its now-stale handle; Show recreates the window from the remembered
// buffer and configuration.
func (r *Registry) WindowClosed(w Window) {
	if i := r.IndexOf(w); i > 0 {
		r.log.Debug("pad window closed", "win", w, "pad", i)
	}
}

func (r *Registry) refresh(e *Entry) {
	if buf, err := r.host.WindowBuffer(e.Win); err == nil {
		e.Buf = buf
	}
	if cfg, err := r.host.FloatConfig(e.Win); err == nil && cfg.IsFloat() {
		e.Config = cfg
	}
}
