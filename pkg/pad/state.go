package pad

import "github.com/pkg/errors"

// WindowState is a snapshot of a window's view and window-scoped option
// values. It is captured when a pad is hidden and consumed when the pad is
// shown again; restoring is idempotent given the same snapshot.
type WindowState struct {
	View    any
	Options map[string]any
}

// SaveState captures w's cursor/scroll view and the current value of every
// option whose declared scope is "win". The reads run inside w's context;
// the previously current window is restored on all exit paths.
func SaveState(h Host, w Window) (*WindowState, error) {
	infos, err := h.OptionsInfo()
	if err != nil {
		return nil, errors.Wrap(err, "enumerating options")
	}

	st := &WindowState{Options: make(map[string]any)}
	err = InWindow(h, w, func() error {
		view, err := h.SaveCurrentView()
		if err != nil {
			return err
		}
		st.View = view
		for _, info := range infos {
			if info.Scope != "win" {
				continue
			}
			v, err := h.WindowOption(w, info.Name)
			if err != nil {
				// Option vanished between enumeration and read.
				continue
			}
			st.Options[info.Name] = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// RestoreState applies a saved snapshot to w: every recorded option value
// first, then the view inside w's context. Options the host rejects, no
// longer existing or no longer window-scoped, are skipped silently.
func RestoreState(h Host, w Window, st *WindowState) error {
	if st == nil {
		return nil
	}
	for name, value := range st.Options {
		_ = h.SetWindowOption(w, name, value)
	}
	return InWindow(h, w, func() error {
		return h.RestoreCurrentView(st.View)
	})
}
