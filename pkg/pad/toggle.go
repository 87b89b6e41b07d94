package pad

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/vito/floatpad/pkg/layout"
)

// ToSplit converts the floating window w into a normal split: the pad
// registration is dropped, a new split opens next to the last leaf of the
// current layout (vertical when that leaf's container is a row, horizontal
// otherwise), the buffer moves over, and the float closes.
//
// Window-local option state is not carried over: the destination window is
// freshly created by the host.
func ToSplit(h Host, r *Registry, w Window) error {
	buf, err := h.WindowBuffer(w)
	if err != nil {
		return errors.Wrap(err, "reading float buffer")
	}

	// Deregister first; this path does not rotate the cursor.
	r.Remove(w)

	desc, err := h.Layout()
	if err != nil {
		return errors.Wrap(err, "querying layout")
	}
	leaf := layout.LastLeaf(layout.Build(desc))
	if leaf == nil {
		return fmt.Errorf("no leaf window in layout")
	}
	vertical := leaf.Parent != nil && leaf.Parent.Kind == layout.Row

	nw, err := h.OpenSplit(Window(leaf.Win), vertical)
	if err != nil {
		return errors.Wrap(err, "opening split")
	}
	if nw <= 0 {
		return nil
	}
	if err := h.SetWindowBuffer(nw, buf); err != nil {
		return errors.Wrap(err, "moving buffer into split")
	}
	// The float may already be gone; routine either way.
	_ = h.CloseWindow(w, true)
	return h.SetCurrentWindow(nw)
}

// ToFloat converts the split window w into a floating window showing the
// same buffer and closes the originating split. The new float is not
// registered as a pad; that remains the caller's choice. A non-positive
// handle means the host refused and the split is left in place.
func ToFloat(h Host, w Window, cfg FloatConfig) (Window, error) {
	buf, err := h.WindowBuffer(w)
	if err != nil {
		return 0, errors.Wrap(err, "reading split buffer")
	}
	nw, err := h.OpenFloat(buf, true, cfg)
	if err != nil {
		return 0, errors.Wrap(err, "opening float")
	}
	if nw <= 0 {
		return 0, nil
	}
	_ = h.CloseWindow(w, true)
	return nw, nil
}
