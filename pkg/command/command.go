// Package command maps the :Floatpad user command onto the registry,
// layout, and float operations, and wires the autocmd hooks that keep the
// registry current.
package command

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/vito/floatpad/pkg/config"
	"github.com/vito/floatpad/pkg/pad"
)

// Context carries the collaborators every handler needs. One Context is
// built at plugin startup and shared by all handlers; nothing in it is
// global.
type Context struct {
	Host     pad.Host
	Registry *pad.Registry
	Config   *config.Config
	Log      *slog.Logger
}

type (
	handlerFunc  func(ctx *Context, args []string) error
	completeFunc func(ctx *Context, prefix string) []string
)

var handlers = map[string]handlerFunc{
	"new":    cmdNew,
	"add":    cmdAdd,
	"remove": cmdRemove,
	"show":   cmdShow,
	"hide":   cmdHide,
	"toggle": cmdToggle,
	"next":   cmdNext,
	"prev":   cmdPrev,
	"split":  cmdSplit,
	"float":  cmdFloat,
	"move":   cmdMove,
	"place":  cmdPlace,
	"list":   cmdList,
}

// completions provides argument candidates per subcommand; subcommands
// absent here take no completable arguments.
var completions = map[string]completeFunc{
	"move": func(ctx *Context, prefix string) []string {
		return matching(pad.Directions(), prefix)
	},
	"place": func(ctx *Context, prefix string) []string {
		return matching(pad.Placements(), prefix)
	},
}

// Names returns the subcommand names in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(handlers))
}

// Dispatch runs one :Floatpad invocation. No arguments means "toggle".
func Dispatch(ctx *Context, args []string) error {
	if len(args) == 0 {
		args = []string{"toggle"}
	}
	h, ok := handlers[args[0]]
	if !ok {
		return fmt.Errorf("unknown subcommand %q (expected one of %s)",
			args[0], strings.Join(Names(), ", "))
	}
	return h(ctx, args[1:])
}

// Complete returns completion candidates for the :Floatpad command line.
// argLead and cmdLine follow Vim's customlist convention.
func Complete(ctx *Context, argLead, cmdLine string) []string {
	fields := strings.Fields(cmdLine)
	// Still typing the subcommand itself.
	if len(fields) <= 1 || (len(fields) == 2 && argLead != "") {
		return matching(Names(), argLead)
	}
	if c, ok := completions[fields[1]]; ok {
		return c(ctx, argLead)
	}
	return nil
}

func matching(candidates []string, prefix string) []string {
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func cmdNew(ctx *Context, args []string) error {
	cols, rows, err := ctx.Host.GridSize()
	if err != nil {
		return err
	}
	buf, err := ctx.Host.CreateBuffer(true)
	if err != nil {
		return err
	}
	w, err := ctx.Host.OpenFloat(buf, true, ctx.Config.FloatConfig(cols, rows))
	if err != nil {
		return err
	}
	if w <= 0 {
		return nil
	}
	if _, err := ctx.Registry.Add(w); err != nil {
		return err
	}
	ctx.Registry.SetCurrent(ctx.Registry.IndexOf(w))
	return nil
}

func cmdAdd(ctx *Context, args []string) error {
	w, err := ctx.Host.CurrentWindow()
	if err != nil {
		return err
	}
	cfg, err := ctx.Host.FloatConfig(w)
	if err != nil || !cfg.IsFloat() {
		return fmt.Errorf("current window is not floating")
	}
	if ctx.Registry.IndexOf(w) > 0 {
		return nil // already a pad
	}
	if _, err := ctx.Registry.Add(w); err != nil {
		return err
	}
	ctx.Registry.SetCurrent(ctx.Registry.IndexOf(w))
	return nil
}

func cmdRemove(ctx *Context, args []string) error {
	w, err := ctx.Host.CurrentWindow()
	if err != nil {
		return err
	}
	if ctx.Registry.Remove(w) && ctx.Config.Notify {
		return ctx.Host.Notify("floatpad: removed pad")
	}
	return nil
}

func cmdShow(ctx *Context, args []string) error {
	return ctx.Registry.Show(ctx.Registry.Current())
}

func cmdHide(ctx *Context, args []string) error {
	return ctx.Registry.Hide(ctx.Registry.Current())
}

func cmdToggle(ctx *Context, args []string) error {
	return ctx.Registry.Toggle()
}

func cmdNext(ctx *Context, args []string) error {
	return ctx.Registry.Cycle(1)
}

func cmdPrev(ctx *Context, args []string) error {
	return ctx.Registry.Cycle(-1)
}

func cmdSplit(ctx *Context, args []string) error {
	w, err := ctx.Host.CurrentWindow()
	if err != nil {
		return err
	}
	cfg, err := ctx.Host.FloatConfig(w)
	if err != nil || !cfg.IsFloat() {
		return fmt.Errorf("current window is not floating")
	}
	return pad.ToSplit(ctx.Host, ctx.Registry, w)
}

func cmdFloat(ctx *Context, args []string) error {
	w, err := ctx.Host.CurrentWindow()
	if err != nil {
		return err
	}
	cfg, err := ctx.Host.FloatConfig(w)
	if err == nil && cfg.IsFloat() {
		return fmt.Errorf("current window is already floating")
	}
	cols, rows, err := ctx.Host.GridSize()
	if err != nil {
		return err
	}
	_, err = pad.ToFloat(ctx.Host, w, ctx.Config.FloatConfig(cols, rows))
	return err
}

func cmdMove(ctx *Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("move requires a direction (%s)", strings.Join(pad.Directions(), ", "))
	}
	count := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad count %q", args[1])
		}
		count = n
	}
	w, err := ctx.Host.CurrentWindow()
	if err != nil {
		return err
	}
	return pad.Move(ctx.Host, w, args[0], count)
}

func cmdPlace(ctx *Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("place requires a position (%s)", strings.Join(pad.Placements(), ", "))
	}
	w, err := ctx.Host.CurrentWindow()
	if err != nil {
		return err
	}
	return pad.Place(ctx.Host, w, args[0])
}

func cmdList(ctx *Context, args []string) error {
	n := ctx.Registry.Len()
	if n == 0 {
		return ctx.Host.Notify("floatpad: no pads")
	}
	visible := 0
	for _, e := range ctx.Registry.Entries() {
		if e.Visible(ctx.Host) {
			visible++
		}
	}
	return ctx.Host.Notify(fmt.Sprintf("floatpad: %d pads (%d visible), current %d",
		n, visible, ctx.Registry.CurrentIndex()))
}
