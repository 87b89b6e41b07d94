package command

import (
	"strconv"

	"github.com/neovim/go-client/nvim/plugin"

	"github.com/vito/floatpad/pkg/pad"
)

// Register wires the :Floatpad command, its completion function, and the
// autocmd hooks onto p. Handlers run serially on the RPC event loop.
func Register(p *plugin.Plugin, ctx *Context) {
	p.HandleCommand(&plugin.CommandOptions{
		Name:     "Floatpad",
		NArgs:    "*",
		Complete: "customlist,FloatpadComplete",
	}, func(args []string) error {
		if err := Dispatch(ctx, args); err != nil {
			ctx.Log.Error("command failed", "args", args, "error", err)
			return err
		}
		return nil
	})

	// customlist completion functions receive (ArgLead, CmdLine, CursorPos).
	p.HandleFunction(&plugin.FunctionOptions{Name: "FloatpadComplete"},
		func(args []interface{}) ([]string, error) {
			var lead, line string
			if len(args) > 0 {
				lead, _ = args[0].(string)
			}
			if len(args) > 1 {
				line, _ = args[1].(string)
			}
			return Complete(ctx, lead, line), nil
		})

	p.HandleAutocmd(&plugin.AutocmdOptions{
		Event:   "WinLeave",
		Group:   "floatpad",
		Pattern: "*",
		Eval:    "win_getid()",
	}, func(win int) {
		ctx.Registry.WindowLeft(pad.Window(win))
	})

	p.HandleAutocmd(&plugin.AutocmdOptions{
		Event:   "WinClosed",
		Group:   "floatpad",
		Pattern: "*",
		Eval:    `expand('<amatch>')`,
	}, func(match string) {
		win, err := strconv.Atoi(match)
		if err != nil {
			return
		}
		ctx.Registry.WindowClosed(pad.Window(win))
	})
}
