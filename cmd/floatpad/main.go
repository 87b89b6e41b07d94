package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/neovim/go-client/nvim"
	"github.com/neovim/go-client/nvim/plugin"
	"github.com/spf13/cobra"

	"github.com/vito/floatpad/pkg/command"
	"github.com/vito/floatpad/pkg/config"
	"github.com/vito/floatpad/pkg/nvimhost"
	"github.com/vito/floatpad/pkg/pad"
)

// Config holds the application configuration
type Config struct {
	Debug   bool
	LogFile string
}

func main() {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "floatpad",
		Short: "Neovim floating-window scratchpad host",
		Long: `Floatpad manages floating windows inside Neovim: creating them,
repositioning them, and cycling an ordered scratchpad collection that can
be shown and hidden one pad at a time.

Neovim starts this binary as a remote plugin host over stdio; it is not
meant to be run by hand.`,
		Example: `  # Generate the remote plugin manifest for your vimrc
  floatpad manifest floatpad > plugin/floatpad.vim

  # Serve with debug logging (as registered in the manifest)
  floatpad --debug --log-file /tmp/floatpad.log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfg.LogFile, "log-file", "", "Path to log file (stderr if not specified)")

	rootCmd.AddCommand(manifestCmd())

	ctx := context.Background()
	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithCommit("dev"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

// serve runs the remote plugin host on stdio until Neovim hangs up.
func serve(ctx context.Context, cfg Config) error {
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.InfoContext(ctx, "starting plugin host")

	// Stdout carries msgpack-RPC, which is why logging goes elsewhere.
	v, err := nvim.New(os.Stdin, os.Stdout, os.Stdout, func(format string, args ...interface{}) {
		logger.Debug(fmt.Sprintf(format, args...))
	})
	if err != nil {
		return fmt.Errorf("connecting to nvim: %w", err)
	}

	p := plugin.New(v)
	register(p, logger)

	logger.InfoContext(ctx, "plugin host closed", "error", v.Serve())
	return nil
}

// register builds the plugin's collaborators and wires every handler.
func register(p *plugin.Plugin, logger *slog.Logger) {
	host := nvimhost.New(p.Nvim)

	cwd, _ := os.Getwd()
	path, conf, err := config.Find(cwd)
	if err != nil {
		logger.Warn("failed to load floatpad.toml", "error", err)
		conf = config.Default()
	} else if path != "" {
		logger.Info("loaded config", "path", path)
	}

	command.Register(p, &command.Context{
		Host:     host,
		Registry: pad.NewRegistry(host, logger),
		Config:   conf,
		Log:      logger,
	})
}

func newLogger(cfg Config) (*slog.Logger, func(), error) {
	var logDest io.Writer = os.Stderr
	closeLog := func() {}
	if cfg.LogFile != "" {
		logFile, err := os.Create(cfg.LogFile)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		logDest = logFile
		closeLog = func() { _ = logFile.Close() }
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(logDest, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler), closeLog, nil
}

func manifestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manifest <host-name>",
		Short: "Print the remote plugin manifest",
		Long: `Print the Vimscript remote plugin manifest for this binary,
suitable for writing into a plugin/*.vim file. The host name is the name
the binary is registered under in your Neovim configuration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := plugin.New(nil)
			register(p, slog.New(slog.NewTextHandler(os.Stderr, nil)))
			_, err := os.Stdout.Write(p.Manifest(args[0]))
			return err
		},
	}
}
