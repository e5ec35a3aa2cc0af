package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/linedit/internal/app"
	"github.com/dshills/linedit/internal/config"
)

// options holds the command line state of one invocation.
type options struct {
	cfgFile   string
	noRestore bool
	v         *viper.Viper
}

func run() int {
	cmd := newRootCmd(os.Stdin, os.Stdout)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	opts := &options{v: viper.New()}

	root := &cobra.Command{
		Use:   "linedit [file...]",
		Short: "A line-oriented text editor",
		Long: `linedit edits text files one command at a time. Open files are kept
in a workspace with undo history, optional activity logs and a session
that is restored on the next start.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd, opts, args, in, out)
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	root.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "",
		"config file (default: ./.linedit.yaml or ~/.config/linedit/config.yaml)")
	root.Flags().String("workspace-file", "", "file the session is saved to")
	root.Flags().String("log-level", "", "diagnostic level: debug, info, warn or error")
	root.Flags().String("log-file", "", "write diagnostics to this file instead of stderr")
	root.Flags().Bool("watch", false, "warn when an open file changes on disk")
	root.Flags().BoolVar(&opts.noRestore, "no-restore", false, "do not reopen the previous session")

	_ = opts.v.BindPFlag("workspace_file", root.Flags().Lookup("workspace-file"))
	_ = opts.v.BindPFlag("log_level", root.Flags().Lookup("log-level"))
	_ = opts.v.BindPFlag("log_file", root.Flags().Lookup("log-file"))
	_ = opts.v.BindPFlag("watch_files", root.Flags().Lookup("watch"))

	root.AddCommand(newConfigCmd(opts))
	return root
}

func runEditor(cmd *cobra.Command, opts *options, files []string, in io.Reader, out io.Writer) error {
	cfg, err := config.Load(opts.v, opts.cfgFile)
	if err != nil {
		return err
	}

	application, err := app.New(app.Options{
		Config:    cfg,
		Files:     files,
		NoRestore: opts.noRestore,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := application.Run(ctx, in, out)
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}

	if err := application.Shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
