// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package cli implements the asynchttp command line tool.
package cli

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogama/asynchttp"
	"github.com/gogama/asynchttp/config"
	"github.com/gogama/asynchttp/jar"
	"github.com/gogama/asynchttp/logger"
	"github.com/gogama/asynchttp/metrics"
	"github.com/gogama/asynchttp/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var version = "dev"

// seededKey marks a settings store which has been seeded from a
// configuration file.
const seededKey = "cli_seeded"

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	version = v
}

// app holds the state shared by every command of one invocation. It is
// populated by open before a command runs and released by close after.
type app struct {
	fs         afero.Fs
	configPath string
	verbose    bool

	file     *config.File
	stores   *config.Stores
	resolver *config.Resolver
	jar      *jar.Jar
	registry *prometheus.Registry
	client   *asynchttp.Client
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asynchttp",
		Short: "Run HTTP requests with a durable cookie jar",
		Long: `asynchttp runs HTTP requests one connection at a time, keeping the
cookies servers set in a durable jar and resolving relative paths
against a stored base address.

Get started:
  asynchttp base set https://api.example.com   Store a base address
  asynchttp get /status                         Run a GET
  asynchttp post /login -d '{"user":"u"}'       Run a POST
  asynchttp cookies list                        Show the jar`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.ErrOrStderr())
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to YAML configuration file")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log request runs and cookie warnings to stderr")

	cmd.AddCommand(
		newRequestCmd(a),
		newGetCmd(a),
		newPostCmd(a),
		newCookiesCmd(a),
		newBaseCmd(a),
		newTimeoutsCmd(a),
	)
	return cmd
}

// Execute runs the root command with the process arguments and exits
// non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, afero.NewOsFs(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func execute(ctx context.Context, fs afero.Fs, args []string, stdout, stderr io.Writer) error {
	a := &app{fs: fs}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

// open loads the configuration and builds the stores, resolver, jar and
// client. Settings from the configuration file seed the settings store
// only on the first invocation against it, so values changed with
// "base set" or "timeouts set" survive later invocations.
func (a *app) open(stderr io.Writer) error {
	f := config.DefaultFile()
	if a.configPath != "" {
		var err error
		if f, err = config.Load(a.fs, a.configPath); err != nil {
			return err
		}
	}
	a.file = f

	var log logger.Logger = logger.Nop{}
	if a.verbose {
		log = logger.NewStandard(stdlog.New(stderr, "", stdlog.LstdFlags))
	}

	stores, err := f.Store.Open(a.fs)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	a.stores = stores

	a.resolver = config.NewResolver(stores.Settings)
	_, seeded, err := store.GetString(stores.Settings, seededKey)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	if !seeded {
		if err = f.Apply(a.resolver); err != nil {
			return fmt.Errorf("failed to apply config: %w", err)
		}
		if err = store.PutString(stores.Settings, seededKey, "true"); err != nil {
			return fmt.Errorf("failed to apply config: %w", err)
		}
	}

	if a.jar, err = jar.New(stores.Cookies, jar.WithLogger(log)); err != nil {
		return fmt.Errorf("failed to load cookies: %w", err)
	}

	a.registry = prometheus.NewRegistry()
	handlers := &asynchttp.HandlerGroup{}
	metrics.New(a.registry).Install(handlers)

	a.client = &asynchttp.Client{
		Jar:       a.jar,
		Config:    a.resolver,
		Handlers:  handlers,
		Logger:    log,
		UserAgent: f.UserAgent,
	}
	return nil
}

// close writes the metrics textfile, if one is configured, and closes
// the stores. It is safe to call when open failed or never ran.
func (a *app) close() error {
	var err error
	if a.file != nil && a.file.Metrics.Textfile != "" && a.registry != nil {
		err = metrics.WriteTextfile(a.registry, a.file.Metrics.Textfile)
	}
	if a.stores != nil {
		if cerr := a.stores.Close(); err == nil {
			err = cerr
		}
		a.stores = nil
	}
	return err
}
