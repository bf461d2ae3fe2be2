// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"rivaas.dev/i18nroutes/config"
	"rivaas.dev/i18nroutes/diag"
	"rivaas.dev/i18nroutes/logging"
	"rivaas.dev/i18nroutes/metrics"
	"rivaas.dev/i18nroutes/pages"
	"rivaas.dev/i18nroutes/pattern"
	"rivaas.dev/i18nroutes/routetree"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configFile string
	dir        string
	logFormat  string
	logLevel   string
	metrics    bool
}

// env is the state prepared for a command by the root pre-run hook.
type env struct {
	flags    globalFlags
	stdout   io.Writer
	stderr   io.Writer
	cfg      *config.Config
	logger   *logging.Logger
	recorder *metrics.Recorder
	patterns *pattern.Cache
}

// execute runs the command line args. With --metrics the metrics are
// written to stderr after the command, whether it failed or not.
func execute(ctx context.Context, stdout, stderr io.Writer, args []string) (err error) {
	e := &env{stdout: stdout, stderr: stderr, patterns: pattern.NewCache()}
	root := newRootCmd(e)
	root.SetArgs(args)
	defer func() {
		err = errors.Join(err, e.teardown(ctx))
	}()
	return root.ExecuteContext(ctx)
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "i18nroutes",
		Short: "Localized routes for a pages directory",
		Long: `i18nroutes reads a pages directory annotated with _routes.json or
_routes.yaml files and produces the redirects and rewrites serving every
page under its translated path in each locale.

Configuration is read from --config (yaml, json or toml) and from
I18NROUTES_* environment variables, which take precedence.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: e.setup,
	}
	root.SetOut(e.stdout)
	root.SetErr(e.stderr)

	f := root.PersistentFlags()
	f.StringVarP(&e.flags.configFile, "config", "c", "", "configuration file (.yaml, .yml, .json, .toml)")
	f.StringVarP(&e.flags.dir, "dir", "C", ".", "project directory containing the pages directory")
	f.StringVar(&e.flags.logFormat, "log-format", "", "log format: console, text or json (overrides log.format)")
	f.StringVar(&e.flags.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides log.level)")
	f.BoolVar(&e.flags.metrics, "metrics", false, "write Prometheus metrics to stderr on exit")

	root.AddCommand(
		newReroutesCmd(e),
		newLocalizeCmd(e),
		newCanonicalCmd(e),
		newTreeCmd(e),
	)
	return root
}

// setup loads the configuration and creates the logger and recorder.
func (e *env) setup(cmd *cobra.Command, _ []string) error {
	opts := []config.Option{}
	if e.flags.configFile != "" {
		opts = append(opts, config.WithFile(e.flags.configFile))
	}
	opts = append(opts, config.WithEnv(""))

	cfg, err := config.Load(cmd.Context(), opts...)
	if err != nil {
		return err
	}
	e.cfg = cfg

	format, level := cfg.Log.Format, cfg.Log.Level
	if e.flags.logFormat != "" {
		format = e.flags.logFormat
	}
	if e.flags.logLevel != "" {
		level = e.flags.logLevel
	}
	if cfg.Debug && e.flags.logLevel == "" {
		level = "debug"
	}
	handler, err := logging.ParseHandlerType(format)
	if err != nil {
		return err
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return err
	}
	if e.logger, err = logging.New(
		logging.WithHandlerType(handler),
		logging.WithLevel(lvl),
		logging.WithOutput(e.stderr),
		logging.WithSource(cfg.Debug),
	); err != nil {
		return err
	}

	if e.flags.metrics {
		if e.recorder, err = metrics.New(
			metrics.WithServiceName("i18nroutes"),
			metrics.WithLogger(e.logger.Logger()),
		); err != nil {
			return err
		}
	}
	e.logger.Debug("configuration loaded", "command", cmd.Name(), "locales", cfg.Locales, "defaultLocale", cfg.DefaultLocale)
	return nil
}

// teardown writes and shuts down the recorder, if setup created one.
func (e *env) teardown(ctx context.Context) error {
	if e.recorder == nil {
		return nil
	}
	return errors.Join(
		e.recorder.WriteText(e.stderr),
		e.recorder.Shutdown(context.WithoutCancel(ctx)),
	)
}

// diagnostics routes diagnostic events to the log and, with --metrics,
// to the recorder.
func (e *env) diagnostics() diag.Handler {
	var rec diag.Handler
	if e.recorder != nil {
		rec = e.recorder
	}
	return diag.Multi(
		e.logger.Diagnostics(diag.KindRedirectLoopRejected, diag.KindRoutesFileIgnored),
		rec,
	)
}

// loadTree returns the route tree from the routesTree snapshot when one is
// configured, else from the pages directory. The locale configuration
// always comes from the configuration.
func (e *env) loadTree() (*routetree.Branch, routetree.I18n, error) {
	i18n := e.cfg.I18n()

	if e.cfg.RoutesTree != "" {
		path := e.cfg.RoutesTree
		if !filepath.IsAbs(path) {
			path = filepath.Join(e.flags.dir, path)
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, i18n, fmt.Errorf("open routes tree: %w", err)
		}
		defer f.Close()
		snap, err := routetree.ReadSnapshot(f)
		if err != nil {
			return nil, i18n, err
		}
		e.logger.Debug("route tree loaded", "file", path, "pages", len(snap.Tree.Pages()))
		return snap.Tree, i18n, nil
	}

	fsys := os.DirFS(e.flags.dir)
	dir, err := pages.FindDir(fsys, e.cfg.PagesDir)
	if err != nil {
		return nil, i18n, fmt.Errorf("%w in %s", err, e.flags.dir)
	}
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return nil, i18n, err
	}

	opts := []pages.Option{
		pages.WithPageExtensions(e.cfg.PageExtensions...),
		pages.WithLogger(e.logger.Logger()),
		pages.WithDiagnostics(e.diagnostics()),
	}
	if e.cfg.RoutesDataFileName != "" {
		opts = append(opts, pages.WithRoutesDataFileName(e.cfg.RoutesDataFileName))
	}
	root, err := pages.Parse(sub, opts...)
	if err != nil {
		return nil, i18n, err
	}
	e.logger.Debug("route tree parsed", "dir", dir)
	return root, i18n, nil
}
