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
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"rivaas.dev/i18nroutes/config/codec"
	"rivaas.dev/i18nroutes/metrics"
	"rivaas.dev/i18nroutes/reroute"
	"rivaas.dev/i18nroutes/routetree"
	"rivaas.dev/i18nroutes/translate"
)

var outputFormats = []codec.Type{codec.TypeJSON, codec.TypeYAML, codec.TypeTOML}

func newReroutesCmd(e *env) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "reroutes",
		Short: "Print the redirects and rewrites of the route tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc, err := encoder(format)
			if err != nil {
				return err
			}
			root, i18n, err := e.loadTree()
			if err != nil {
				return err
			}

			start := time.Now()
			rules, err := reroute.Build(root, i18n,
				reroute.WithLogger(e.logger.Logger()),
				reroute.WithDiagnostics(e.diagnostics()),
				reroute.WithPatternCache(e.patterns),
			)
			if e.recorder != nil {
				var redirects, rewrites int
				if rules != nil {
					redirects, rewrites = len(rules.Redirects), len(rules.Rewrites)
				}
				e.recorder.RecordBuild(cmd.Context(), redirects, rewrites, time.Since(start), err)
			}
			if err != nil {
				return err
			}
			e.logger.Info("rules built", "redirects", len(rules.Redirects), "rewrites", len(rules.Rewrites))

			data, err := enc.Encode(rules)
			if err != nil {
				return fmt.Errorf("encode rules: %w", err)
			}
			_, err = e.stdout.Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(codec.TypeJSON), "output format: json, yaml or toml")
	return cmd
}

func encoder(format string) (codec.Encoder, error) {
	t := codec.Type(strings.ToLower(format))
	for _, f := range outputFormats {
		if f == t {
			return codec.GetEncoder(t)
		}
	}
	return nil, fmt.Errorf("unsupported format %q (want json, yaml or toml)", format)
}

func (e *env) translator() (*translate.Translator, error) {
	root, i18n, err := e.loadTree()
	if err != nil {
		return nil, err
	}
	return translate.New(root, i18n,
		translate.WithLogger(e.logger.Logger()),
		translate.WithDiagnostics(e.diagnostics()),
		translate.WithOrigin(e.cfg.Origin),
		translate.WithPatternCache(e.patterns),
	)
}

func newLocalizeCmd(e *env) *cobra.Command {
	var (
		locale   string
		noPrefix bool
	)
	cmd := &cobra.Command{
		Use:   "localize <address>",
		Short: "Translate a canonical address into its localized form",
		Example: `  i18nroutes localize /about --locale fr
  i18nroutes localize '/community/[id]?id=42' --locale fr --no-prefix`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := e.translator()
			if err != nil {
				return err
			}
			if locale == "" {
				locale = tr.I18n().DefaultLocale
			}
			if !tr.I18n().HasLocale(locale) {
				return fmt.Errorf("unknown locale %q", locale)
			}

			var opts []translate.TranslateOption
			if noPrefix {
				opts = append(opts, translate.WithoutLocalePrefix())
			}
			out, err := tr.ToLocalizedString(args[0], locale, opts...)
			if e.recorder != nil {
				e.recorder.RecordTranslation(cmd.Context(), metrics.DirectionLocalize, locale, err)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(e.stdout, out)
			return err
		},
	}
	cmd.Flags().StringVarP(&locale, "locale", "l", "", "target locale (default: the default locale)")
	cmd.Flags().BoolVar(&noPrefix, "no-prefix", false, "omit the locale prefix")
	return cmd
}

func newCanonicalCmd(e *env) *cobra.Command {
	var locale string
	cmd := &cobra.Command{
		Use:   "canonical <address>",
		Short: "Translate a localized address back into its file route",
		Long: `canonical resolves a localized address to the page serving it. Without
--locale the locale is taken from the address prefix.`,
		Example: `  i18nroutes canonical /fr/a-propos
  i18nroutes canonical /a-propos --locale fr`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := e.translator()
			if err != nil {
				return err
			}
			if locale != "" && !tr.I18n().HasLocale(locale) {
				return fmt.Errorf("unknown locale %q", locale)
			}

			out, err := tr.ToCanonicalString(args[0], locale)
			if e.recorder != nil {
				e.recorder.RecordTranslation(cmd.Context(), metrics.DirectionCanonical, locale, err)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(e.stdout, out)
			return err
		},
	}
	cmd.Flags().StringVarP(&locale, "locale", "l", "", "locale of the address (default: from its prefix)")
	return cmd
}

func newTreeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the route tree snapshot as JSON",
		Long: `tree writes the route tree and locale configuration as a JSON snapshot,
which the routesTree setting can load instead of parsing the pages
directory.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			root, i18n, err := e.loadTree()
			if err != nil {
				return err
			}
			return routetree.WriteSnapshot(e.stdout, root, i18n)
		},
	}
}
