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

// Package config loads the i18nroutes configuration: the locales, the
// fallback chains, the pages directory and the logging settings.
//
// Sources are merged in order, later sources overriding earlier ones. Keys
// are matched case-insensitively, except inside fallbackLng whose keys are
// locales.
//
//	cfg, err := config.Load(ctx,
//	    config.WithFile("i18nroutes.yaml"),
//	    config.WithEnv(config.DefaultEnvPrefix),
//	)
//	if err != nil {
//	    return err
//	}
//	tr, err := translate.New(root, cfg.I18n())
//
// A YAML file looks like:
//
//	locales: [en, fr, fr-BE]
//	defaultLocale: en
//	fallbackLng:
//	  fr-BE: [fr]
//	pagesDir: src/pages
//	log:
//	  format: json
//	  level: debug
//
// fallbackLng also accepts a single locale or a list, which then apply to
// every locale.
package config
