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

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"
	"strings"
	"sync"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
	"golang.org/x/text/language"

	"rivaas.dev/i18nroutes/config/codec"
	"rivaas.dev/i18nroutes/config/source"
	"rivaas.dev/i18nroutes/routetree"
)

// DefaultEnvPrefix is the prefix of the environment variables read by
// WithEnv("").
const DefaultEnvPrefix = "I18NROUTES_"

// Source loads a raw configuration map. Load must be safe to call
// concurrently.
type Source interface {
	Load(ctx context.Context) (map[string]any, error)
}

// Config is the i18nroutes configuration.
type Config struct {
	Locales       []string `config:"locales" validate:"required,min=1,dive,bcp47"`
	DefaultLocale string   `config:"defaultLocale" validate:"required,bcp47"`
	// FallbackLng is a locale, a list of locales, or a map from locale to
	// list. Use I18n for the normalized form.
	FallbackLng any      `config:"fallbackLng"`
	Domains     []Domain `config:"domains" validate:"dive"`

	PagesDir           string   `config:"pagesDir"`
	PageExtensions     []string `config:"pageExtensions" default:"js,jsx,ts,tsx" validate:"dive,required"`
	RoutesDataFileName string   `config:"routesDataFileName"`
	// RoutesTree is the path of a route tree snapshot used instead of the
	// pages directory.
	RoutesTree string `config:"routesTree"`
	Origin     string `config:"origin" validate:"omitempty,url|hostname_port|hostname"`
	Debug      bool   `config:"debug"`

	Log Log `config:"log"`
}

// Domain binds a host to its own default locale.
type Domain struct {
	Domain        string   `config:"domain" validate:"required"`
	DefaultLocale string   `config:"defaultLocale" validate:"required,bcp47"`
	Locales       []string `config:"locales" validate:"dive,bcp47"`
}

// Log holds the logging settings.
type Log struct {
	Format string `config:"format" default:"console" validate:"oneof=json text console"`
	Level  string `config:"level" default:"info" validate:"oneof=debug info warn error"`
}

// Option configures Load.
type Option func(l *loader) error

type loader struct {
	sources []Source
}

// WithSource adds a source.
func WithSource(src Source) Option {
	return func(l *loader) error {
		if src == nil {
			return errors.New("source cannot be nil")
		}
		l.sources = append(l.sources, src)
		return nil
	}
}

// WithFile adds a file source. The format is detected from the extension
// (.yaml, .yml, .json, .toml). Environment variables in path are expanded.
func WithFile(path string) Option {
	return func(l *loader) error {
		path = os.ExpandEnv(path)
		format, err := codec.TypeOf(path)
		if err != nil {
			return NewError("file-source", "detect-format", err)
		}
		return WithFileAs(path, format)(l)
	}
}

// WithFileAs adds a file source of an explicit format.
func WithFileAs(path string, format codec.Type) Option {
	return func(l *loader) error {
		dec, err := codec.GetDecoder(format)
		if err != nil {
			return NewError("file-source", "get-decoder", err)
		}
		l.sources = append(l.sources, source.NewFile(os.ExpandEnv(path), dec))
		return nil
	}
}

// WithContent adds in-memory content of the given format.
func WithContent(data []byte, format codec.Type) Option {
	return func(l *loader) error {
		dec, err := codec.GetDecoder(format)
		if err != nil {
			return NewError("content-source", "get-decoder", err)
		}
		l.sources = append(l.sources, source.NewContent(data, dec))
		return nil
	}
}

// WithEnv adds the environment variables starting with prefix,
// DefaultEnvPrefix when empty. I18NROUTES_LOG_LEVEL sets log.level and
// I18NROUTES_LOCALES=en,fr sets locales.
func WithEnv(prefix string) Option {
	return func(l *loader) error {
		if prefix == "" {
			prefix = DefaultEnvPrefix
		}
		l.sources = append(l.sources, source.NewOSEnvVar(prefix))
		return nil
	}
}

// Load merges the sources, decodes the result and validates it.
//
// Errors:
//   - *Error from an option, a source, the decoding or the validation
func Load(ctx context.Context, opts ...Option) (*Config, error) {
	if ctx == nil {
		return nil, errors.New("context cannot be nil")
	}

	l := &loader{}
	var errs error
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		errs = errors.Join(errs, opt(l))
	}
	if errs != nil {
		return nil, errs
	}

	values, err := l.merge(ctx)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := decode(values, cfg); err != nil {
		return nil, NewError("binding", "decode", err)
	}
	if err := applyDefaults(cfg); err != nil {
		return nil, NewError("binding", "defaults", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is like Load but panics on error.
func MustLoad(ctx context.Context, opts ...Option) *Config {
	cfg, err := Load(ctx, opts...)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load: %v", err))
	}
	return cfg
}

func (l *loader) merge(ctx context.Context) (map[string]any, error) {
	values := make(map[string]any)
	for i, src := range l.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		conf, err := src.Load(ctx)
		if err != nil {
			return nil, NewError(fmt.Sprintf("source[%d]", i), "load", err)
		}
		if conf == nil {
			continue
		}
		if err := mergo.Map(&values, normalizeKeys(conf), mergo.WithOverride); err != nil {
			return nil, NewError(fmt.Sprintf("source[%d]", i), "merge", err)
		}
	}
	return values, nil
}

// verbatimKeys hold maps keyed by locale, whose case is significant.
var verbatimKeys = []string{"fallbacklng"}

// normalizeKeys lower cases every key so that sources merge
// case-insensitively.
func normalizeKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		key := strings.ToLower(k)
		if nested, ok := v.(map[string]any); ok && !slices.Contains(verbatimKeys, key) {
			v = normalizeKeys(nested)
		}
		out[key] = v
	}
	return out
}

func decode(values map[string]any, target *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "config",
		WeaklyTypedInput: true,
		Result:           target,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return err
	}
	return dec.Decode(values)
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			return f.Tag.Get("config")
		})
		// Registration only fails for an empty tag or a nil function.
		_ = validate.RegisterValidation("bcp47", func(fl validator.FieldLevel) bool {
			_, err := language.Parse(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// Validate checks the struct constraints, that every default locale is
// among the locales and that fallbackLng has a supported shape.
//
// Errors:
//   - *Error wrapping validator.ValidationErrors, ErrUnknownDefaultLocale
//     or ErrInvalidFallback
func (c *Config) Validate() error {
	if err := structValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := strings.TrimPrefix(verrs[0].Namespace(), "Config.")
			return NewFieldError("validation", field, verrs[0].Tag(), err)
		}
		return NewError("validation", "validate", err)
	}
	if !slices.Contains(c.Locales, c.DefaultLocale) {
		return NewFieldError("validation", "defaultLocale", "validate", fmt.Errorf("%w: %q", ErrUnknownDefaultLocale, c.DefaultLocale))
	}
	for _, d := range c.Domains {
		if !slices.Contains(c.Locales, d.DefaultLocale) {
			return NewFieldError("validation", "domains", "validate", fmt.Errorf("%w: %q (%s)", ErrUnknownDefaultLocale, d.DefaultLocale, d.Domain))
		}
	}
	if _, err := normalizeFallback(c.FallbackLng); err != nil {
		return NewFieldError("validation", "fallbackLng", "validate", err)
	}
	return nil
}

// I18n returns the locale configuration used by the route tree. The
// fallback chains of a single locale or list apply to every locale.
func (c *Config) I18n() routetree.I18n {
	fallback, _ := normalizeFallback(c.FallbackLng)
	domains := make([]routetree.Domain, 0, len(c.Domains))
	for _, d := range c.Domains {
		domains = append(domains, routetree.Domain{
			Domain:        d.Domain,
			DefaultLocale: d.DefaultLocale,
			Locales:       slices.Clone(d.Locales),
		})
	}
	return routetree.I18n{
		Locales:       slices.Clone(c.Locales),
		DefaultLocale: c.DefaultLocale,
		Fallback:      fallback,
		Domains:       domains,
	}
}

// normalizeFallback converts the accepted fallbackLng shapes into chains
// keyed by locale. Chains for every locale use the routetree.DefaultKey key.
func normalizeFallback(v any) (map[string][]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string, []any, []string:
		chain, err := toLocaleList(t)
		if err != nil {
			return nil, err
		}
		if len(chain) == 0 {
			return nil, nil
		}
		return map[string][]string{routetree.DefaultKey: chain}, nil
	case map[string]any, map[any]any:
		m, err := cast.ToStringMapE(t)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFallback, err)
		}
		out := make(map[string][]string, len(m))
		for locale, value := range m {
			chain, err := toLocaleList(value)
			if err != nil {
				return nil, err
			}
			out[locale] = chain
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidFallback, v)
	}
}

// toLocaleList accepts a comma separated string or a list.
func toLocaleList(v any) ([]string, error) {
	if s, ok := v.(string); ok {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	}
	list, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFallback, err)
	}
	return list, nil
}
