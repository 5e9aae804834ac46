// Package config loads declarative field definitions from TOML or YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format selects the file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported config extension %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}
}

// File is the on-disk configuration.
type File struct {
	// Style applies to every field; a field's own style block overrides it.
	Style  StyleSpec   `toml:"style" yaml:"style"`
	Fields []FieldSpec `toml:"field" yaml:"fields"`
}

// StyleSpec mirrors render.Style with file-friendly types. Colors are
// "#rrggbb" or "#rrggbbaa"; BlinkInterval is a Go duration such as "500ms".
type StyleSpec struct {
	CaretColor         string   `toml:"caret_color" yaml:"caret_color"`
	CaretWidth         *float32 `toml:"caret_width" yaml:"caret_width"`
	CaretRadius        *float32 `toml:"caret_radius" yaml:"caret_radius"`
	CaretHeight        *float32 `toml:"caret_height" yaml:"caret_height"`
	SelectionColor     string   `toml:"selection_color" yaml:"selection_color"`
	SelectedTextColor  string   `toml:"selected_text_color" yaml:"selected_text_color"`
	OverwriteTextColor string   `toml:"overwrite_text_color" yaml:"overwrite_text_color"`
	BlinkInterval      string   `toml:"blink_interval" yaml:"blink_interval"`
}

// FontSpec mirrors field.Font.
type FontSpec struct {
	Family     string  `toml:"family" yaml:"family"`
	Size       float32 `toml:"size" yaml:"size"`
	LineHeight float32 `toml:"line_height" yaml:"line_height"`
}

// PromptSpec mirrors field.Prompt.
type PromptSpec struct {
	Text  string    `toml:"text" yaml:"text"`
	Color string    `toml:"color" yaml:"color"`
	Font  *FontSpec `toml:"font" yaml:"font"`
}

// FieldSpec describes one field. Unset booleans keep field.DefaultConfig.
type FieldSpec struct {
	Name      string      `toml:"name" yaml:"name"`
	Text      string      `toml:"text" yaml:"text"`
	Mode      string      `toml:"mode" yaml:"mode"`
	Wrap      string      `toml:"wrap" yaml:"wrap"`
	MaxChars  int         `toml:"max_chars" yaml:"max_chars"`
	Filter    string      `toml:"filter" yaml:"filter"`
	Prompt    *PromptSpec `toml:"prompt" yaml:"prompt"`
	Font      *FontSpec   `toml:"font" yaml:"font"`
	TextColor string      `toml:"text_color" yaml:"text_color"`
	Alignment string      `toml:"alignment" yaml:"alignment"`
	Lines     float32     `toml:"lines" yaml:"lines"`
	Style     *StyleSpec  `toml:"style" yaml:"style"`

	ClearOnSubmit         *bool `toml:"clear_on_submit" yaml:"clear_on_submit"`
	DeactivateOnSubmit    *bool `toml:"deactivate_on_submit" yaml:"deactivate_on_submit"`
	AllowOverwrite        *bool `toml:"allow_overwrite" yaml:"allow_overwrite"`
	Enabled               *bool `toml:"enabled" yaml:"enabled"`
	ActivateOnPointerDown *bool `toml:"activate_on_pointer_down" yaml:"activate_on_pointer_down"`

	HistoryLimit int `toml:"history_limit" yaml:"history_limit"`
}

// Load reads path, decodes it according to its extension, applies
// environment overrides and validates the result.
func Load(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is required")
	}
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes data in the given format, applies environment overrides and
// validates the result.
func Parse(data []byte, format Format) (*File, error) {
	f := &File{}
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("failed to parse config: unknown keys %v", undecoded)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config format %q", format)
	}

	applyEnvOverrides(f)

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// applyEnvOverrides lets the environment tune the shared style without
// editing the file.
func applyEnvOverrides(f *File) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"QUILL_BLINK_INTERVAL", func(v string) {
			if v != "" {
				f.Style.BlinkInterval = v
			}
		}},
		{"QUILL_CARET_COLOR", func(v string) {
			if v != "" {
				f.Style.CaretColor = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// Validate returns every problem in the file joined into one error.
func (f *File) Validate() error {
	var errs []error
	if len(f.Fields) == 0 {
		errs = append(errs, errors.New("fields: at least one field must be configured"))
	}
	errs = append(errs, f.Style.validate("style")...)

	seen := make(map[string]int, len(f.Fields))
	for i, fs := range f.Fields {
		where := fmt.Sprintf("fields[%d]", i)
		if fs.Name != "" {
			where = fmt.Sprintf("fields.%s", fs.Name)
			if j, dup := seen[fs.Name]; dup {
				errs = append(errs, fmt.Errorf("%s: name also used by fields[%d]", where, j))
			}
			seen[fs.Name] = i
		}
		errs = append(errs, fs.validate(where)...)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (s StyleSpec) validate(where string) []error {
	var errs []error
	for _, c := range []struct {
		key, value string
	}{
		{"caret_color", s.CaretColor},
		{"selection_color", s.SelectionColor},
		{"selected_text_color", s.SelectedTextColor},
		{"overwrite_text_color", s.OverwriteTextColor},
	} {
		if _, err := parseColor(c.value); err != nil {
			errs = append(errs, fmt.Errorf("%s.%s=%q is invalid: %v", where, c.key, c.value, err))
		}
	}
	if s.BlinkInterval != "" {
		if d, err := time.ParseDuration(s.BlinkInterval); err != nil {
			errs = append(errs, fmt.Errorf("%s.blink_interval=%q is invalid: %v", where, s.BlinkInterval, err))
		} else if d < 0 {
			errs = append(errs, fmt.Errorf("%s.blink_interval=%q must not be negative", where, s.BlinkInterval))
		}
	}
	for _, v := range []struct {
		key string
		val *float32
	}{
		{"caret_width", s.CaretWidth},
		{"caret_radius", s.CaretRadius},
		{"caret_height", s.CaretHeight},
	} {
		if v.val != nil && *v.val < 0 {
			errs = append(errs, fmt.Errorf("%s.%s=%v must not be negative", where, v.key, *v.val))
		}
	}
	return errs
}

func (fs FieldSpec) validate(where string) []error {
	var errs []error
	if _, err := fs.inputMode(); err != nil {
		errs = append(errs, fmt.Errorf("%s.%w", where, err))
	}
	if fs.MaxChars < 0 {
		errs = append(errs, fmt.Errorf("%s.max_chars=%d must not be negative", where, fs.MaxChars))
	}
	if fs.Filter != "" {
		if _, err := compileFilter(fs.Filter); err != nil {
			errs = append(errs, fmt.Errorf("%s.filter: %w", where, err))
		}
	}
	if _, err := parseColor(fs.TextColor); err != nil {
		errs = append(errs, fmt.Errorf("%s.text_color=%q is invalid: %v", where, fs.TextColor, err))
	}
	if _, err := parseAlignment(fs.Alignment); err != nil {
		errs = append(errs, fmt.Errorf("%s.%w", where, err))
	}
	if fs.Lines < 0 {
		errs = append(errs, fmt.Errorf("%s.lines=%v must not be negative", where, fs.Lines))
	}
	if fs.Font != nil {
		errs = append(errs, fs.Font.validate(where+".font")...)
	}
	if fs.Prompt != nil {
		if _, err := parseColor(fs.Prompt.Color); err != nil {
			errs = append(errs, fmt.Errorf("%s.prompt.color=%q is invalid: %v", where, fs.Prompt.Color, err))
		}
		if fs.Prompt.Font != nil {
			errs = append(errs, fs.Prompt.Font.validate(where+".prompt.font")...)
		}
	}
	if fs.Style != nil {
		errs = append(errs, fs.Style.validate(where+".style")...)
	}
	return errs
}

func (f FontSpec) validate(where string) []error {
	var errs []error
	if f.Size < 0 {
		errs = append(errs, fmt.Errorf("%s.size=%v must not be negative", where, f.Size))
	}
	if f.LineHeight < 0 {
		errs = append(errs, fmt.Errorf("%s.line_height=%v must not be negative", where, f.LineHeight))
	}
	return errs
}
