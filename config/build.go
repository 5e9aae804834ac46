package config

import (
	"fmt"
	"time"

	"github.com/iw2rmb/quill/field"
	"github.com/iw2rmb/quill/mode"
	"github.com/iw2rmb/quill/render"
)

// NamedConfig is one decoded field ready for field.Host.Add.
type NamedConfig struct {
	Name   string
	Config field.Config
}

// Configs converts the file into field configurations, starting each from
// field.DefaultConfig. The file must have passed Validate.
func (f *File) Configs() ([]NamedConfig, error) {
	out := make([]NamedConfig, 0, len(f.Fields))
	for i, fs := range f.Fields {
		cfg, err := fs.config(f.Style)
		if err != nil {
			return nil, fmt.Errorf("fields[%d]: %w", i, err)
		}
		out = append(out, NamedConfig{Name: fs.Name, Config: cfg})
	}
	return out, nil
}

func (fs FieldSpec) config(shared StyleSpec) (field.Config, error) {
	cfg := field.DefaultConfig()
	cfg.Text = fs.Text
	cfg.MaxChars = fs.MaxChars
	cfg.HistoryLimit = fs.HistoryLimit

	m, err := fs.inputMode()
	if err != nil {
		return cfg, err
	}
	cfg.Mode = m

	if fs.Filter != "" {
		p, err := compileFilter(fs.Filter)
		if err != nil {
			return cfg, err
		}
		cfg.Filter = p
	}
	if fs.Font != nil {
		cfg.Font = fs.Font.font(cfg.Font)
	}
	if c, err := parseColor(fs.TextColor); err != nil {
		return cfg, err
	} else if c != nil {
		cfg.TextColor = *c
	}
	if cfg.Alignment, err = parseAlignment(fs.Alignment); err != nil {
		return cfg, err
	}
	if fs.Lines > 0 {
		cfg.Lines = fs.Lines
	}

	if fs.Prompt != nil {
		p := &field.Prompt{Text: fs.Prompt.Text}
		if p.Color, err = parseColor(fs.Prompt.Color); err != nil {
			return cfg, err
		}
		if fs.Prompt.Font != nil {
			font := fs.Prompt.Font.font(cfg.Font)
			p.Font = &font
		}
		cfg.Prompt = p
	}

	if cfg.Style, err = shared.apply(cfg.Style); err != nil {
		return cfg, err
	}
	if fs.Style != nil {
		if cfg.Style, err = fs.Style.apply(cfg.Style); err != nil {
			return cfg, err
		}
	}

	setBool(&cfg.ClearOnSubmit, fs.ClearOnSubmit)
	setBool(&cfg.DeactivateOnSubmit, fs.DeactivateOnSubmit)
	setBool(&cfg.AllowOverwrite, fs.AllowOverwrite)
	setBool(&cfg.Enabled, fs.Enabled)
	setBool(&cfg.ActivateOnPointerDown, fs.ActivateOnPointerDown)
	return cfg, nil
}

func (fs FieldSpec) inputMode() (mode.InputMode, error) {
	kind, ok := mode.ParseKind(fs.Mode)
	if !ok {
		return mode.InputMode{}, fmt.Errorf("mode=%q is unknown", fs.Mode)
	}
	wrap, ok := mode.ParseWrap(fs.Wrap)
	if !ok {
		return mode.InputMode{}, fmt.Errorf("wrap=%q is unknown", fs.Wrap)
	}
	switch kind {
	case mode.SingleLineText:
		return mode.SingleLine(), nil
	case mode.Integer:
		return mode.Int(), nil
	case mode.Decimal:
		return mode.Dec(), nil
	case mode.Hexadecimal:
		return mode.Hex(), nil
	default:
		return mode.Text(wrap), nil
	}
}

// apply overlays the set values of s onto base.
func (s StyleSpec) apply(base render.Style) (render.Style, error) {
	for _, c := range []struct {
		value string
		dst   *render.Color
	}{
		{s.CaretColor, &base.CaretColor},
		{s.SelectionColor, &base.SelectionColor},
		{s.OverwriteTextColor, &base.OverwriteTextColor},
	} {
		parsed, err := parseColor(c.value)
		if err != nil {
			return base, err
		}
		if parsed != nil {
			*c.dst = *parsed
		}
	}
	selected, err := parseColor(s.SelectedTextColor)
	if err != nil {
		return base, err
	}
	if selected != nil {
		base.SelectedTextColor = selected
	}

	if s.CaretWidth != nil {
		base.CaretWidth = *s.CaretWidth
	}
	if s.CaretRadius != nil {
		base.CaretRadius = *s.CaretRadius
	}
	if s.CaretHeight != nil {
		base.CaretHeight = *s.CaretHeight
	}
	if s.BlinkInterval != "" {
		d, err := time.ParseDuration(s.BlinkInterval)
		if err != nil {
			return base, fmt.Errorf("blink_interval: %w", err)
		}
		base.BlinkInterval = d
	}
	return base, nil
}

func (f FontSpec) font(base field.Font) field.Font {
	if f.Family != "" {
		base.Family = f.Family
	}
	if f.Size > 0 {
		base.Size = f.Size
	}
	if f.LineHeight > 0 {
		base.LineHeight = f.LineHeight
	}
	return base
}

// parseColor returns nil for an empty string.
func parseColor(s string) (*render.Color, error) {
	if s == "" {
		return nil, nil
	}
	c, err := render.ParseHex(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func parseAlignment(s string) (field.Alignment, error) {
	a, ok := field.ParseAlignment(s)
	if !ok {
		return a, fmt.Errorf("alignment=%q is unknown", s)
	}
	return a, nil
}

func compileFilter(expr string) (*mode.PatternFilter, error) {
	return mode.Pattern(expr)
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
