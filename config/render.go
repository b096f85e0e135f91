package config

import (
	"fmt"
	"os"

	"doccloud/cloud"
	"doccloud/text"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// RenderConfig is the YAML render profile. Keys left out of the file keep their defaults.
type RenderConfig struct {
	Width            int      `yaml:"width" validate:"gt=0"`
	Height           int      `yaml:"height" validate:"gt=0"`
	BackgroundColor  string   `yaml:"background_color" validate:"required"`
	MinFontSize      int      `yaml:"min_font_size" validate:"gt=0"`
	MaxFontSize      int      `yaml:"max_font_size" validate:"gte=0"` // 0 derives it from the text
	FontStep         int      `yaml:"font_step" validate:"gt=0"`
	MaxWords         int      `yaml:"max_words" validate:"gt=0"`
	Margin           int      `yaml:"margin" validate:"gte=0"`
	PreferHorizontal float64  `yaml:"prefer_horizontal" validate:"gte=0,lte=1"`
	RelativeScaling  float64  `yaml:"relative_scaling" validate:"gte=0,lte=1"`
	Scale            float64  `yaml:"scale" validate:"gt=0"`
	Seed             int64    `yaml:"seed"`
	FontPath         string   `yaml:"font_path"`
	ExtraStopwords   []string `yaml:"extra_stopwords"`
	NormalizePlurals bool     `yaml:"normalize_plurals"`
	Stem             bool     `yaml:"stem"`
	StemLanguage     string   `yaml:"stem_language" validate:"required_if=Stem true"`
}

func DefaultRenderConfig() *RenderConfig {
	o := cloud.DefaultOptions()
	c := text.DefaultCounterConfig()
	return &RenderConfig{
		Width:            o.Width,
		Height:           o.Height,
		BackgroundColor:  "black",
		MinFontSize:      o.MinFontSize,
		MaxFontSize:      o.MaxFontSize,
		FontStep:         o.FontStep,
		MaxWords:         o.MaxWords,
		Margin:           o.Margin,
		PreferHorizontal: o.PreferHorizontal,
		RelativeScaling:  o.RelativeScaling,
		Scale:            o.Scale,
		Seed:             o.Seed,
		NormalizePlurals: c.NormalizePlurals,
		StemLanguage:     c.StemLanguage,
	}
}

// LoadRenderConfig reads a YAML render profile layered over the defaults.
func LoadRenderConfig(path string) (*RenderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read render config %s: %w", path, err)
	}

	cfg := DefaultRenderConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse render config YAML: %w", err)
	}
	return cfg, nil
}

func (c *RenderConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	opts, err := c.Options()
	if err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// Options converts the profile to renderer options.
func (c *RenderConfig) Options() (cloud.Options, error) {
	bg, err := cloud.ParseColor(c.BackgroundColor)
	if err != nil {
		return cloud.Options{}, fmt.Errorf("config error: 'background_color': %w", err)
	}
	return cloud.Options{
		Width:            c.Width,
		Height:           c.Height,
		Background:       bg,
		MinFontSize:      c.MinFontSize,
		MaxFontSize:      c.MaxFontSize,
		FontStep:         c.FontStep,
		MaxWords:         c.MaxWords,
		Margin:           c.Margin,
		PreferHorizontal: c.PreferHorizontal,
		RelativeScaling:  c.RelativeScaling,
		Scale:            c.Scale,
		Seed:             c.Seed,
		FontPath:         c.FontPath,
	}, nil
}

func (c *RenderConfig) CounterConfig() text.CounterConfig {
	return text.CounterConfig{
		ExtraStopwords:   c.ExtraStopwords,
		NormalizePlurals: c.NormalizePlurals,
		Stem:             c.Stem,
		StemLanguage:     c.StemLanguage,
	}
}
