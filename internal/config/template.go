package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

//go:embed config.yaml.tmpl
var configTemplate string

// templateData fills the config file template.
type templateData struct {
	Strict         bool
	Verify         bool
	Workers        int
	TagURLTemplate string
	Timestamps     bool
}

// RenderTemplate renders a commented config file holding the values of cfg.
// Unset values are written with their defaults.
func RenderTemplate(cfg *Config) ([]byte, error) {
	cfg = cfg.WithDefaults()

	timestamps := true
	if cfg.Log.Timestamps != nil {
		timestamps = *cfg.Log.Timestamps
	}

	tmpl, err := template.New("config.yaml").Parse(configTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing config template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, templateData{
		Strict:         cfg.Strict,
		Verify:         *cfg.Verify,
		Workers:        cfg.Workers,
		TagURLTemplate: cfg.SCM.TagURLTemplate,
		Timestamps:     timestamps,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering config template: %w", err)
	}
	return buf.Bytes(), nil
}
