package plan

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/pelletier/go-toml/v2"
	"sigs.k8s.io/yaml"

	oerrors "github.com/opmodel/pomver/internal/errors"
	"github.com/opmodel/pomver/internal/output"
)

//go:embed schema.cue
var schemaFS embed.FS

// Format is a plan file format.
type Format string

// Plan file formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatCUE  Format = "cue"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", oerrors.NewConfigurationError(
			fmt.Sprintf("unsupported plan file %s", filepath.Base(path)),
			nil,
			"Use a .yaml, .json, .toml or .cue file")
	}
}

// Load reads and validates the plan file at path.
func Load(path string) (*Plan, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError("plan file not found", path, "")
		}
		return nil, fmt.Errorf("reading plan %s: %w", path, err)
	}
	p, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	output.Debug("loaded plan", "path", path, "modules", len(p.Modules))
	return p, nil
}

// Parse decodes and validates plan data.
func Parse(data []byte, format Format) (*Plan, error) {
	s, err := newSchema()
	if err != nil {
		return nil, err
	}

	p := &Plan{}
	switch format {
	case FormatYAML, FormatJSON:
		// JSON is valid YAML; both go through the json tags.
		if err := yaml.UnmarshalStrict(data, p); err != nil {
			return nil, oerrors.NewValidationError(err.Error(), "", "", "")
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(p); err != nil {
			return nil, oerrors.NewValidationError(err.Error(), "", "", "")
		}
	case FormatCUE:
		v := s.ctx.CompileBytes(data)
		if v.Err() != nil {
			return nil, oerrors.NewValidationError(cueerrors.Details(v.Err(), nil), "", "", "")
		}
		v = s.plan.Unify(v)
		if err := v.Validate(cue.Concrete(true)); err != nil {
			return nil, schemaError(err)
		}
		if err := v.Decode(p); err != nil {
			return nil, fmt.Errorf("decoding plan: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown plan format %q", format)
	}

	if err := s.validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks p against the plan schema.
func Validate(p *Plan) error {
	s, err := newSchema()
	if err != nil {
		return err
	}
	return s.validate(p)
}

// Save writes p to path in the format matching its extension.
func Save(p *Plan, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var out output.OutputFormat
	switch format {
	case FormatYAML:
		out = output.FormatYAML
	case FormatJSON:
		out = output.FormatJSON
	case FormatTOML:
		out = output.FormatTOML
	default:
		return oerrors.NewConfigurationError(
			fmt.Sprintf("cannot write plan as %s", format), nil, "Use a .yaml, .json or .toml file")
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, out, p); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing plan %s: %w", path, err)
	}
	return nil
}

type schema struct {
	ctx  *cue.Context
	plan cue.Value
}

func newSchema() (*schema, error) {
	data, err := schemaFS.ReadFile("schema.cue")
	if err != nil {
		return nil, fmt.Errorf("reading embedded schema: %w", err)
	}
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data)
	if v.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", v.Err())
	}
	return &schema{ctx: ctx, plan: v.LookupPath(cue.ParsePath("#Plan"))}, nil
}

func (s *schema) validate(p *Plan) error {
	v := s.plan.Unify(s.ctx.Encode(p))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return schemaError(err)
	}
	return nil
}

func schemaError(err error) error {
	return &oerrors.DetailError{
		Type:    "plan does not match schema",
		Message: strings.TrimSpace(cueerrors.Details(err, nil)),
		Hint:    "Every module needs groupId, artifactId and a non-snapshot release version",
		Cause:   oerrors.ErrValidation,
	}
}
