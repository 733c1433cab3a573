package theme

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/mindlayout/pkg/errors"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Load reads a theme file. Files ending in .toml are decoded as TOML,
// .yaml/.yml as YAML and .json as JSON. See Parse.
func Load(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Theme{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "theme %s", path)
		}
		return Theme{}, fmt.Errorf("read theme %s: %w", path, err)
	}
	return Parse(data, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
}

// Parse decodes theme data in the given format ("toml", "yaml", "yml" or
// "json") on top of Default and validates. Keys absent from data keep their
// default value; keys present keep theirs, zero included.
func Parse(data []byte, format string) (Theme, error) {
	t := Default()
	switch format {
	case "toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&t); err != nil {
			return Theme{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "decode TOML theme")
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &t); err != nil {
			return Theme{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "decode YAML theme")
		}
	case "json":
		if err := json.Unmarshal(data, &t); err != nil {
			return Theme{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "decode JSON theme")
		}
	default:
		return Theme{}, errors.New(errors.ErrCodeInvalidTheme, "unsupported theme format %q (must be toml, yaml or json)", format)
	}
	if err := t.Validate(); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// WithDefaults fills every zero-valued field of t from Default and
// validates the result. It is meant for themes built in code, where an
// unset field and a zero field look the same; start from Default instead
// when a spacing must be zero.
func WithDefaults(t Theme) (Theme, error) {
	if err := mergo.Merge(&t, Default()); err != nil {
		return Theme{}, errors.Wrap(errors.ErrCodeInternal, err, "merge theme defaults")
	}
	if err := t.Validate(); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// Validate checks field constraints.
func (t Theme) Validate() error {
	if err := validatorInstance().Struct(t); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTheme, err, "invalid theme")
	}
	return nil
}

// Encode writes t as TOML.
func (t Theme) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
