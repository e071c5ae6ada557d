package options

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/rxtimeline/pkg/errors"
)

// DecodeTOML reads overrides from TOML. Unknown keys are rejected.
func DecodeTOML(r io.Reader) (Overrides, error) {
	var ov Overrides
	md, err := toml.NewDecoder(r).Decode(&ov)
	if err != nil {
		return Overrides{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml options")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Overrides{}, errors.New(errors.ErrCodeInvalidConfig, "unknown option keys: %s", strings.Join(keys, ", "))
	}
	return ov, nil
}

// DecodeJSON reads overrides from JSON. Unknown keys are rejected.
func DecodeJSON(r io.Reader) (Overrides, error) {
	var ov Overrides
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ov); err != nil {
		return Overrides{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode json options")
	}
	return ov, nil
}

// DecodeYAML reads overrides from YAML, using the same snake_case keys as
// TOML. Unknown keys are rejected; an empty document yields no overrides.
func DecodeYAML(r io.Reader) (Overrides, error) {
	var ov Overrides
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ov); err != nil && err != io.EOF {
		return Overrides{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml options")
	}
	return ov, nil
}

// LoadFile reads an overrides file, choosing the decoder by extension
// (.json, .yaml or .yml, otherwise TOML), and merges it over [Default].
func LoadFile(path string) (*Options, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "options file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read options file %s", path)
	}

	var ov Overrides
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		ov, err = DecodeJSON(bytes.NewReader(data))
	case ".yaml", ".yml":
		ov, err = DecodeYAML(bytes.NewReader(data))
	default:
		ov, err = DecodeTOML(bytes.NewReader(data))
	}
	if err != nil {
		return nil, err
	}
	return New(ov)
}
