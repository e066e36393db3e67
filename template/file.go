package template

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/cpukit/pkg/types"
)

// LoadFile reads and strictly decodes a template file.
//
// Files with a .yaml or .yml extension are decoded as YAML; everything else
// is treated as JSON with comments and trailing commas permitted (JSONC),
// since template files are operator-authored and benefit from annotation.
// The strict unknown-field rejection applies regardless of container
// format.
func LoadFile(path string) (*types.CustomTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return unmarshalYAML(data)
	default:
		return Unmarshal(jsonc.ToJSON(data))
	}
}

// SaveFile writes a template in canonical JSON form.
func SaveFile(path string, t *types.CustomTemplate) error {
	data, err := Marshal(t)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write template file %s: %w", path, err)
	}
	return nil
}

// unmarshalYAML converts a YAML document to JSON and feeds it through the
// strict JSON decoder, so both container formats share one field set and
// one validation path. Scalars that are text in JSON (leaf, addr, bitmap)
// must be quoted strings in YAML too.
func unmarshalYAML(data []byte) (*types.CustomTemplate, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, types.NewSchemaError("invalid YAML template document", err)
	}
	if tree == nil {
		tree = map[string]any{}
	}
	encoded, err := json.Marshal(tree)
	if err != nil {
		return nil, types.NewSchemaError("YAML template document does not map to JSON", err)
	}
	return Unmarshal(encoded)
}
