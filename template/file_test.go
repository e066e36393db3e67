package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/cpukit/pkg/types"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileJSON(t *testing.T) {
	path := writeTempFile(t, "template.json", testTemplateJSON)
	template, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, template.CpuidModifiers, 2)
	assert.Len(t, template.MsrModifiers, 2)
}

func TestLoadFileJSONC(t *testing.T) {
	commented := `{
		// Pin the low feature bit on MSR 0x10a.
		"msr_modifiers": [
			{"addr": "0x10a", "bitmap": "0bxxxxxxx1"}, /* trailing comma ok */
		],
	}`
	path := writeTempFile(t, "template.jsonc", commented)

	template, err := LoadFile(path)
	require.NoError(t, err)

	plain, err := Unmarshal([]byte(`{"msr_modifiers": [{"addr": "0x10a", "bitmap": "0bxxxxxxx1"}]}`))
	require.NoError(t, err)
	assert.Equal(t, plain, template)
}

func TestLoadFileJSONCStillStrict(t *testing.T) {
	path := writeTempFile(t, "template.jsonc", `{
		// comments don't soften validation
		"msr_modifers": []
	}`)
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.ErrKindSchema))
}

func TestLoadFileYAML(t *testing.T) {
	yamlDoc := `
cpuid_modifiers:
  - leaf: "0x1"
    subleaf: "0x0"
    flags: 0
    modifiers:
      - register: eax
        bitmap: "0bxxxxxxxxxxxx00110000011011100100"
msr_modifiers:
  - addr: "0x10a"
    bitmap: "0bxxxxxxx1"
`
	jsonDoc := `{
		"cpuid_modifiers": [
			{
				"leaf": "0x1",
				"subleaf": "0x0",
				"flags": 0,
				"modifiers": [
					{"register": "eax", "bitmap": "0bxxxxxxxxxxxx00110000011011100100"}
				]
			}
		],
		"msr_modifiers": [
			{"addr": "0x10a", "bitmap": "0bxxxxxxx1"}
		]
	}`

	yamlPath := writeTempFile(t, "template.yaml", yamlDoc)
	fromYAML, err := LoadFile(yamlPath)
	require.NoError(t, err)

	fromJSON, err := Unmarshal([]byte(jsonDoc))
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
}

func TestLoadFileYAMLRejectsUnknownFields(t *testing.T) {
	path := writeTempFile(t, "template.yaml", "cpuid_mods: []\n")
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.ErrKindSchema))
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	original, err := Unmarshal([]byte(testTemplateJSON))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, SaveFile(path, original))

	reloaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, reloaded)
}
