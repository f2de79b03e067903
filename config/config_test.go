package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/bodgit/bmpsteg/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	file := filepath.Join(t.TempDir(), "bmpsteg.yaml")
	require.Nil(t, ioutil.WriteFile(file, []byte(content), 0644))
	return file
}

func TestLoadDefaults(t *testing.T) {
	for _, file := range []string{"", filepath.Join(t.TempDir(), "missing.yaml")} {
		c, err := Load(file)
		require.Nil(t, err)
		assert.Equal(t, Default(), c)
	}
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t, `
pattern: spiral
color_scheme: inverted
colors: 16
workers: 4
verbose: true
expression:
  red: "x * 2"
  blue: "255 - b"
`))
	require.Nil(t, err)
	assert.Equal(t, &Config{
		Pattern:     "spiral",
		ColorScheme: "inverted",
		Expression: pattern.Expression{
			Red:  "x * 2",
			Blue: "255 - b",
		},
		Colors:  16,
		Workers: 4,
		Verbose: true,
	}, c)

	// Unset fields keep their defaults
	c, err = Load(writeConfig(t, "colors: 8\n"))
	require.Nil(t, err)
	assert.Equal(t, string(pattern.Gradient), c.Pattern)
	assert.Equal(t, DefaultWorkers, c.Workers)
}

func TestLoadErrors(t *testing.T) {
	tables := map[string]string{
		"yaml":         "pattern: [",
		"pattern":      "pattern: plaid\n",
		"color scheme": "color_scheme: sepia\n",
		"expression":   "expression:\n  red: \"q + 1\"\n",
		"colors":       "colors: 1000\n",
		"workers":      "workers: 0\n",
	}

	for name, content := range tables {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.NotNil(t, err)
		})
	}
}
