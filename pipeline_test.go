package bmpsteg

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/bmpsteg/bmp"
	"github.com/bodgit/bmpsteg/steg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHidden(t *testing.T, file, message string) {
	b, err := bmp.New(10, 10)
	require.Nil(t, err)
	if message != "" {
		b, err = steg.Embed(b, message)
		require.Nil(t, err)
	}
	require.Nil(t, ioutil.WriteFile(file, b, 0644))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	require.Nil(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.Nil(t, os.MkdirAll(filepath.Join(dir, ".hidden"), 0755))

	writeHidden(t, filepath.Join(dir, "one.bmp"), "first")
	writeHidden(t, filepath.Join(dir, "sub", "two.BMP"), "second")
	writeHidden(t, filepath.Join(dir, "blank.bmp"), "")
	writeHidden(t, filepath.Join(dir, "control.bmp"), "\x01\x02\x7f")
	writeHidden(t, filepath.Join(dir, ".hidden", "three.bmp"), "ignored")
	writeHidden(t, filepath.Join(dir, "four.png"), "not a bmp extension")
	require.Nil(t, ioutil.WriteFile(filepath.Join(dir, "junk.bmp"), []byte("junk"), 0644))

	found, err := newSession().Scan(dir)
	require.Nil(t, err)
	assert.Equal(t, []Found{
		{filepath.Join(dir, "one.bmp"), "first"},
		{filepath.Join(dir, "sub", "two.BMP"), "second"},
	}, found)
}

func TestScanMissing(t *testing.T) {
	_, err := newSession().Scan(filepath.Join(t.TempDir(), "missing"))
	assert.NotNil(t, err)
}

func TestPrintable(t *testing.T) {
	tables := map[string]bool{
		"":              false,
		"hello":         true,
		"line\nbreak\t": true,
		"héllo 🌍":       true,
		"\x01":          false,
		"ok\x1bthen":    false,
	}

	for message, want := range tables {
		assert.Equal(t, want, printable(message), "%q", message)
	}
}
