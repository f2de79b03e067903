package bmpsteg

import (
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/bodgit/bmpsteg/bmp"
)

const extension = ".bmp"

// ReadFile reads the BMP at file and checks it has a supported header.
func ReadFile(file string) ([]byte, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}
	if _, err := bmp.ParseHeader(b); err != nil {
		return nil, err
	}
	return b, nil
}

// WriteFile writes b to file, adding a .bmp extension if it has none, and
// returns the name actually written.
func WriteFile(file string, b []byte) (string, error) {
	if !strings.EqualFold(filepath.Ext(file), extension) {
		file += extension
	}
	if err := ioutil.WriteFile(file, b, 0644); err != nil {
		return "", err
	}
	return file, nil
}

func isBMP(file string) bool {
	return strings.EqualFold(filepath.Ext(file), extension)
}
