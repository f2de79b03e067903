/*
Package bmpsteg is a library for regenerating the pixels of 24-bit BMP files
and hiding text inside them.

A Session tracks the currently selected file along with a short history of
recently used files and modes, and wraps the stateless operations provided by
the bmp, pattern and steg packages with file handling and logging.
*/
package bmpsteg

import (
	"errors"
	"log"
	"sync"

	"github.com/bodgit/bmpsteg/pattern"
)

const maxRecent = 3

// ErrNoFile is returned by operations that need a selected file when none has
// been selected.
var ErrNoFile = errors.New("bmpsteg: no file selected")

// Mode records a pattern and color scheme combination used to generate an
// image.
type Mode struct {
	Pattern     pattern.Pattern
	ColorScheme pattern.ColorScheme
}

// Session holds the state of one user working on BMP files.
type Session struct {
	logger  *log.Logger
	workers int

	mu          sync.Mutex
	file        string
	recentFiles []string
	recentModes []Mode
}

// New returns a Session that logs to logger and uses the given number of
// workers when scanning.
func New(logger *log.Logger, workers int) *Session {
	if workers < 1 {
		workers = 1
	}
	return &Session{
		logger:  logger,
		workers: workers,
	}
}

// File returns the currently selected file, if any.
func (s *Session) File() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file
}

// RecentFiles returns up to three most recently selected files, newest first.
func (s *Session) RecentFiles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.recentFiles...)
}

// RecentModes returns up to three most recently generated modes, newest
// first.
func (s *Session) RecentModes() []Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Mode(nil), s.recentModes...)
}

// Reset forgets the selected file.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.file = ""
}

func (s *Session) selected() (string, error) {
	if f := s.File(); f != "" {
		return f, nil
	}
	return "", ErrNoFile
}

func (s *Session) addFile(file string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.file = file
	for _, f := range s.recentFiles {
		if f == file {
			return
		}
	}
	s.recentFiles = append([]string{file}, s.recentFiles...)
	if len(s.recentFiles) > maxRecent {
		s.recentFiles = s.recentFiles[:maxRecent]
	}
}

func (s *Session) addMode(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recentModes = append([]Mode{m}, s.recentModes...)
	if len(s.recentModes) > maxRecent {
		s.recentModes = s.recentModes[:maxRecent]
	}
}
