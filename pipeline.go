package bmpsteg

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/bodgit/bmpsteg/bmp"
	"github.com/bodgit/bmpsteg/steg"
)

// Found is a message recovered by Scan.
type Found struct {
	File    string
	Message string
}

type results struct {
	mu    sync.Mutex
	found []Found
}

func (r *results) add(f Found) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.found = append(r.found, f)
}

// printable reports whether message looks like text rather than stray bits
// from an image that has nothing hidden in it
func printable(message string) bool {
	if message == "" {
		return false
	}
	return strings.IndexFunc(message, func(r rune) bool {
		return !unicode.IsPrint(r) && !unicode.IsSpace(r)
	}) < 0
}

func (s *Session) findFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal BMP file
			if !info.Mode().IsRegular() || !isBMP(file) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (s *Session) revealWorker(ctx context.Context, in <-chan string, r *results) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			b, err := ioutil.ReadFile(file)
			if err != nil {
				errc <- err
				return
			}

			message, err := steg.Extract(b)
			if err != nil {
				var (
					fe bmp.FormatError
					ue bmp.UnsupportedFormatError
					de steg.DecodeError
				)
				if errors.As(err, &fe) || errors.As(err, &ue) || errors.As(err, &de) {
					s.logger.Printf("Skipping \"%s\": %s\n", file, err)
					continue
				}
				errc <- err
				return
			}

			if !printable(message) {
				s.logger.Printf("No message in \"%s\"\n", file)
				continue
			}

			r.add(Found{File: file, Message: message})
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path looking for BMP files and returns every message that can be
// revealed from them, sorted by filename. Files that are not supported BMPs,
// or whose message is empty or contains control characters, are skipped. A
// file with nothing hidden in it can still yield a short printable message by
// chance from its natural least significant bits.
func (s *Session) Scan(path string) ([]Found, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := s.findFiles(ctx, dir)
	if err != nil {
		return nil, err
	}
	errcList = append(errcList, errc)

	r := new(results)
	for i := 0; i < s.workers; i++ {
		errc, err := s.revealWorker(ctx, files, r)
		if err != nil {
			return nil, err
		}
		errcList = append(errcList, errc)
	}

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}

	sort.Slice(r.found, func(i, j int) bool { return r.found[i].File < r.found[j].File })

	return r.found, nil
}
