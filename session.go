package bmpsteg

import (
	"bytes"
	"image"
	_ "image/gif"  // register GIF decoder for Convert
	_ "image/jpeg" // register JPEG decoder for Convert
	_ "image/png"  // register PNG decoder for Convert
	"os"

	"github.com/bodgit/bmpsteg/bmp"
	"github.com/bodgit/bmpsteg/pattern"
	"github.com/bodgit/bmpsteg/steg"
	_ "golang.org/x/image/bmp" // register BMP decoder for Convert
	"golang.org/x/text/unicode/norm"
)

// Select makes file the current file after checking it is a supported BMP.
func (s *Session) Select(file string) error {
	if _, err := ReadFile(file); err != nil {
		return err
	}
	s.addFile(file)
	s.logger.Printf("Selected \"%s\"\n", file)
	return nil
}

// Blank creates a black BMP of the given size at file and selects it.
func (s *Session) Blank(file string, width, height int) (string, error) {
	b, err := bmp.New(width, height)
	if err != nil {
		return "", err
	}
	if file, err = WriteFile(file, b); err != nil {
		return "", err
	}
	s.addFile(file)
	s.logger.Printf("Created %dx%d \"%s\"\n", width, height, file)
	return file, nil
}

// Convert decodes the PNG, JPEG, GIF or BMP image at src, writes it to dst
// as a 24-bit BMP and selects the result. If colors is non-zero the image is
// reduced to at most that many colors first.
func (s *Session) Convert(src, dst string, colors int) (string, error) {
	f, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer f.Close()

	m, format, err := image.Decode(f)
	if err != nil {
		return "", err
	}

	b := new(bytes.Buffer)
	if err := bmp.Convert(b, m, colors); err != nil {
		return "", err
	}

	if dst, err = WriteFile(dst, b.Bytes()); err != nil {
		return "", err
	}
	s.addFile(dst)
	s.logger.Printf("Converted %s \"%s\" to \"%s\"\n", format, src, dst)
	return dst, nil
}

func (s *Session) generate(dst string, m Mode, fn func([]byte) ([]byte, error)) (string, error) {
	file, err := s.selected()
	if err != nil {
		return "", err
	}

	b, err := ReadFile(file)
	if err != nil {
		return "", err
	}

	out, err := fn(b)
	if err != nil {
		return "", err
	}

	if dst, err = WriteFile(dst, out); err != nil {
		return "", err
	}
	s.addMode(m)
	s.logger.Printf("Generated \"%s\" from \"%s\" using %s/%s\n", dst, file, m.Pattern, m.ColorScheme)
	return dst, nil
}

// Generate regenerates the pixels of the selected file using pattern p and
// color scheme cs and writes the result to dst.
func (s *Session) Generate(p pattern.Pattern, cs pattern.ColorScheme, dst string) (string, error) {
	return s.generate(dst, Mode{p, cs}, func(b []byte) ([]byte, error) {
		return pattern.Synthesize(b, p, cs)
	})
}

// GenerateExpression is like Generate but uses the formulas in e.
func (s *Session) GenerateExpression(e pattern.Expression, cs pattern.ColorScheme, dst string) (string, error) {
	return s.generate(dst, Mode{"expression", cs}, func(b []byte) ([]byte, error) {
		return pattern.SynthesizeExpression(b, e, cs)
	})
}

// Capacity returns the maximum length in bytes of a message that can be
// hidden in the selected file.
func (s *Session) Capacity() (int, error) {
	file, err := s.selected()
	if err != nil {
		return 0, err
	}
	b, err := ReadFile(file)
	if err != nil {
		return 0, err
	}
	n, err := steg.Capacity(b)
	if err != nil {
		return 0, err
	}
	// Room for the terminator
	if n > 0 {
		n--
	}
	return n, nil
}

// Hide hides message in the selected file and writes the result to dst. The
// message is normalized to Unicode NFC first.
func (s *Session) Hide(message, dst string) (string, error) {
	file, err := s.selected()
	if err != nil {
		return "", err
	}

	b, err := ReadFile(file)
	if err != nil {
		return "", err
	}

	message = norm.NFC.String(message)
	out, err := steg.Embed(b, message)
	if err != nil {
		return "", err
	}

	if dst, err = WriteFile(dst, out); err != nil {
		return "", err
	}
	s.logger.Printf("Hid %d bytes from \"%s\" in \"%s\"\n", len(message), file, dst)
	return dst, nil
}

// Reveal returns the message hidden in the selected file.
func (s *Session) Reveal() (string, error) {
	file, err := s.selected()
	if err != nil {
		return "", err
	}

	b, err := ReadFile(file)
	if err != nil {
		return "", err
	}

	message, err := steg.Extract(b)
	if err != nil {
		return "", err
	}
	s.logger.Printf("Revealed %d bytes from \"%s\"\n", len(message), file)
	return message, nil
}
