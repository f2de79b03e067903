/*
Package seal encrypts message text with a passphrase before it is hidden in
an image.

A key is derived from the passphrase with Argon2id and a random salt, and the
message is sealed with ChaCha20-Poly1305. The salt, nonce and ciphertext are
returned base64 encoded, so the result is plain text that never contains a
zero byte and can be embedded like any other message.
*/
package seal

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	saltSize = 16

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

var (
	errNoPassphrase = errors.New("seal: empty passphrase")
	errShort        = errors.New("seal: sealed message is too short")
	errOpen         = errors.New("seal: wrong passphrase or corrupted message")
)

var encoding = base64.RawStdEncoding

func deriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, chacha20poly1305.KeySize)
}

// Seal encrypts message with passphrase and returns the armored result.
func Seal(message, passphrase string) (string, error) {
	return seal(rand.Reader, message, passphrase)
}

func seal(r io.Reader, message, passphrase string) (string, error) {
	if passphrase == "" {
		return "", errNoPassphrase
	}

	buf := make([]byte, saltSize+chacha20poly1305.NonceSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	salt, nonce := buf[:saltSize], buf[saltSize:]

	aead, err := chacha20poly1305.New(deriveKey(passphrase, salt))
	if err != nil {
		return "", err
	}

	return encoding.EncodeToString(aead.Seal(buf, nonce, []byte(message), nil)), nil
}

// Open reverses Seal.
func Open(sealed, passphrase string) (string, error) {
	if passphrase == "" {
		return "", errNoPassphrase
	}

	b, err := encoding.DecodeString(sealed)
	if err != nil {
		return "", err
	}
	if len(b) < saltSize+chacha20poly1305.NonceSize+chacha20poly1305.Overhead {
		return "", errShort
	}

	salt, nonce, ct := b[:saltSize], b[saltSize:saltSize+chacha20poly1305.NonceSize], b[saltSize+chacha20poly1305.NonceSize:]

	aead, err := chacha20poly1305.New(deriveKey(passphrase, salt))
	if err != nil {
		return "", err
	}

	pt, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return "", errOpen
	}
	return string(pt), nil
}
