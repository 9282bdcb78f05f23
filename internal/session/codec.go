package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/toeirei/quizmaster/internal/security"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24
	hkdfInfo  = "quizmaster session cookie v1"
)

// ErrNoSecret is returned by NewCodec for an empty secret.
var ErrNoSecret = errors.New("session secret must not be empty")

// Codec seals Data into an opaque cookie value and opens it again.
type Codec struct {
	key [keySize]byte
}

// NewCodec derives the cookie key from secret with HKDF-SHA256.
func NewCodec(secret security.Secret) (*Codec, error) {
	if secret.Empty() {
		return nil, ErrNoSecret
	}
	c := &Codec{}
	err := secret.Use(func(b []byte) error {
		r := hkdf.New(sha256.New, b, nil, []byte(hkdfInfo))
		_, err := io.ReadFull(r, c.key[:])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}
	return c, nil
}

// Encode returns nonce||box as unpadded URL-safe base64.
func (c *Codec) Encode(d Data) (string, error) {
	plain, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], plain, &nonce, &c.key)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decode opens a value produced by Encode. Anything that does not
// authenticate yields an empty Data.
func (c *Codec) Decode(value string) Data {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return Data{}
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &c.key)
	if !ok {
		return Data{}
	}
	var d Data
	if err := json.Unmarshal(plain, &d); err != nil {
		return Data{}
	}
	return d
}
