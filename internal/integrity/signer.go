package integrity

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMissingSecret = errors.New("integrity secret not set")

// Signer issues and checks HMAC-SHA256 signatures over the canonical JSON
// form of plan content handed out to clients.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Signer{
		secret: []byte(secret),
	}, nil
}

// Sign returns the hex encoded signature of v.
func (s *Signer) Sign(v any) (string, error) {
	canonical, err := Canonical(v)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(s.mac(canonical)), nil
}

// Verify reports whether signature matches v. Malformed signatures and
// values that cannot be serialized are reported as a mismatch.
func (s *Signer) Verify(v any, signature string) bool {
	got, err := hex.DecodeString(signature)
	if err != nil || len(got) != sha256.Size {
		return false
	}

	canonical, err := Canonical(v)
	if err != nil {
		return false
	}

	return hmac.Equal(got, s.mac(canonical))
}

func (s *Signer) mac(payload []byte) []byte {
	h := hmac.New(sha256.New, s.secret)
	h.Write(payload)
	return h.Sum(nil)
}

// Canonical serializes v with sorted object keys, no insignificant
// whitespace and numbers kept as written.
func Canonical(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tree); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
