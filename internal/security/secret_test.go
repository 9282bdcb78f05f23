package security

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestSecretRedactionAndJSON(t *testing.T) {
	s := FromString("supersecret")
	for _, verb := range []string{"%v", "%s", "%+v", "%#v", "%q"} {
		if got := fmt.Sprintf(verb, s); got != "[SECRET]" {
			t.Fatalf("%s: unexpected fmt output: %q", verb, got)
		}
	}
	b, err := json.Marshal(struct {
		Password Secret `json:"password"`
	}{s})
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	if string(b) != `{"password":"[SECRET]"}` {
		t.Fatalf("unexpected json marshal: %s", string(b))
	}
	txt, _ := s.MarshalText()
	if string(txt) != "[SECRET]" {
		t.Fatalf("unexpected text marshal: %s", txt)
	}
}

func TestSecretZero(t *testing.T) {
	s := FromString("abc123")
	(&s).Zero()
	for i := range s {
		if s[i] != 0 {
			t.Fatalf("expected zeroed byte at index %d, got %d", i, s[i])
		}
	}

	var nilSecret *Secret
	nilSecret.Zero()
}

func TestSecretUseAndEqual(t *testing.T) {
	s := FromString("pw")
	sentinel := errors.New("boom")
	if err := s.Use(func(b []byte) error {
		if string(b) != "pw" {
			t.Fatalf("unexpected bytes %q", b)
		}
		return sentinel
	}); !errors.Is(err, sentinel) {
		t.Fatalf("expected Use to return fn error, got %v", err)
	}
	if !s.Equal(FromString("pw")) {
		t.Fatalf("expected equal secrets")
	}
	if s.Equal(FromString("pw!")) {
		t.Fatalf("expected different secrets")
	}
	if !Secret(nil).Empty() || s.Empty() {
		t.Fatalf("Empty reported wrong state")
	}
}
