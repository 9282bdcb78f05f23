package security

import "testing"

func TestPasswordHash_KnownVector(t *testing.T) {
	// sha256("secret")
	const want = "2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b"
	if got := PasswordHash(FromString("secret")); got != want {
		t.Fatalf("PasswordHash(secret) = %s, want %s", got, want)
	}
}

func TestPasswordHash_Deterministic(t *testing.T) {
	a := PasswordHash(FromString("correct horse"))
	b := PasswordHash(FromString("correct horse"))
	if a != b {
		t.Fatalf("expected identical digests, got %s and %s", a, b)
	}
	if a == "correct horse" {
		t.Fatalf("digest must not equal plaintext")
	}
}

func TestVerifyPassword(t *testing.T) {
	hash := PasswordHash(FromString("secret"))
	cases := []struct {
		name string
		pw   string
		want bool
	}{
		{"exact", "secret", true},
		{"appended char", "secret!", false},
		{"changed char", "secreT", false},
		{"empty", "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := VerifyPassword(hash, FromString(c.pw)); got != c.want {
				t.Fatalf("VerifyPassword(%q) = %v, want %v", c.pw, got, c.want)
			}
		})
	}
	if VerifyPassword("", FromString("")) {
		t.Fatalf("empty hash must never verify")
	}
}
