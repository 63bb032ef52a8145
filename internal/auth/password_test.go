package auth

import (
	"errors"
	"strings"
	"testing"
)

// testParams keeps argon2 cheap enough for the test suite.
var testParams = Argon2Params{
	Memory:      8 * 1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  32,
	KeyLength:   32,
}

func TestHash_Format(t *testing.T) {
	hasher := NewPasswordHasherWithParams(testParams)

	encoded, err := hasher.Hash("secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(encoded, "$argon2id$v=19$") {
		t.Errorf("expected argon2id encoding, got %q", encoded)
	}
	if encoded == "secret" {
		t.Error("hash should not equal plaintext")
	}
	if parts := strings.Split(encoded, "$"); len(parts) != 6 {
		t.Errorf("expected 6 sections, got %d in %q", len(parts), encoded)
	}
}

func TestHashVerify_RoundTrip(t *testing.T) {
	hasher := NewPasswordHasherWithParams(testParams)

	passwords := []string{
		"secret",
		"with spaces and Symbols!@#",
		"Unicode日本語",
		" ",
		strings.Repeat("long", 64),
	}

	for _, password := range passwords {
		encoded, err := hasher.Hash(password)
		if err != nil {
			t.Fatalf("hash %q: %v", password, err)
		}

		ok, err := hasher.Verify(encoded, password)
		if err != nil {
			t.Fatalf("verify %q: %v", password, err)
		}
		if !ok {
			t.Errorf("password %q should verify against its own hash", password)
		}
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	hasher := NewPasswordHasherWithParams(testParams)

	encoded, err := hasher.Hash("secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, err := hasher.Verify(encoded, "not-secret")
	if err != nil {
		t.Fatalf("mismatch must not be an error, got %v", err)
	}
	if ok {
		t.Error("wrong password should not verify")
	}
}

func TestHash_UniqueSalts(t *testing.T) {
	hasher := NewPasswordHasherWithParams(testParams)

	first, err := hasher.Hash("secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := hasher.Hash("secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password should differ (distinct salts)")
	}

	for _, encoded := range []string{first, second} {
		ok, err := hasher.Verify(encoded, "secret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Error("both hashes should verify against the original password")
		}
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	hasher := NewPasswordHasherWithParams(testParams)

	malformed := []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=8192,t=1,p=1$only-four-parts",
		"$bcrypt$v=19$m=8192,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=bad$c2FsdA$a2V5",
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$a2V5",
		"$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$!!!",
		"$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$",
		"$argon2id$v=19$m=8192,t=0,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=8192,t=1,p=0$c2FsdA$a2V5",
	}

	for _, encoded := range malformed {
		if _, err := hasher.Verify(encoded, "secret"); !errors.Is(err, ErrInvalidHash) {
			t.Errorf("expected ErrInvalidHash for %q, got %v", encoded, err)
		}
	}
}

func TestVerify_ParamsReadFromHash(t *testing.T) {
	// A hash produced with one parameter set must verify with a hasher
	// configured differently: the encoded string is authoritative.
	old := NewPasswordHasherWithParams(Argon2Params{
		Memory:      4 * 1024,
		Iterations:  2,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	})
	current := NewPasswordHasherWithParams(testParams)

	encoded, err := old.Hash("secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, err := current.Verify(encoded, "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("hash with legacy params should still verify")
	}
}

func TestVerify_EmptyPassword(t *testing.T) {
	hasher := NewPasswordHasherWithParams(testParams)

	encoded, err := hasher.Hash("secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, err := hasher.Verify(encoded, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("empty password should not verify")
	}
}
