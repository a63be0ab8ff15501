package auth

import "testing"

func TestHashAndVerifyToken(t *testing.T) {
	t.Parallel()

	hash, err := HashToken("catalog-admin-token-0001")
	if err != nil {
		t.Fatalf("hash token: %v", err)
	}
	verifier := NewVerifier(hash)
	if !verifier.Enabled() {
		t.Fatalf("expected verifier to be enabled")
	}
	if !verifier.Verify(" catalog-admin-token-0001 ") {
		t.Fatalf("expected token verification to succeed")
	}
	if verifier.Verify("catalog-admin-token-0002") {
		t.Fatalf("did not expect wrong token to verify")
	}
}

func TestHashTokenRejectsShortTokens(t *testing.T) {
	t.Parallel()

	if _, err := HashToken("short"); err == nil {
		t.Fatalf("expected short token to be rejected")
	}
}

func TestEmptyVerifierRejectsEverything(t *testing.T) {
	t.Parallel()

	verifier := NewVerifier("  ")
	if verifier.Enabled() || verifier.Verify("anything") {
		t.Fatalf("empty verifier must reject")
	}
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Bearer abc":   "abc",
		"bearer  abc ": "abc",
		"Basic abc":    "",
		"abc":          "",
		"":             "",
	}
	for header, want := range cases {
		if got := BearerToken(header); got != want {
			t.Fatalf("BearerToken(%q) = %q, want %q", header, got, want)
		}
	}
}
