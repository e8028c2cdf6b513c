package utils

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash := HashPassword("hunter2")

	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("HashPassword() = %q; want $argon2id$ prefix", hash)
	}
	if hash == HashPassword("hunter2") {
		t.Error("two hashes of the same password should differ (random salt)")
	}
}

func TestVerifyPassword(t *testing.T) {
	hash := HashPassword("correct horse battery staple")

	testCases := []struct {
		name     string
		password string
		encoded  string
		expected bool
	}{
		{"correct password", "correct horse battery staple", hash, true},
		{"wrong password", "Tr0ub4dor&3", hash, false},
		{"empty password", "", hash, false},
		{"empty hash", "correct horse battery staple", "", false},
		{"garbage hash", "correct horse battery staple", "not-a-hash", false},
		{"wrong scheme", "correct horse battery staple", "$argon2i$m=65536,t=1,p=4$YWJj$ZGVm", false},
		{"truncated hash", "correct horse battery staple", hash[:len(hash)-10], false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := VerifyPassword(tc.password, tc.encoded)
			if actual != tc.expected {
				t.Errorf("VerifyPassword(%q, ...) = %v; want %v", tc.password, actual, tc.expected)
			}
		})
	}
}

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(40)
	if len(s) != 40 {
		t.Errorf("len = %d; want 40", len(s))
	}
	for _, r := range s {
		if !strings.ContainsRune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", r) {
			t.Errorf("unexpected character %q", r)
		}
	}
	if s == GenerateRandomString(40) {
		t.Error("two generated strings should differ")
	}
}

// Rejection sampling keeps the alphabet uniform; with 62k samples the odds
// of any of the 62 characters never appearing are negligible.
func TestGenerateRandomStringCoversAlphabet(t *testing.T) {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	seen := make(map[rune]bool)
	for _, r := range GenerateRandomString(62 * 1000) {
		seen[r] = true
	}
	for _, r := range chars {
		if !seen[r] {
			t.Errorf("character %q never generated", r)
		}
	}
}
