package sofiahash

import "testing"

func TestHashIsDeterministic(t *testing.T) {
	a := Hash("tlJwpbo6")
	b := Hash("tlJwpbo6")
	if a != b {
		t.Errorf("Hash() is not deterministic: %q != %q", a, b)
	}
}

func TestHashLength(t *testing.T) {
	h := Hash("anything")
	if len(h) != 8 {
		t.Errorf("len(Hash()) = %d, want 8", len(h))
	}
}

func TestHashUsesOnlyAlphabetCharacters(t *testing.T) {
	h := Hash("correct horse battery staple")
	for _, c := range h {
		if !containsRune(alphabet, c) {
			t.Errorf("Hash() produced %q, containing character %q outside alphabet", h, c)
		}
	}
}

func TestHashDiffersForDifferentPasswords(t *testing.T) {
	if Hash("password1") == Hash("password2") {
		t.Error("Hash() produced the same token for two different passwords")
	}
}

func TestHashEmptyPassword(t *testing.T) {
	h := Hash("")
	if len(h) != 8 {
		t.Errorf("len(Hash(\"\")) = %d, want 8", len(h))
	}
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
