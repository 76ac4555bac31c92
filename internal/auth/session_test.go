package auth

import "testing"

func TestNewSessionToken_Format(t *testing.T) {
	t.Parallel()

	token, err := NewSessionToken()
	if err != nil {
		t.Fatalf("NewSessionToken failed: %v", err)
	}

	if !ValidSessionToken(token) {
		t.Errorf("generated token should pass format check, got %q", token)
	}
}

func TestNewSessionToken_Uniqueness(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := NewSessionToken()
		if err != nil {
			t.Fatalf("NewSessionToken failed: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token generated: %s", token)
		}
		seen[token] = true
	}
}

func TestValidSessionToken_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"missing prefix", "abcdef0123456789abcdef0123456789abcdef0123456789"},
		{"too short", "vt_abcdef"},
		{"uppercase hex", "vt_ABCDEF0123456789ABCDEF0123456789ABCDEF0123456789"},
		{"non hex", "vt_zzzzzz0123456789abcdef0123456789abcdef0123456789"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if ValidSessionToken(tt.token) {
				t.Errorf("ValidSessionToken(%q) should be false", tt.token)
			}
		})
	}
}
