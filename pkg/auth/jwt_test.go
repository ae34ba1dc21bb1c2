package auth

import (
	"strings"
	"testing"
	"time"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid bearer", "Bearer abc123", "abc123", false},
		{"lowercase bearer", "bearer abc123", "abc123", false},
		{"empty header", "", "", true},
		{"no scheme", "abc123", "", true},
		{"wrong scheme", "Basic abc123", "", true},
		{"empty token", "Bearer ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractToken(tt.header)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("token = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJWTRoundTrip(t *testing.T) {
	a, err := NewJWTAuth("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	token, err := a.GenerateToken("admin-1", "admin@shoplite.dev", "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	user, err := a.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if user.ID != "admin-1" || user.Email != "admin@shoplite.dev" || user.Role != "admin" {
		t.Errorf("user = %+v", user)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	a, _ := NewJWTAuth("secret-a", time.Hour)
	b, _ := NewJWTAuth("secret-b", time.Hour)

	token, err := a.GenerateToken("u", "e@x.com", "admin")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.VerifyToken(token); err == nil {
		t.Error("token signed with another secret should not verify")
	}
}

func TestJWTExpired(t *testing.T) {
	a, _ := NewJWTAuth("secret", time.Nanosecond)
	token, err := a.GenerateToken("u", "e@x.com", "admin")
	if err != nil {
		t.Fatal(err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := a.VerifyToken(token); err == nil {
		t.Error("expired token should not verify")
	}
}

func TestNewJWTAuthRequiresSecret(t *testing.T) {
	if _, err := NewJWTAuth("", time.Hour); err == nil {
		t.Error("empty secret should be rejected")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "argon2id$") {
		t.Fatalf("hash format = %q", hash)
	}

	ok, err := VerifyPassword(hash, "correct horse battery staple")
	if err != nil || !ok {
		t.Errorf("valid password rejected: ok=%v err=%v", ok, err)
	}

	ok, err = VerifyPassword(hash, "wrong password")
	if err != nil || ok {
		t.Errorf("wrong password accepted: ok=%v err=%v", ok, err)
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("not-a-hash", "pw"); err == nil {
		t.Error("malformed hash should error")
	}
	if _, err := VerifyPassword("bcrypt$abc$def", "pw"); err == nil {
		t.Error("unknown scheme should error")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	h1, _ := HashPassword("same password")
	h2, _ := HashPassword("same password")
	if h1 == h2 {
		t.Error("hashes of the same password must differ by salt")
	}
}
