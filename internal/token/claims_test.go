package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// signedToken builds a real signed token. The signature is irrelevant to
// Decode, which never verifies it, but keeps fixtures realistic.
func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestDecode_AllClaims(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour).Unix()
	raw := signedToken(t, jwt.MapClaims{
		"job_id": "job-42",
		"stage":  "script review",
		"action": "approve",
		"exp":    exp,
	})

	claims, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if claims.JobID != "job-42" {
		t.Errorf("JobID = %q, want %q", claims.JobID, "job-42")
	}
	if claims.Stage != "script review" {
		t.Errorf("Stage = %q, want %q", claims.Stage, "script review")
	}
	if claims.Action != "approve" {
		t.Errorf("Action = %q, want %q", claims.Action, "approve")
	}
	if claims.Exp != exp {
		t.Errorf("Exp = %d, want %d", claims.Exp, exp)
	}
}

func TestDecode_MissingFields(t *testing.T) {
	t.Parallel()

	claims, err := Decode(signedToken(t, jwt.MapClaims{}))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if claims.Exp != 0 {
		t.Errorf("Exp = %d, want 0", claims.Exp)
	}
	if got := claims.DisplayJobID(); got != "Unknown" {
		t.Errorf("DisplayJobID = %q, want %q", got, "Unknown")
	}
	if got := claims.DisplayStage(); got != "Unknown" {
		t.Errorf("DisplayStage = %q, want %q", got, "Unknown")
	}
	if got := claims.DisplayAction(); got != "Unknown" {
		t.Errorf("DisplayAction = %q, want %q", got, "Unknown")
	}
}

func TestDecode_Idempotent(t *testing.T) {
	t.Parallel()

	raw := signedToken(t, jwt.MapClaims{"job_id": "j1", "stage": "audio", "action": "approve"})

	first, err := Decode(raw)
	if err != nil {
		t.Fatalf("first Decode: %v", err)
	}
	second, err := Decode(raw)
	if err != nil {
		t.Fatalf("second Decode: %v", err)
	}

	if *first != *second {
		t.Errorf("decodes differ: %+v vs %+v", first, second)
	}
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "garbage", "a.b", "not.base64.payload"} {
		if _, err := Decode(raw); !errors.Is(err, ErrMalformed) {
			t.Errorf("Decode(%q) error = %v, want ErrMalformed", raw, err)
		}
	}
}

func TestDecode_NonNumericExp(t *testing.T) {
	t.Parallel()

	claims, err := Decode(signedToken(t, jwt.MapClaims{"job_id": "j1", "exp": "soon"}))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if claims.Exp != 0 {
		t.Errorf("Exp = %d, want 0 for non-numeric exp", claims.Exp)
	}
}

func TestExpired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tests := []struct {
		name string
		exp  int64
		want bool
	}{
		{"absent", 0, false},
		{"past", now.Add(-time.Minute).Unix(), true},
		{"future", now.Add(time.Minute).Unix(), false},
	}

	for _, tt := range tests {
		c := &Claims{Exp: tt.exp}
		if got := c.Expired(now); got != tt.want {
			t.Errorf("%s: Expired = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDisplay_TitleCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"script review", "Script Review"},
		{"APPROVE", "Approve"},
		{"audio", "Audio"},
	}

	for _, tt := range tests {
		c := &Claims{Stage: tt.in}
		if got := c.DisplayStage(); got != tt.want {
			t.Errorf("DisplayStage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
