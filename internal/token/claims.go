// Package token decodes approval tokens for display.
//
// Decoding deliberately skips signature verification: the backend is the sole
// authority on token authenticity. Claims extracted here drive page rendering
// only and must never feed an authorization decision.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed indicates the input is not a decodable token.
var ErrMalformed = errors.New("malformed approval token")

// unknownValue is shown when a display claim is absent from the token.
const unknownValue = "Unknown"

// Claims is the decoded approval token payload.
type Claims struct {
	// JobID identifies the pipeline job awaiting approval.
	JobID string

	// Stage is the pipeline stage the approval gates (e.g. "script").
	Stage string

	// Action is the requested decision (e.g. "approve").
	Action string

	// Exp is the expiry as a Unix timestamp. Zero means the token never
	// expires.
	Exp int64
}

// Decode parses the token payload without verifying its signature and
// returns the display claims. It is pure: decoding the same input twice
// yields identical claims. Malformed input fails with ErrMalformed.
func Decode(raw string) (*Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, mc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	c := &Claims{
		JobID:  stringClaim(mc, "job_id"),
		Stage:  stringClaim(mc, "stage"),
		Action: stringClaim(mc, "action"),
	}

	// A non-numeric exp is ignored rather than rejected: the token still
	// renders, it just never expires on the display side.
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.Exp = exp.Unix()
	}

	return c, nil
}

// Expired reports whether the exp claim is in the past. Tokens without an
// exp claim never expire. This is a display gate, not a security control.
func (c *Claims) Expired(now time.Time) bool {
	if c.Exp == 0 {
		return false
	}
	return time.Unix(c.Exp, 0).Before(now)
}

// DisplayJobID returns the job identifier, or "Unknown" when absent.
func (c *Claims) DisplayJobID() string {
	if c.JobID == "" {
		return unknownValue
	}
	return c.JobID
}

// DisplayStage returns the stage title-cased for display.
func (c *Claims) DisplayStage() string {
	return displayValue(c.Stage)
}

// DisplayAction returns the action title-cased for display.
func (c *Claims) DisplayAction() string {
	return displayValue(c.Action)
}

func displayValue(s string) string {
	if s == "" {
		return unknownValue
	}
	return titleCase(s)
}

// titleCase uppercases the first letter of each word and lowercases the rest.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func stringClaim(mc jwt.MapClaims, name string) string {
	if v, ok := mc[name].(string); ok {
		return v
	}
	return ""
}
