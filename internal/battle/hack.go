package battle

import (
	"encoding/base64"
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Difficulty selects the encoding scheme and time limit of a hack challenge.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Scheme names the reversible transform applied to the answer.
type Scheme string

const (
	SchemeReverse Scheme = "reverse"
	SchemeCaesar  Scheme = "caesar"
	SchemeBase64  Scheme = "base64"
)

// HackOutcome is the tagged result of a validation attempt.
type HackOutcome string

const (
	HackSolved  HackOutcome = "solved"
	HackWrong   HackOutcome = "wrong"
	HackExpired HackOutcome = "expired"
)

// HackChallenge is a timed puzzle attached to a paused battle. The answer is
// held server-side only and never marshaled.
type HackChallenge struct {
	ID         string        `json:"id"`
	Payload    string        `json:"payload"`
	Scheme     Scheme        `json:"scheme"`
	Difficulty Difficulty    `json:"difficulty"`
	CreatedAt  time.Time     `json:"created_at"`
	TimeLimit  time.Duration `json:"time_limit"`

	answer string
}

var hackTimeLimits = map[Difficulty]time.Duration{
	DifficultyEasy:   60 * time.Second,
	DifficultyMedium: 45 * time.Second,
	DifficultyHard:   30 * time.Second,
}

var hackWords = []string{
	"thunderbolt", "surf", "blizzard", "earthquake", "psybeam",
	"hyperbeam", "tackle", "ember", "vinewhip", "aurora",
	"tempest", "eclipse", "static", "torrent", "overgrow",
}

const caesarShift = 3

func caesarEncode(s string, shift int) string {
	out := []rune(s)
	for i, r := range out {
		switch {
		case r >= 'a' && r <= 'z':
			out[i] = 'a' + (r-'a'+rune(shift))%26
		case r >= 'A' && r <= 'Z':
			out[i] = 'A' + (r-'A'+rune(shift))%26
		}
	}
	return string(out)
}

func reverseString(s string) string {
	out := []rune(s)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

// GenerateChallenge produces a challenge whose decoded payload is the
// expected answer. The rng picks the plaintext; scheme and time limit follow
// the difficulty.
func GenerateChallenge(difficulty Difficulty, rng *rand.Rand, now time.Time) *HackChallenge {
	limit, ok := hackTimeLimits[difficulty]
	if !ok {
		difficulty = DifficultyEasy
		limit = hackTimeLimits[DifficultyEasy]
	}
	word := hackWords[rng.Intn(len(hackWords))]

	ch := &HackChallenge{
		ID:         ulid.Make().String(),
		Difficulty: difficulty,
		CreatedAt:  now,
		TimeLimit:  limit,
		answer:     word,
	}
	switch difficulty {
	case DifficultyMedium:
		ch.Scheme = SchemeCaesar
		ch.Payload = caesarEncode(word, caesarShift)
	case DifficultyHard:
		ch.Scheme = SchemeBase64
		ch.Payload = base64.StdEncoding.EncodeToString([]byte(word))
	default:
		ch.Scheme = SchemeReverse
		ch.Payload = reverseString(word)
	}
	return ch
}

// ExpiresAt returns the wall-clock deadline for the challenge.
func (c *HackChallenge) ExpiresAt() time.Time { return c.CreatedAt.Add(c.TimeLimit) }

// Remaining returns the time left before expiry, floored at zero.
func (c *HackChallenge) Remaining(now time.Time) time.Duration {
	d := c.ExpiresAt().Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Expired reports whether the deadline has passed.
func (c *HackChallenge) Expired(now time.Time) bool { return now.After(c.ExpiresAt()) }

// ValidateChallenge checks a submitted answer. The time check strictly
// precedes the answer check: a correct answer after the deadline is still
// expired. Comparison trims whitespace and ignores case.
func ValidateChallenge(c *HackChallenge, submitted string, now time.Time) HackOutcome {
	if c.Expired(now) {
		return HackExpired
	}
	if strings.EqualFold(strings.TrimSpace(submitted), c.answer) {
		return HackSolved
	}
	return HackWrong
}
