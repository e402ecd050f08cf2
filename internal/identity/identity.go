package identity

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/blake2b"
)

// Header carries the browser fingerprint that identifies a user. There are no accounts.
const Header = "X-Fingerprint"

const (
	minFingerprintLen = 8
	maxFingerprintLen = 512
)

var (
	ErrMissingFingerprint = errors.New("missing fingerprint")
	ErrInvalidFingerprint = errors.New("invalid fingerprint")
)

type ctxKey struct{}

// KeyFromFingerprint derives the stable user key stored alongside every record.
// The raw fingerprint never reaches the database.
func KeyFromFingerprint(fingerprint string) (string, error) {
	fingerprint = strings.TrimSpace(fingerprint)
	if fingerprint == "" {
		return "", ErrMissingFingerprint
	}
	if len(fingerprint) < minFingerprintLen || len(fingerprint) > maxFingerprintLen {
		return "", ErrInvalidFingerprint
	}
	for _, r := range fingerprint {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) {
			return "", ErrInvalidFingerprint
		}
	}

	sum := blake2b.Sum256([]byte(fingerprint))
	return hex.EncodeToString(sum[:]), nil
}

func WithUser(ctx context.Context, userKey string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userKey)
}

func FromContext(ctx context.Context) (string, bool) {
	userKey, ok := ctx.Value(ctxKey{}).(string)
	return userKey, ok && userKey != ""
}
