package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"
)

const (
	saltLength = 16
	keyLength  = 32
)

// ErrMalformedHash is returned when a stored digest is not an argon2id PHC string.
var ErrMalformedHash = errors.New("malformed password hash")

// HashParams are the argon2id cost parameters.
type HashParams struct {
	MemoryKiB  uint32
	Iterations uint32
	Threads    uint8
}

// DefaultHashParams follows the OWASP argon2id baseline.
var DefaultHashParams = HashParams{MemoryKiB: 64 * 1024, Iterations: 3, Threads: 2}

// Hasher produces and verifies password digests.
type Hasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, digest, password string) (bool, error)
}

// PasswordHasher hashes passwords with argon2id.
// At most maxConcurrent derivations run at the same time.
type PasswordHasher struct {
	params HashParams
	sem    *semaphore.Weighted
}

var _ Hasher = (*PasswordHasher)(nil)

// NewPasswordHasher creates a hasher with the given parameters.
func NewPasswordHasher(params HashParams, maxConcurrent int64) *PasswordHasher {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &PasswordHasher{
		params: params,
		sem:    semaphore.NewWeighted(maxConcurrent),
	}
}

// Hash returns a salted PHC-formatted digest of password.
func (h *PasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	if h.params.MemoryKiB == 0 || h.params.Iterations == 0 || h.params.Threads == 0 {
		return "", fmt.Errorf("invalid argon2 parameters %+v", h.params)
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), salt, h.params.Iterations, h.params.MemoryKiB, h.params.Threads, keyLength)
	h.sem.Release(1)

	return encodeHash(h.params, salt, key), nil
}

// Verify reports whether password reproduces digest. A mismatch is false with a nil error.
func (h *PasswordHasher) Verify(ctx context.Context, digest, password string) (bool, error) {
	params, salt, key, err := decodeHash(digest)
	if err != nil {
		return false, err
	}

	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	other := argon2.IDKey([]byte(password), salt, params.Iterations, params.MemoryKiB, params.Threads, uint32(len(key)))
	h.sem.Release(1)

	return subtle.ConstantTimeCompare(key, other) == 1, nil
}

func encodeHash(p HashParams, salt, key []byte) string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.MemoryKiB, p.Iterations, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

func decodeHash(digest string) (HashParams, []byte, []byte, error) {
	var p HashParams

	parts := strings.Split(digest, "$")
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, ErrMalformedHash
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedHash, version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.MemoryKiB, &p.Iterations, &p.Threads); err != nil {
		return p, nil, nil, ErrMalformedHash
	}
	if p.MemoryKiB == 0 || p.Iterations == 0 || p.Threads == 0 {
		return p, nil, nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return p, nil, nil, ErrMalformedHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, ErrMalformedHash
	}

	return p, salt, key, nil
}
