package cryptox

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Supported password hashing algorithms.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// Work factor defaults. For bcrypt the cost is the log2 round count, for
// argon2id it is the time (iteration) parameter.
const (
	DefaultBcryptCost   = 12
	DefaultArgon2idCost = 2

	// Anything below these is accepted but reported by IsWeak.
	weakBcryptCost   = 10
	weakArgon2idCost = 2
)

// Fixed argon2id parameters, the tunable part is the time cost.
const (
	bcryptMaxInput = 72 // bytes bcrypt reads, the rest is ignored

	memory      = 19 * 1024 // Memory usage in KiB (19 MiB)
	parallelism = 1         // Number of threads
	keyLength   = 32        // Length of the generated hash
	saltLength  = 16        // Length of the salt
)

var (
	// ErrHashing is returned when a hash could not be produced. Callers should
	// treat it as an internal failure.
	ErrHashing = errors.New("cryptox: hashing failed")

	ErrPasswordMismatch = errors.New("password does not match")
	ErrInvalidHash      = errors.New("cryptox: invalid hash format")
)

// HasherOptions configures a Hasher.
type HasherOptions struct {
	// Algorithm used for new hashes, bcrypt when empty.
	Algorithm string

	// Cost is the work factor, algorithm default when zero.
	Cost int

	// Pepper is an optional server-side secret mixed into every hash.
	Pepper string
}

// Hasher produces salted one-way password hashes and verifies plaintext
// against them. It is safe for concurrent use.
//
// Verification understands both bcrypt and argon2id encodings regardless of
// the algorithm configured for new hashes, so stored credentials keep working
// after the algorithm or cost is changed.
type Hasher struct {
	algorithm string
	cost      int
	pepper    string
}

// NewHasher validates opts and returns a Hasher.
func NewHasher(opts HasherOptions) (*Hasher, error) {
	h := &Hasher{
		algorithm: strings.ToLower(strings.TrimSpace(opts.Algorithm)),
		cost:      opts.Cost,
		pepper:    opts.Pepper,
	}

	switch h.algorithm {
	case "", AlgorithmBcrypt:
		h.algorithm = AlgorithmBcrypt
		if h.cost == 0 {
			h.cost = DefaultBcryptCost
		}
		if h.cost < bcrypt.MinCost || h.cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("cryptox: bcrypt cost must be between %d and %d, got %d",
				bcrypt.MinCost, bcrypt.MaxCost, h.cost)
		}
	case AlgorithmArgon2id:
		if h.cost == 0 {
			h.cost = DefaultArgon2idCost
		}
		if h.cost < 1 {
			return nil, fmt.Errorf("cryptox: argon2id cost must be positive, got %d", h.cost)
		}
	default:
		return nil, fmt.Errorf("cryptox: unsupported algorithm %q", opts.Algorithm)
	}

	return h, nil
}

// Algorithm returns the algorithm used for new hashes.
func (h *Hasher) Algorithm() string { return h.algorithm }

// Cost returns the configured work factor.
func (h *Hasher) Cost() int { return h.cost }

// IsWeak reports whether the configured work factor is below the recommended
// minimum for the algorithm.
func (h *Hasher) IsWeak() bool {
	if h.algorithm == AlgorithmArgon2id {
		return h.cost < weakArgon2idCost
	}
	return h.cost < weakBcryptCost
}

// Hash returns an encoded hash of password with a fresh random salt.
func (h *Hasher) Hash(password string) (string, error) {
	if h.algorithm == AlgorithmArgon2id {
		return h.hashArgon2id(password)
	}
	return h.hashBcrypt(password)
}

// Verify reports whether password matches encodedHash. Malformed hashes and
// unknown encodings never match.
func (h *Hasher) Verify(password, encodedHash string) bool {
	return h.Compare(password, encodedHash) == nil
}

// Compare is Verify with the failure reason, ErrPasswordMismatch for a wrong
// password and ErrInvalidHash for anything that cannot be parsed.
func (h *Hasher) Compare(password, encodedHash string) error {
	switch {
	case strings.HasPrefix(encodedHash, "$argon2id$"):
		return h.compareArgon2id(password, encodedHash)
	case isBcryptHash(encodedHash):
		return h.compareBcrypt(password, encodedHash)
	default:
		return ErrInvalidHash
	}
}

func (h *Hasher) hashBcrypt(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword(h.bcryptInput(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashing, err)
	}
	return string(out), nil
}

func (h *Hasher) compareBcrypt(password, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), h.bcryptInput(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), errors.Is(err, bcrypt.ErrPasswordTooLong):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}
}

// bcryptInput keeps unpeppered input byte-identical to the plaintext, cut to
// the first 72 bytes like other bcrypt implementations, so their hashes still
// verify. With a pepper the input is an HMAC of the password, which is always
// under the limit.
func (h *Hasher) bcryptInput(password string) []byte {
	if h.pepper == "" {
		b := []byte(password)
		if len(b) > bcryptMaxInput {
			b = b[:bcryptMaxInput]
		}
		return b
	}
	mac := hmac.New(sha256.New, []byte(h.pepper))
	mac.Write([]byte(password))
	return []byte(base64.RawStdEncoding.EncodeToString(mac.Sum(nil)))
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// hashArgon2id generates a PHC-format Argon2id hash string including salt and parameters.
func (h *Hasher) hashArgon2id(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashing, err)
	}
	iterations := uint32(h.cost) // #nosec G115 - validated positive in NewHasher
	hash := argon2.IDKey([]byte(password+h.pepper), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// compareArgon2id checks password against a PHC-style Argon2id hash using the
// parameters embedded in the hash, not the configured ones.
func (h *Hasher) compareArgon2id(password, encodedHash string) error {
	// ["", "argon2id", "v=19", "m=X,t=Y,p=Z", "salt", "hash"]
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return fmt.Errorf("%w: expected 6 parts", ErrInvalidHash)
	}
	if parts[2] != "v=19" {
		return fmt.Errorf("%w: wrong version", ErrInvalidHash)
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("%w: failed to parse parameters: %w", ErrInvalidHash, err)
	}
	if iters == 0 || par == 0 {
		return fmt.Errorf("%w: zero parameters", ErrInvalidHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("%w: failed to decode salt: %w", ErrInvalidHash, err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 {
		return fmt.Errorf("%w: failed to decode hash", ErrInvalidHash)
	}

	computed := argon2.IDKey(
		[]byte(password+h.pepper),
		salt,
		iters,
		mem,
		par,
		uint32(len(expected)), // #nosec G115 - If this overflows we have bigger problems
	)

	if subtle.ConstantTimeCompare(computed, expected) == 1 {
		return nil
	}
	return ErrPasswordMismatch
}
