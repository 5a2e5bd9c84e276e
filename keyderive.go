package pangfish

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

// Key derivation. DeriveKey/DeriveKeyAuto implement the source's
// SHA-256-truncation convention directly; Argon2KeyProvider and
// PBKDF2KeyProvider are a pure addition for callers who would rather
// derive a key from a password than manage raw key bytes, adapted from
// the teacher's PasswordKeyProvider in key_provider.go.

// DeriveKey derives a key of the given size from arbitrary input
// material by truncating its SHA-256 digest.
func DeriveKey(material []byte, size KeySize) []byte {
	sum := sha256.Sum256(material)
	n := int(size)
	if n > len(sum) {
		n = len(sum)
	}
	return sum[:n]
}

// DeriveKeyAuto derives a key, selecting 256, 192, or 128 bits based on
// the length of the input material: inputs of 32 bytes or more yield a
// 256-bit key, 24 or more a 192-bit key, otherwise a 128-bit key.
func DeriveKeyAuto(material []byte) []byte {
	switch {
	case len(material) >= int(KeySize256):
		return DeriveKey(material, KeySize256)
	case len(material) >= int(KeySize192):
		return DeriveKey(material, KeySize192)
	default:
		return DeriveKey(material, KeySize128)
	}
}

// Argon2KeyProvider derives symmetric keys from a password using
// Argon2id, the recommended password-hashing choice.
type Argon2KeyProvider struct {
	password []byte
	params   Argon2idParams
}

// NewArgon2KeyProvider creates an Argon2id-backed key provider, filling
// in conservative defaults for any zero-valued parameter.
func NewArgon2KeyProvider(password []byte, params Argon2idParams) *Argon2KeyProvider {
	if params.Memory == 0 {
		params.Memory = 64 * 1024
	}
	if params.Iterations == 0 {
		params.Iterations = 3
	}
	if params.Parallelism == 0 {
		params.Parallelism = 4
	}
	if params.SaltSize == 0 {
		params.SaltSize = 32
	}
	if params.KeySize == 0 {
		params.KeySize = 32
	}
	return &Argon2KeyProvider{password: password, params: params}
}

// DeriveKey derives a key from the provider's password and the given salt.
func (p *Argon2KeyProvider) DeriveKey(salt []byte) ([]byte, error) {
	if len(p.password) == 0 {
		return nil, newError(KindNoKey, "Argon2KeyProvider.DeriveKey", "password cannot be empty", nil)
	}
	if len(salt) == 0 {
		return nil, newError(KindNoKey, "Argon2KeyProvider.DeriveKey", "salt cannot be empty", nil)
	}
	return argon2.IDKey(p.password, salt, p.params.Iterations, p.params.Memory, p.params.Parallelism, uint32(p.params.KeySize)), nil
}

// GenerateSalt generates a new random salt sized per the provider's params.
func (p *Argon2KeyProvider) GenerateSalt() ([]byte, error) {
	salt := make([]byte, p.params.SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, newError(KindNoKey, "Argon2KeyProvider.GenerateSalt", "failed to generate salt", err)
	}
	return salt, nil
}

// PBKDF2KeyProvider derives symmetric keys from a password using PBKDF2,
// kept for compatibility with callers migrating from legacy deployments.
type PBKDF2KeyProvider struct {
	password []byte
	params   PBKDF2Params
}

// NewPBKDF2KeyProvider creates a PBKDF2-backed key provider, filling in
// conservative defaults for any zero-valued parameter.
func NewPBKDF2KeyProvider(password []byte, params PBKDF2Params) *PBKDF2KeyProvider {
	if params.Iterations == 0 {
		params.Iterations = 100000
	}
	if params.SaltSize == 0 {
		params.SaltSize = 32
	}
	if params.KeySize == 0 {
		params.KeySize = 32
	}
	return &PBKDF2KeyProvider{password: password, params: params}
}

// DeriveKey derives a key from the provider's password and the given salt.
func (p *PBKDF2KeyProvider) DeriveKey(salt []byte) ([]byte, error) {
	if len(p.password) == 0 {
		return nil, newError(KindNoKey, "PBKDF2KeyProvider.DeriveKey", "password cannot be empty", nil)
	}
	if len(salt) == 0 {
		return nil, newError(KindNoKey, "PBKDF2KeyProvider.DeriveKey", "salt cannot be empty", nil)
	}
	var hashFunc func() hash.Hash
	switch p.params.HashFunc {
	case SHA256:
		hashFunc = sha256.New
	case SHA512:
		hashFunc = sha512.New
	default:
		return nil, newError(KindNoKey, "PBKDF2KeyProvider.DeriveKey", "unsupported hash function", nil)
	}
	return pbkdf2.Key(p.password, salt, p.params.Iterations, p.params.KeySize, hashFunc), nil
}

// GenerateSalt generates a new random salt sized per the provider's params.
func (p *PBKDF2KeyProvider) GenerateSalt() ([]byte, error) {
	salt := make([]byte, p.params.SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, newError(KindNoKey, "PBKDF2KeyProvider.GenerateSalt", "failed to generate salt", err)
	}
	return salt, nil
}
