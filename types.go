package pangfish

// Shared parameter and configuration types. Grounded in the teacher's
// types.go (PBKDF2Params, Argon2idParams, KeyProvider, Config.Validate)
// with the filesystem-specific enums (CipherSuite, FilenameEncryption)
// dropped — this package has exactly one cipher suite and no filenames —
// and Config reshaped around Multi-Power RSA parameters.

// HashFunc represents hash function types for PBKDF2.
type HashFunc uint8

const (
	// SHA256 hash function.
	SHA256 HashFunc = iota
	// SHA512 hash function.
	SHA512
)

// PBKDF2Params contains parameters for PBKDF2 key derivation.
type PBKDF2Params struct {
	Iterations int      // Number of iterations (minimum 100,000 recommended)
	HashFunc   HashFunc // Hash function to use
	SaltSize   int      // Salt size in bytes (default 32)
	KeySize    int      // Derived key size in bytes (default 32)
}

// Validate checks that the PBKDF2 parameters are usable, rejecting an
// iteration count too low to resist offline guessing.
func (p *PBKDF2Params) Validate() error {
	if p.Iterations > 0 && p.Iterations < 10000 {
		return newError(KindKeyGenerationFailed, "PBKDF2Params.Validate", "iterations too low, want at least 10000", nil)
	}
	if p.SaltSize < 0 || p.KeySize < 0 {
		return newError(KindKeyGenerationFailed, "PBKDF2Params.Validate", "salt size and key size cannot be negative", nil)
	}
	return nil
}

// Argon2idParams contains parameters for Argon2id key derivation.
type Argon2idParams struct {
	Memory      uint32 // Memory in KiB (e.g., 64*1024 for 64MB)
	Iterations  uint32 // Number of iterations (time parameter)
	Parallelism uint8  // Degree of parallelism
	SaltSize    int    // Salt size in bytes (default 32)
	KeySize     int    // Derived key size in bytes (default 32)
}

// Validate checks that the Argon2id parameters are usable.
func (p *Argon2idParams) Validate() error {
	if p.Parallelism == 0 && (p.Memory != 0 || p.Iterations != 0) {
		return newError(KindKeyGenerationFailed, "Argon2idParams.Validate", "parallelism must be >= 1", nil)
	}
	if p.SaltSize < 0 || p.KeySize < 0 {
		return newError(KindKeyGenerationFailed, "Argon2idParams.Validate", "salt size and key size cannot be negative", nil)
	}
	return nil
}

// KeyProvider is an interface for deriving symmetric keys from a
// password and salt.
type KeyProvider interface {
	// DeriveKey derives an encryption key from the given salt.
	DeriveKey(salt []byte) ([]byte, error)

	// GenerateSalt generates a new random salt.
	GenerateSalt() ([]byte, error)
}

// Config groups settings for a hybrid envelope and its key pair. No
// function in this package reads a Config: GenerateKey, NewEnvelope,
// Envelope.Encrypt and Envelope.Decrypt take their settings as arguments
// or fixed values, so callers pass these fields on themselves.
type Config struct {
	// KeyProvider is an optional password-based key source. May be nil.
	// Envelope.Encrypt does not use it; it always generates a fresh
	// random symmetric key.
	KeyProvider KeyProvider

	// RSAKeySize is the Multi-Power RSA modulus bit length, to pass as
	// GenerateKey's keySizeBits.
	RSAKeySize int

	// B is the Multi-Power RSA exponent (N = p^(B-1)*q).
	B int

	// Authenticate selects the optional envelope MAC field, to pass as
	// NewEnvelope's authenticate argument.
	Authenticate bool

	// StrictPadding selects strict unpadding (BadPadding on an
	// inconsistent trailer), as the strict argument of DecryptCBC and
	// DecryptECB. Envelope.Decrypt always unpads leniently.
	StrictPadding bool
}

// Validate checks if the configuration is valid, filling in defaults for
// zero-valued fields.
func (c *Config) Validate() error {
	if c == nil {
		return newError(KindNoKey, "Config.Validate", "config cannot be nil", nil)
	}
	if c.RSAKeySize == 0 {
		c.RSAKeySize = DefaultRSAKeySize
	}
	if c.B == 0 {
		c.B = DefaultB
	}
	if c.B < 2 {
		return newError(KindKeyGenerationFailed, "Config.Validate", "B must be >= 2", nil)
	}
	return nil
}
