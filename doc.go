// Package pangfish implements a Twofish-family block cipher combined
// with a Multi-Power RSA public-key scheme, packaged by a hybrid
// envelope protocol.
//
// # Overview
//
// pangfish provides the cryptographic core of a hybrid encryption
// scheme: a 128-bit-block Feistel cipher with key-dependent S-boxes and
// MDS diffusion, a multi-power variant of RSA with CRT- and
// Hensel-lift-accelerated decryption, and an envelope that wraps a
// random symmetric key under the public-key scheme while encrypting the
// payload under the symmetric cipher.
//
// # Supported primitives
//
// - Block cipher: 128/192/256-bit keys, ECB and CBC modes, PKCS#7-style
//   padding.
// - Multi-Power RSA: modulus N = p^(b-1)*q, public exponent 65537 by
//   default, CRT + Hensel lift decryption.
// - Hybrid envelope: random 256-bit symmetric key, random 16-byte IV,
//   JSON wire format with base64-encoded binary fields and a
//   decimal-string wrapped key.
//
// Unlike AEAD constructions, the envelope is unauthenticated by default;
// an optional keyed BLAKE2b tag can be enabled (see Envelope and the
// authenticate argument of NewEnvelope) but is never required to
// interoperate with the
// base wire format.
//
// # Basic usage
//
//	priv, err := pangfish.GenerateKey(pangfish.DefaultRSAKeySize, pangfish.DefaultB)
//	if err != nil {
//	    panic(err)
//	}
//
//	env := pangfish.NewEnvelope(&pangfish.RSACipher{Pub: priv.Public()}, false)
//	if err := env.Encrypt([]byte("attack at dawn")); err != nil {
//	    panic(err)
//	}
//	wire, _ := env.MarshalJSON()
//
//	var received pangfish.Envelope
//	received.UnmarshalJSON(wire)
//	received.Bind(&pangfish.RSACipher{Priv: priv})
//	plaintext, err := received.Decrypt()
//
// # Security considerations
//
// Protected against:
//   - Recovery of the symmetric key or plaintext without the RSA private
//     key.
//   - Accidental key reuse across unrelated IVs (fresh IV per encrypt).
//
// Not protected against (consistent with the Non-goals in this
// package's design, not a gap to be silently closed):
//   - Ciphertext tampering: CBC alone carries no integrity check; pass
//     authenticate=true to NewEnvelope for a keyed MAC, or have callers
//     authenticate the envelope at a higher layer.
//   - Side-channel attacks beyond what modular exponentiation and the
//     Feistel network give for free.
//   - Persistent key storage beyond the envelope and key wire formats
//     defined here.
//
// # Key derivation
//
// Raw key material can be reduced to a valid key size with DeriveKey (or
// DeriveKeyAuto, which picks the size from the input length), matching
// the reference implementation's SHA-256-truncation convention. Callers
// who prefer deriving keys from a password instead of managing raw bytes
// can use Argon2KeyProvider (Argon2id, recommended) or PBKDF2KeyProvider
// (legacy compatibility).
//
// # Wire format
//
// Envelopes serialize as JSON:
//
//	{
//	  "algorithm": "Twofish-MultiPowerRSA",
//	  "ciphertext": "<base64>",
//	  "iv": "<base64>",
//	  "encrypted_key": "<decimal digits>"
//	}
//
// Public and private keys serialize as JSON records of decimal-string
// integers plus the scalar b; see keyio.go for the length-prefixed
// framing used when streaming key material.
//
// # Performance
//
// The block cipher and big-integer arithmetic are pure Go with no
// hardware-accelerated code path; Multi-Power RSA key generation cost
// scales with the prime-search retry rate at the requested bit length.
package pangfish
