package pangfish

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"math/big"

	"golang.org/x/crypto/blake2b"
)

// Hybrid envelope: symmetric key generation, public-key wrap, payload
// encryption, and JSON serialization. Grounded in the teacher's
// capability-interface style (CipherEngine in cipher.go) generalized
// here to break the cycle between the envelope and its two collaborators
// instead of the source's ad-hoc deferred imports.

// AlgorithmName identifies the envelope's combination of primitives in
// both the wire format and the Config default.
const AlgorithmName = "Twofish-MultiPowerRSA"

// symmetricKeySize is the size of the randomly generated payload key;
// the unwrapped key is always restored to this length.
const symmetricKeySize = 32

// SymmetricCipher is the capability the envelope needs from the block
// cipher: CBC encrypt/decrypt of an arbitrary-length payload. *Cipher
// satisfies this interface directly. Envelope does not take a
// SymmetricCipher; Encrypt and Decrypt build a *Cipher with NewCipher.
type SymmetricCipher interface {
	EncryptCBC(plaintext []byte, iv []byte) ([]byte, error)
	DecryptCBC(ciphertext []byte, strict bool) ([]byte, error)
}

// PublicKeyCipher is the capability the envelope needs from Multi-Power
// RSA: wrap and unwrap a symmetric key.
type PublicKeyCipher interface {
	Wrap(key []byte) (string, error)
	Unwrap(encryptedKey string) ([]byte, error)
}

// RSACipher adapts a Multi-Power RSA key pair to the PublicKeyCipher
// capability. Either Pub or Priv (or both) may be set depending on
// whether the holder can encrypt, decrypt, or both.
type RSACipher struct {
	Pub  *PublicKey
	Priv *PrivateKey
}

// Wrap encrypts key under the public key, left-padding the unwrapped
// result to 32 bytes is the decrypt-side responsibility; Wrap itself
// just returns the decimal-string ciphertext.
func (rc *RSACipher) Wrap(key []byte) (string, error) {
	if rc.Pub == nil {
		return "", newError(KindNoKey, "RSACipher.Wrap", "no public key available", nil)
	}
	m := new(big.Int).SetBytes(key)
	return rc.Pub.EncryptMessage(MessageFromInt(m))
}

// Unwrap decrypts encryptedKey under the private key and left-pads the
// result to 32 bytes, restoring any leading zero bytes lost in the
// big-integer round-trip (spec's "Open question": the source does not
// fix the unwrapped key's byte length).
func (rc *RSACipher) Unwrap(encryptedKey string) ([]byte, error) {
	if rc.Priv == nil {
		return nil, newError(KindNoKey, "RSACipher.Unwrap", "no private key available", nil)
	}
	msg, err := rc.Priv.DecryptMessage(encryptedKey)
	if err != nil {
		return nil, err
	}
	return leftPad(msg.Bytes(), symmetricKeySize), nil
}

// leftPad pads b with leading zero bytes until it is exactly n bytes
// long. b longer than n is returned unchanged.
func leftPad(b []byte, n int) []byte {
	if len(b) >= n {
		return b
	}
	out := make([]byte, n)
	copy(out[n-len(b):], b)
	return out
}

// EnvelopeState tracks the envelope's lifecycle.
type EnvelopeState int

const (
	StateUninitialized EnvelopeState = iota
	StateKeysLoaded
	StateEncrypted
	StateDecrypted
)

// Envelope packages a symmetrically encrypted payload with its key
// wrapped under a public-key scheme. Keys may be reused across multiple
// Encrypt/Decrypt calls once loaded.
type Envelope struct {
	state   EnvelopeState
	pkCipher PublicKeyCipher
	authenticate bool

	Algorithm    string
	IV           []byte
	Ciphertext   []byte
	EncryptedKey string
	MAC          []byte // nil when authentication is disabled
}

// Bind attaches (or replaces) the public-key capability used to wrap and
// unwrap the envelope's symmetric key, e.g. after decoding an envelope
// from the wire with UnmarshalJSON.
func (e *Envelope) Bind(pkCipher PublicKeyCipher) {
	e.pkCipher = pkCipher
}

// NewEnvelope constructs an Envelope bound to the given public-key
// capability. authenticate enables the optional BLAKE2b MAC field.
func NewEnvelope(pkCipher PublicKeyCipher, authenticate bool) *Envelope {
	return &Envelope{
		state:        StateKeysLoaded,
		pkCipher:     pkCipher,
		authenticate: authenticate,
	}
}

// Encrypt encrypts plaintext: a fresh 256-bit symmetric key and 16-byte
// IV are generated, the payload is CBC-encrypted, and the symmetric key
// is wrapped under the envelope's public-key capability.
func (e *Envelope) Encrypt(plaintext []byte) error {
	if e.pkCipher == nil {
		return newError(KindNoKey, "Envelope.Encrypt", "no public-key capability configured", nil)
	}

	ksym := make([]byte, symmetricKeySize)
	if _, err := rand.Read(ksym); err != nil {
		return newError(KindNoKey, "Envelope.Encrypt", "failed to generate symmetric key", err)
	}
	defer zero(ksym)

	iv := make([]byte, IVSize)
	if _, err := rand.Read(iv); err != nil {
		return newError(KindNoKey, "Envelope.Encrypt", "failed to generate iv", err)
	}

	cipher, err := NewCipher(ksym)
	if err != nil {
		return err
	}
	ctFull, err := cipher.EncryptCBC(plaintext, iv)
	if err != nil {
		return err
	}
	body := ctFull[IVSize:]

	wrap, err := e.pkCipher.Wrap(ksym)
	if err != nil {
		return err
	}

	var mac []byte
	if e.authenticate {
		mac, err = computeMAC(ksym, iv, body)
		if err != nil {
			return err
		}
	}

	e.Algorithm = AlgorithmName
	e.IV = iv
	e.Ciphertext = body
	e.EncryptedKey = wrap
	e.MAC = mac
	e.state = StateEncrypted
	return nil
}

// Decrypt reconstructs the symmetric key from EncryptedKey and decrypts
// Ciphertext, reassembling IV||body internally rather than requiring the
// caller to have transmitted the redundant combined form.
func (e *Envelope) Decrypt() ([]byte, error) {
	if e.pkCipher == nil {
		return nil, newError(KindNoKey, "Envelope.Decrypt", "no public-key capability configured", nil)
	}
	if e.Algorithm != AlgorithmName {
		return nil, newError(KindEnvelopeSchema, "Envelope.Decrypt", "unexpected algorithm tag", nil)
	}
	if len(e.IV) != IVSize || e.Ciphertext == nil || e.EncryptedKey == "" {
		return nil, newError(KindEnvelopeSchema, "Envelope.Decrypt", "missing required field", nil)
	}

	ksym, err := e.pkCipher.Unwrap(e.EncryptedKey)
	if err != nil {
		return nil, err
	}
	defer zero(ksym)

	if e.MAC != nil {
		expected, err := computeMAC(ksym, e.IV, e.Ciphertext)
		if err != nil {
			return nil, err
		}
		if subtle.ConstantTimeCompare(expected, e.MAC) != 1 {
			return nil, newError(KindBadPadding, "Envelope.Decrypt", "mac verification failed", nil)
		}
	}

	cipher, err := NewCipher(ksym)
	if err != nil {
		return nil, err
	}
	ctFull := make([]byte, 0, IVSize+len(e.Ciphertext))
	ctFull = append(ctFull, e.IV...)
	ctFull = append(ctFull, e.Ciphertext...)

	plaintext, err := cipher.DecryptCBC(ctFull, false)
	if err != nil {
		return nil, err
	}
	e.state = StateDecrypted
	return plaintext, nil
}

// computeMAC computes a keyed BLAKE2b tag over iv||ciphertext, keyed by
// a tag derived from the symmetric key via DeriveKey.
func computeMAC(ksym, iv, ciphertext []byte) ([]byte, error) {
	macKey := DeriveKey(append(append([]byte{}, ksym...), []byte("pangfish-envelope-mac")...), KeySize256)
	h, err := blake2b.New256(macKey)
	if err != nil {
		return nil, newError(KindNoKey, "computeMAC", "failed to construct mac", err)
	}
	h.Write(iv)
	h.Write(ciphertext)
	return h.Sum(nil), nil
}

// zero overwrites b with zero bytes, used to destroy symmetric key
// material before it goes out of scope.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// envelopeJSON is the wire-format mirror of Envelope for JSON
// (de)serialization.
type envelopeJSON struct {
	Algorithm    string `json:"algorithm"`
	Ciphertext   string `json:"ciphertext"`
	IV           string `json:"iv"`
	EncryptedKey string `json:"encrypted_key"`
	MAC          string `json:"mac,omitempty"`
}

// MarshalJSON encodes the envelope per the envelope serialization format:
// base64 for binary fields, decimal digits for the wrapped key, and the
// mac field omitted entirely when authentication is disabled.
func (e *Envelope) MarshalJSON() ([]byte, error) {
	w := envelopeJSON{
		Algorithm:    e.Algorithm,
		Ciphertext:   base64.StdEncoding.EncodeToString(e.Ciphertext),
		IV:           base64.StdEncoding.EncodeToString(e.IV),
		EncryptedKey: e.EncryptedKey,
	}
	if e.MAC != nil {
		w.MAC = base64.StdEncoding.EncodeToString(e.MAC)
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes an envelope from its wire format, validating that
// all mandatory fields decode cleanly.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	var w envelopeJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return newError(KindEnvelopeSchema, "Envelope.UnmarshalJSON", "malformed envelope JSON", err)
	}
	if w.Algorithm == "" || w.Ciphertext == "" || w.IV == "" || w.EncryptedKey == "" {
		return newError(KindEnvelopeSchema, "Envelope.UnmarshalJSON", "missing required field", nil)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(w.Ciphertext)
	if err != nil {
		return newError(KindEnvelopeSchema, "Envelope.UnmarshalJSON", "malformed ciphertext base64", err)
	}
	iv, err := base64.StdEncoding.DecodeString(w.IV)
	if err != nil {
		return newError(KindEnvelopeSchema, "Envelope.UnmarshalJSON", "malformed iv base64", err)
	}
	var mac []byte
	if w.MAC != "" {
		mac, err = base64.StdEncoding.DecodeString(w.MAC)
		if err != nil {
			return newError(KindEnvelopeSchema, "Envelope.UnmarshalJSON", "malformed mac base64", err)
		}
	}

	e.Algorithm = w.Algorithm
	e.Ciphertext = ciphertext
	e.IV = iv
	e.EncryptedKey = w.EncryptedKey
	e.MAC = mac
	e.state = StateEncrypted
	return nil
}
