package pangfish

import "crypto/rand"

// ECB/CBC mode drivers and PKCS#7-style padding, built on top of a
// *Cipher's single-block Encrypt/DecryptBlock. Grounded in the teacher's
// AEAD engines' pattern of validating nonce/buffer sizes before touching
// the underlying primitive (cipher.go, AESGCMEngine.Encrypt/Decrypt),
// generalized here from an AEAD's single call to a block-by-block driver.

// Mode identifies a block-cipher operation mode.
type Mode string

const (
	ModeECB Mode = "ecb"
	ModeCBC Mode = "cbc"
)

// IVSize is the CBC initialization vector size in bytes.
const IVSize = 16

// pad appends PKCS#7-style padding: n copies of the byte n, where
// n = 16 - (len(data) mod 16), n in [1, 16].
func pad(data []byte) []byte {
	n := BlockSize - (len(data) % BlockSize)
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

// unpad strips PKCS#7-style padding. In lenient mode (strict=false), any
// inconsistency leaves data unchanged rather than returning an error,
// matching the source's default behavior. In strict mode, an inconsistent
// trailer surfaces BadPadding.
func unpad(data []byte, strict bool) ([]byte, error) {
	if len(data) == 0 {
		if strict {
			return nil, newError(KindBadPadding, "unpad", "empty input", nil)
		}
		return data, nil
	}
	n := int(data[len(data)-1])
	if n < 1 || n > BlockSize || n > len(data) {
		if strict {
			return nil, newError(KindBadPadding, "unpad", "invalid padding length byte", nil)
		}
		return data, nil
	}
	for i := len(data) - n; i < len(data); i++ {
		if data[i] != byte(n) {
			if strict {
				return nil, newError(KindBadPadding, "unpad", "inconsistent padding bytes", nil)
			}
			return data, nil
		}
	}
	return data[:len(data)-n], nil
}

// xorBlock XORs two 16-byte blocks into dst.
func xorBlock(dst, a, b []byte) {
	for i := 0; i < BlockSize; i++ {
		dst[i] = a[i] ^ b[i]
	}
}

// EncryptECB encrypts plaintext of any length under ECB mode, padding it
// to a multiple of the block size first. Each block is encrypted
// independently.
func (c *Cipher) EncryptECB(plaintext []byte) ([]byte, error) {
	padded := pad(plaintext)
	out := make([]byte, len(padded))
	for i := 0; i < len(padded); i += BlockSize {
		block, err := c.EncryptBlock(padded[i : i+BlockSize])
		if err != nil {
			return nil, err
		}
		copy(out[i:i+BlockSize], block)
	}
	return out, nil
}

// DecryptECB decrypts ciphertext produced by EncryptECB, stripping
// padding (strict controls whether an inconsistent trailer is an error or
// silently ignored).
func (c *Cipher) DecryptECB(ciphertext []byte, strict bool) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%BlockSize != 0 {
		return nil, newError(KindBadCiphertextLength, "Cipher.DecryptECB", "ciphertext must be a positive multiple of 16 bytes", nil)
	}
	out := make([]byte, len(ciphertext))
	for i := 0; i < len(ciphertext); i += BlockSize {
		block, err := c.DecryptBlock(ciphertext[i : i+BlockSize])
		if err != nil {
			return nil, err
		}
		copy(out[i:i+BlockSize], block)
	}
	return unpad(out, strict)
}

// EncryptCBC encrypts plaintext under CBC mode. If iv is nil, a fresh
// random IV is sampled from the CSPRNG. The returned ciphertext begins
// with the 16-byte IV followed by the padded, encrypted body.
func (c *Cipher) EncryptCBC(plaintext []byte, iv []byte) ([]byte, error) {
	if iv == nil {
		iv = make([]byte, IVSize)
		if _, err := rand.Read(iv); err != nil {
			return nil, newError(KindNoKey, "Cipher.EncryptCBC", "failed to generate IV", err)
		}
	}
	if len(iv) != IVSize {
		return nil, newError(KindBadIvLength, "Cipher.EncryptCBC", "iv must be exactly 16 bytes", nil)
	}

	padded := pad(plaintext)
	out := make([]byte, IVSize+len(padded))
	copy(out[:IVSize], iv)

	prev := iv
	for i := 0; i < len(padded); i += BlockSize {
		mixed := make([]byte, BlockSize)
		xorBlock(mixed, padded[i:i+BlockSize], prev)
		block, err := c.EncryptBlock(mixed)
		if err != nil {
			return nil, err
		}
		copy(out[IVSize+i:IVSize+i+BlockSize], block)
		prev = block
	}
	return out, nil
}

// DecryptCBC decrypts ciphertext produced by EncryptCBC: the first 16
// bytes are taken as the IV, the remainder as the encrypted body.
func (c *Cipher) DecryptCBC(ciphertext []byte, strict bool) ([]byte, error) {
	if len(ciphertext) < IVSize || (len(ciphertext)-IVSize)%BlockSize != 0 || len(ciphertext) == IVSize {
		return nil, newError(KindBadCiphertextLength, "Cipher.DecryptCBC", "ciphertext must be a 16-byte IV followed by a positive multiple of 16 bytes", nil)
	}
	iv := ciphertext[:IVSize]
	body := ciphertext[IVSize:]

	out := make([]byte, len(body))
	prev := iv
	for i := 0; i < len(body); i += BlockSize {
		block, err := c.DecryptBlock(body[i : i+BlockSize])
		if err != nil {
			return nil, err
		}
		xorBlock(out[i:i+BlockSize], block, prev)
		prev = body[i : i+BlockSize]
	}
	return unpad(out, strict)
}
