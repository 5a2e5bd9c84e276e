package pangfish

import (
	"encoding/binary"
	"math/bits"
)

// Round function, Feistel network, and block whitening. Grounded in the
// reference myref.py encrypt/decrypt, translated word-for-word into Go's
// fixed-width unsigned arithmetic. This file plays the role the teacher's
// CipherEngine/AESGCMEngine/ChaCha20Poly1305Engine trio played in
// encryptfs: the block-cipher primitive a mode driver builds on.

// KeySize is a valid key length in bytes for NewCipher.
type KeySize int

const (
	// KeySize128 selects a 128-bit key.
	KeySize128 KeySize = 16
	// KeySize192 selects a 192-bit key.
	KeySize192 KeySize = 24
	// KeySize256 selects a 256-bit key.
	KeySize256 KeySize = 32
	// BlockSize is the cipher's block size in bytes.
	BlockSize = 16
)

// Cipher is a single block-cipher instance with an immutable, precomputed
// key schedule, owned exclusively by the instance that derived it.
type Cipher struct {
	ks *keySchedule
}

// NewCipher creates a Cipher from 16, 24 or 32 bytes of key material.
func NewCipher(key []byte) (*Cipher, error) {
	switch len(key) {
	case int(KeySize128), int(KeySize192), int(KeySize256):
	default:
		return nil, newError(KindBadKeyLength, "NewCipher", "key must be 16, 24, or 32 bytes", nil)
	}
	return &Cipher{ks: deriveKeySchedule(key)}, nil
}

// swapEndian32 reverses the byte order of a 32-bit word — the Go
// equivalent of the reference implementation's
// struct.unpack('>I', struct.pack('<I', x)) idiom.
func swapEndian32(x uint32) uint32 {
	return bits.ReverseBytes32(x)
}

// f computes the Feistel round function F: two calls to g (the h
// function keyed on the S-box words) combined with the round's
// whitening-adjacent subkeys.
func (c *Cipher) f(r0, r1 uint32, round int) (f0, f1 uint32) {
	ks := c.ks
	t0 := g(r0, ks.S, ks.k)
	t1 := g(rol32(r1, 8), ks.S, ks.k)
	f0 = t0 + t1 + ks.K[2*round+8]
	f1 = t0 + 2*t1 + ks.K[2*round+9]
	return f0, f1
}

// encryptWords runs the 16-round Feistel network over four 32-bit words,
// mirroring the reference encrypt() including its endianness
// reinterpretation at entry and exit.
func (c *Cipher) encryptWords(pt [4]uint32) [4]uint32 {
	ks := c.ks
	r := [4]uint32{
		swapEndian32(pt[0]) ^ ks.K[0],
		swapEndian32(pt[1]) ^ ks.K[1],
		swapEndian32(pt[2]) ^ ks.K[2],
		swapEndian32(pt[3]) ^ ks.K[3],
	}

	for round := 0; round < rounds; round++ {
		f0, f1 := c.f(r[0], r[1], round)
		nr := [4]uint32{
			r[0],
			r[1],
			ror32(r[2]^f0, 1),
			rol32(r[3], 1) ^ f1,
		}
		r = nr
		if round < rounds-1 {
			r[0], r[2] = r[2], r[0]
			r[1], r[3] = r[3], r[1]
		}
	}

	out := [4]uint32{r[2], r[3], r[0], r[1]}
	var ct [4]uint32
	for i := 0; i < 4; i++ {
		ct[i] = swapEndian32(out[(i+2)%4] ^ ks.K[i+4])
	}
	return ct
}

// decryptWords is the exact inverse of encryptWords.
func (c *Cipher) decryptWords(ct [4]uint32) [4]uint32 {
	ks := c.ks
	r := [4]uint32{
		swapEndian32(ct[0]) ^ ks.K[4],
		swapEndian32(ct[1]) ^ ks.K[5],
		swapEndian32(ct[2]) ^ ks.K[6],
		swapEndian32(ct[3]) ^ ks.K[7],
	}

	for round := rounds - 1; round >= 0; round-- {
		f0, f1 := c.f(r[0], r[1], round)
		nr := [4]uint32{
			r[0],
			r[1],
			rol32(r[2], 1) ^ f0,
			ror32(r[3]^f1, 1),
		}
		r = nr
		if round > 0 {
			r[0], r[2] = r[2], r[0]
			r[1], r[3] = r[3], r[1]
		}
	}

	out := [4]uint32{r[2], r[3], r[0], r[1]}
	var pt [4]uint32
	for i := 0; i < 4; i++ {
		pt[i] = swapEndian32(out[(i+2)%4] ^ ks.K[i])
	}
	return pt
}

// EncryptBlock encrypts exactly one 16-byte block.
func (c *Cipher) EncryptBlock(block []byte) ([]byte, error) {
	if len(block) != BlockSize {
		return nil, newError(KindBadBlockSize, "Cipher.EncryptBlock", "block must be exactly 16 bytes", nil)
	}
	pt := bytesToWords(block)
	ct := c.encryptWords(pt)
	return wordsToBytes(ct), nil
}

// DecryptBlock decrypts exactly one 16-byte block.
func (c *Cipher) DecryptBlock(block []byte) ([]byte, error) {
	if len(block) != BlockSize {
		return nil, newError(KindBadBlockSize, "Cipher.DecryptBlock", "block must be exactly 16 bytes", nil)
	}
	ct := bytesToWords(block)
	pt := c.decryptWords(ct)
	return wordsToBytes(pt), nil
}

// bytesToWords reads a 16-byte block as 4 big-endian 32-bit words; the
// swapEndian32 at the start of encryptWords/decryptWords turns them into
// the block's little-endian words, which the Feistel network operates on.
func bytesToWords(block []byte) [4]uint32 {
	var w [4]uint32
	for i := 0; i < 4; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4 : i*4+4])
	}
	return w
}

// wordsToBytes writes 4 32-bit words as a 16-byte block in big-endian
// order, the inverse of bytesToWords.
func wordsToBytes(w [4]uint32) []byte {
	block := make([]byte, BlockSize)
	for i := 0; i < 4; i++ {
		binary.BigEndian.PutUint32(block[i*4:i*4+4], w[i])
	}
	return block
}
