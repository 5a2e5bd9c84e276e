package pangfish

import "encoding/binary"

// Key schedule: derives 40 round subkeys plus k S-box input words from
// 16/24/32-byte key material. Grounded in the reference myref.py
// keySched/makeKey/h, translated to Go's explicit 32-bit word arithmetic.

const (
	rounds = 16
	// rho is the fixed odometer constant used to derive the h() input
	// words for each round-subkey pair.
	rho = 0x01010101
)

// qdonePattern is the fixed 5x4 table of {Q0,Q1} applied at each stage
// of h(). Row i+1 is applied while XORing in L[i]; row 0 is the final
// stage.
var qdonePattern = [5][4]*[256]byte{
	{&q1, &q0, &q1, &q0},
	{&q0, &q0, &q1, &q1},
	{&q0, &q1, &q0, &q1},
	{&q1, &q1, &q0, &q0},
	{&q1, &q0, &q0, &q1},
}

// keySchedule holds the expanded round subkeys and S-box input words for
// one cipher instance. It is immutable once derived and owned exclusively
// by the Cipher that created it.
type keySchedule struct {
	k int       // number of 64-bit key "words"; k = N/64 in {2,3,4}
	K [40]uint32 // round subkeys
	S []uint32   // S-box input words, length k
}

// to32Bytes decomposes a 32-bit word into 4 big-endian bytes.
func to32Bytes(x uint32) [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], x)
	return b
}

// bytesTo32 packs 4 bytes (big-endian) into a 32-bit word.
func bytesTo32(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}

// rol32 rotates x left by n bits (0 < n < 32).
func rol32(x uint32, n uint) uint32 {
	return (x << n) | (x >> (32 - n))
}

// ror32 rotates x right by n bits (0 < n < 32).
func ror32(x uint32, n uint) uint32 {
	return (x >> n) | (x << (32 - n))
}

// h implements the h/g key-dependent permutation-and-diffusion function:
// X is decomposed into bytes (reversed so index 0 is the low byte),
// mixed through k stages of Q-permutation and XOR with the words of L,
// then diffused through the MDS matrix.
func h(x uint32, l []uint32, k int) uint32 {
	xb := to32Bytes(x)
	y := [4]byte{xb[3], xb[2], xb[1], xb[0]}

	lb := make([][4]byte, k)
	for i := 0; i < k; i++ {
		lb[i] = to32Bytes(l[i])
	}

	for i := k - 1; i >= 0; i-- {
		stage := qdonePattern[i+1]
		for j := 0; j < 4; j++ {
			y[j] = stage[j][y[j]] ^ lb[i][j]
		}
	}

	final := qdonePattern[0]
	for j := 0; j < 4; j++ {
		y[j] = final[j][y[j]]
	}

	z := matrixMultiply(mds, y[:], gfMod)
	return bytesTo32(z)
}

// g is h() applied with the cipher's S-box input words as L.
func g(x uint32, s []uint32, k int) uint32 {
	return h(x, s, k)
}

// deriveKeySchedule builds the key schedule for a key of 16, 24 or 32
// bytes. Callers must have already validated the key length.
func deriveKeySchedule(key []byte) *keySchedule {
	n := 8 * len(key)
	k := n / 64

	words := make([]uint32, 2*k)
	for i := range words {
		words[i] = bytesTo32(key[i*4 : i*4+4])
	}
	me := make([]uint32, k)
	mo := make([]uint32, k)
	for i := 0; i < k; i++ {
		me[i] = words[2*i]
		mo[i] = words[2*i+1]
	}

	s := make([]uint32, k)
	for i := 0; i < k; i++ {
		ex := to32Bytes(me[i])
		ox := to32Bytes(mo[i])
		vector := append(append([]byte{}, ex[:]...), ox[:]...)
		prod := matrixMultiply(rs, vector, rsMod)
		for a, b := 0, len(prod)-1; a < b; a, b = a+1, b-1 {
			prod[a], prod[b] = prod[b], prod[a]
		}
		si := bytesTo32(prod)
		s[k-1-i] = si
	}

	var ks keySchedule
	ks.k = k
	ks.S = s

	for i := 0; i < rounds+4; i++ {
		a := h(uint32(2*i)*rho, me, k)
		b := h(uint32(2*i+1)*rho, mo, k)
		b = rol32(b, 8)
		ks.K[2*i] = a + b
		ks.K[2*i+1] = rol32(a+2*b, 9)
	}

	return &ks
}
