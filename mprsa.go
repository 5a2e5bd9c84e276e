package pangfish

import "math/big"

// Multi-Power RSA: key generation, encryption, and CRT+Hensel-lifted
// decryption. Grounded in other_examples' Garner's-algorithm CRT
// decryption (internal-crypto-rsa.go.go) for the m1/m2/h/m combination
// step, generalized here to the p^(b-1)*q modulus and extended with the
// Hensel lift the Multi-Power scheme requires.

// DefaultPublicExponent is the conventional small public exponent.
const DefaultPublicExponent = 65537

// DefaultB is the default Multi-Power RSA exponent (N = p^(b-1)*q).
const DefaultB = 3

// DefaultRSAKeySize is the default modulus bit length.
const DefaultRSAKeySize = 2048

// maxKeyGenAttempts bounds the prime-search retries before KeyGen gives
// up with KeyGenerationFailed.
const maxKeyGenAttempts = 64

// PublicKey is the Multi-Power RSA public key (N, e).
type PublicKey struct {
	N *big.Int
	E *big.Int
}

// PrivateKey is the Multi-Power RSA private key, including the CRT
// components needed for Hensel-lifted decryption.
type PrivateKey struct {
	N  *big.Int
	E  *big.Int
	D  *big.Int
	P  *big.Int
	Q  *big.Int
	B  int
	Dp *big.Int // d mod (p-1)
	Dq *big.Int // d mod (q-1)
}

// Public returns the public key corresponding to sk.
func (sk *PrivateKey) Public() *PublicKey {
	return &PublicKey{N: sk.N, E: sk.E}
}

// GenerateKey generates a Multi-Power RSA key pair of the given modulus
// bit length, with N = p^(b-1)*q.
func GenerateKey(keySizeBits, b int) (*PrivateKey, error) {
	if b < 2 {
		return nil, newError(KindKeyGenerationFailed, "GenerateKey", "b must be >= 2", nil)
	}
	e := big.NewInt(DefaultPublicExponent)

	pBits := (keySizeBits + b - 1) / b // ceil(L/b)
	qBits := keySizeBits - (b-1)*pBits

	var p, q *big.Int
	for attempt := 0; attempt < maxKeyGenAttempts; attempt++ {
		var err error
		p, err = randomPrimeCoprimeToExponent(pBits, e, maxKeyGenAttempts)
		if err != nil {
			continue
		}
		q, err = randomPrimeCoprimeToExponent(qBits, e, maxKeyGenAttempts)
		if err != nil {
			continue
		}
		if p.Cmp(q) != 0 {
			break
		}
		p, q = nil, nil
	}
	if p == nil || q == nil {
		return nil, newError(KindKeyGenerationFailed, "GenerateKey", "failed to sample distinct primes p != q", nil)
	}

	one := big.NewInt(1)
	pMinus1 := new(big.Int).Sub(p, one)
	qMinus1 := new(big.Int).Sub(q, one)

	// N = p^(b-1) * q
	pPow := new(big.Int).Exp(p, big.NewInt(int64(b-1)), nil)
	n := new(big.Int).Mul(pPow, q)

	// phi(N) = p^(b-2) * (p-1) * (q-1)
	var phi *big.Int
	if b >= 3 {
		pPhiPow := new(big.Int).Exp(p, big.NewInt(int64(b-2)), nil)
		phi = new(big.Int).Mul(pPhiPow, pMinus1)
	} else {
		phi = new(big.Int).Set(pMinus1)
	}
	phi.Mul(phi, qMinus1)

	d, err := modInverse(e, phi)
	if err != nil {
		return nil, newError(KindKeyGenerationFailed, "GenerateKey", "public exponent has no inverse mod phi(N)", err)
	}

	dp := new(big.Int).Mod(d, pMinus1)
	dq := new(big.Int).Mod(d, qMinus1)

	return &PrivateKey{
		N: n, E: e, D: d,
		P: p, Q: q, B: b,
		Dp: dp, Dq: dq,
	}, nil
}

// Encrypt computes c = m^e mod N. It requires 0 <= m < N.
func (pk *PublicKey) Encrypt(m *big.Int) (*big.Int, error) {
	if m.Sign() < 0 || m.Cmp(pk.N) >= 0 {
		return nil, newError(KindMessageTooLarge, "PublicKey.Encrypt", "message must satisfy 0 <= m < N", nil)
	}
	return modExp(m, pk.E, pk.N), nil
}

// Decrypt reverses Encrypt using CRT with a Hensel lift for b >= 2.
func (sk *PrivateKey) Decrypt(c *big.Int) (*big.Int, error) {
	if c.Sign() < 0 || c.Cmp(sk.N) >= 0 {
		return nil, newError(KindInvalidCiphertext, "PrivateKey.Decrypt", "ciphertext must satisfy 0 <= c < N", nil)
	}

	cModQ := new(big.Int).Mod(c, sk.Q)
	mq := modExp(cModQ, sk.Dq, sk.Q)

	pPow := new(big.Int).Exp(sk.P, big.NewInt(int64(sk.B-1)), nil)
	cModP := new(big.Int).Mod(c, sk.P)
	mp, err := sk.henselLift(c, cModP, pPow)
	if err != nil {
		return nil, err
	}

	// m = mq + q * ((mp - mq) * q^-1 mod p^(b-1)) mod N
	qInv, err := modInverse(sk.Q, pPow)
	if err != nil {
		return nil, newError(KindInvalidCiphertext, "PrivateKey.Decrypt", "q has no inverse mod p^(b-1)", err)
	}
	diff := new(big.Int).Sub(mp, mq)
	diff.Mod(diff, pPow)
	h := new(big.Int).Mul(diff, qInv)
	h.Mod(h, pPow)

	m := new(big.Int).Mul(sk.Q, h)
	m.Add(m, mq)
	m.Mod(m, sk.N)
	return m, nil
}

// henselLift computes m_p = c^d mod p^(b-1) by first solving mod p, then
// lifting the root to successive powers of p, following the
// Newton-style iteration:
// m_{j+1} = m_j + (((c - m_j^e)/p^j) * (e*m_j^(e-1))^-1 mod p) * p^j.
func (sk *PrivateKey) henselLift(c, cModP, pPow *big.Int) (*big.Int, error) {
	m := modExp(cModP, sk.Dp, sk.P)
	if sk.B == 2 {
		return m, nil
	}

	pj := new(big.Int).Set(sk.P)
	for j := 1; j <= sk.B-2; j++ {
		pjp1 := new(big.Int).Mul(pj, sk.P)
		mPowE := modExp(m, sk.E, pjp1)
		diff := new(big.Int).Sub(c, mPowE)

		diff.Mod(diff, pjp1)
		diff.Div(diff, pj)

		// derivative e*m^(e-1) mod p, inverted mod p
		eMinus1 := new(big.Int).Sub(sk.E, big.NewInt(1))
		deriv := modExp(m, eMinus1, sk.P)
		deriv.Mul(deriv, sk.E)
		deriv.Mod(deriv, sk.P)

		derivInv, err := modInverse(deriv, sk.P)
		if err != nil {
			return nil, newError(KindInvalidCiphertext, "PrivateKey.henselLift", "derivative not invertible mod p", err)
		}

		t := new(big.Int).Mod(diff, sk.P)
		t.Mul(t, derivInv)
		t.Mod(t, sk.P)

		step := new(big.Int).Mul(t, pj)
		m.Add(m, step)
		m.Mod(m, pjp1)

		pj = pjp1
	}
	return m, nil
}

// Message is a canonical reduction of an integer, byte string, or UTF-8
// text input to a non-negative integer, replacing the source's
// dynamically-typed message inputs with an explicit variant.
type Message struct {
	value *big.Int
}

// MessageFromInt wraps an integer as a Message.
func MessageFromInt(m *big.Int) Message {
	return Message{value: new(big.Int).Set(m)}
}

// MessageFromBytes interprets b as a big-endian non-negative integer.
func MessageFromBytes(b []byte) Message {
	return Message{value: new(big.Int).SetBytes(b)}
}

// MessageFromText UTF-8 encodes s and interprets the bytes big-endian.
func MessageFromText(s string) Message {
	return MessageFromBytes([]byte(s))
}

// Int returns the message's canonical integer value.
func (m Message) Int() *big.Int {
	return m.value
}

// Bytes returns the message's big-endian byte encoding (minimal length,
// no leading zero padding).
func (m Message) Bytes() []byte {
	return m.value.Bytes()
}

// Text decodes the message's big-endian bytes as UTF-8 text.
func (m Message) Text() string {
	return string(m.value.Bytes())
}

// EncryptMessage encrypts a Message, returning the ciphertext as a
// decimal-string integer for transport robustness.
func (pk *PublicKey) EncryptMessage(m Message) (string, error) {
	c, err := pk.Encrypt(m.value)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// DecryptMessage decrypts a decimal-string ciphertext into a Message.
func (sk *PrivateKey) DecryptMessage(ciphertext string) (Message, error) {
	c, ok := new(big.Int).SetString(ciphertext, 10)
	if !ok {
		return Message{}, newError(KindInvalidCiphertext, "PrivateKey.DecryptMessage", "ciphertext is not a valid decimal integer", nil)
	}
	m, err := sk.Decrypt(c)
	if err != nil {
		return Message{}, err
	}
	return MessageFromInt(m), nil
}
