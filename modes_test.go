package pangfish

import (
	"bytes"
	"testing"
)

func TestECBRoundTrip(t *testing.T) {
	key := []byte("This is a 16-byte key")[:16]
	plaintext := []byte("This is a longer message that requires multiple blocks to encrypt properly!")
	if len(plaintext) != 75 {
		t.Fatalf("test fixture plaintext length changed: got %d", len(plaintext))
	}

	c, err := NewCipher(key)
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	ct, err := c.EncryptECB(plaintext)
	if err != nil {
		t.Fatalf("EncryptECB: %v", err)
	}
	wantLen := ((len(plaintext) / BlockSize) + 1) * BlockSize
	if len(ct) != wantLen {
		t.Errorf("ciphertext length = %d, want %d", len(ct), wantLen)
	}

	pt, err := c.DecryptECB(ct, true)
	if err != nil {
		t.Fatalf("DecryptECB: %v", err)
	}
	if !bytes.Equal(pt, plaintext) {
		t.Errorf("round-trip mismatch: got %q, want %q", pt, plaintext)
	}
}

func TestCBCRoundTrip(t *testing.T) {
	key := []byte("This is a 16-byte key")[:16]
	plaintext := []byte("This is a longer message that requires multiple blocks to encrypt properly!")
	iv := make([]byte, IVSize)

	c, err := NewCipher(key)
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	ct, err := c.EncryptCBC(plaintext, iv)
	if err != nil {
		t.Fatalf("EncryptCBC: %v", err)
	}
	paddedLen := ((len(plaintext) / BlockSize) + 1) * BlockSize
	wantLen := IVSize + paddedLen
	if len(ct) != wantLen {
		t.Errorf("ciphertext length = %d, want %d", len(ct), wantLen)
	}

	pt, err := c.DecryptCBC(ct, true)
	if err != nil {
		t.Fatalf("DecryptCBC: %v", err)
	}
	if !bytes.Equal(pt, plaintext) {
		t.Errorf("round-trip mismatch: got %q, want %q", pt, plaintext)
	}
}

func TestCBCRandomIVGeneratesDistinctCiphertext(t *testing.T) {
	c, err := NewCipher(make([]byte, 16))
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	plaintext := []byte("attack at dawn, repeated message")

	ct1, err := c.EncryptCBC(plaintext, nil)
	if err != nil {
		t.Fatalf("EncryptCBC: %v", err)
	}
	ct2, err := c.EncryptCBC(plaintext, nil)
	if err != nil {
		t.Fatalf("EncryptCBC: %v", err)
	}
	if bytes.Equal(ct1, ct2) {
		t.Error("two CBC encryptions with fresh random IVs produced identical ciphertext")
	}

	pt1, err := c.DecryptCBC(ct1, true)
	if err != nil {
		t.Fatalf("DecryptCBC: %v", err)
	}
	if !bytes.Equal(pt1, plaintext) {
		t.Errorf("DecryptCBC round-trip mismatch: got %q, want %q", pt1, plaintext)
	}
}

func TestECBDeterminism(t *testing.T) {
	c, err := NewCipher(make([]byte, 16))
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	plaintext := []byte("deterministic message, same every time")

	ct1, err := c.EncryptECB(plaintext)
	if err != nil {
		t.Fatalf("EncryptECB: %v", err)
	}
	ct2, err := c.EncryptECB(plaintext)
	if err != nil {
		t.Fatalf("EncryptECB: %v", err)
	}
	if !bytes.Equal(ct1, ct2) {
		t.Error("ECB encryption of the same plaintext under the same key should be deterministic")
	}
}

func TestPadUnpad(t *testing.T) {
	tests := [][]byte{
		{},
		[]byte("a"),
		bytes.Repeat([]byte("x"), BlockSize-1),
		bytes.Repeat([]byte("x"), BlockSize),
		bytes.Repeat([]byte("x"), BlockSize+1),
		bytes.Repeat([]byte("x"), 100),
	}

	for _, data := range tests {
		padded := pad(data)
		if len(padded)%BlockSize != 0 || len(padded) == 0 {
			t.Errorf("pad(%d bytes) produced %d bytes, not a positive multiple of block size", len(data), len(padded))
		}
		unpadded, err := unpad(padded, true)
		if err != nil {
			t.Errorf("unpad(pad(%d bytes)) unexpected error: %v", len(data), err)
			continue
		}
		if !bytes.Equal(unpadded, data) {
			t.Errorf("unpad(pad(%v)) = %v, want %v", data, unpadded, data)
		}
	}
}

func TestUnpadStrictRejectsInconsistentPadding(t *testing.T) {
	data := make([]byte, BlockSize)
	data[BlockSize-1] = 0 // invalid padding-length byte
	if _, err := unpad(data, true); err == nil {
		t.Error("expected error for invalid padding-length byte in strict mode")
	} else if !IsKind(err, KindBadPadding) {
		t.Errorf("expected KindBadPadding, got %v", err)
	}

	data2 := make([]byte, BlockSize)
	for i := range data2 {
		data2[i] = 3
	}
	data2[BlockSize-2] = 9 // inconsistent trailer byte
	if _, err := unpad(data2, true); err == nil {
		t.Error("expected error for inconsistent padding bytes in strict mode")
	}
}

func TestUnpadLenientPassesThroughOnInconsistency(t *testing.T) {
	data := make([]byte, BlockSize)
	data[BlockSize-1] = 0
	out, err := unpad(data, false)
	if err != nil {
		t.Fatalf("lenient unpad should not error, got %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Errorf("lenient unpad should pass data through unchanged, got %v want %v", out, data)
	}
}

func TestDecryptECBBadCiphertextLength(t *testing.T) {
	c, err := NewCipher(make([]byte, 16))
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	for _, size := range []int{0, 1, BlockSize - 1, BlockSize + 1} {
		_, err := c.DecryptECB(make([]byte, size), true)
		if !IsKind(err, KindBadCiphertextLength) {
			t.Errorf("DecryptECB(%d bytes) expected KindBadCiphertextLength, got %v", size, err)
		}
	}
}

func TestDecryptCBCBadCiphertextLength(t *testing.T) {
	c, err := NewCipher(make([]byte, 16))
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	for _, size := range []int{0, IVSize - 1, IVSize, IVSize + 1} {
		_, err := c.DecryptCBC(make([]byte, size), true)
		if !IsKind(err, KindBadCiphertextLength) {
			t.Errorf("DecryptCBC(%d bytes) expected KindBadCiphertextLength, got %v", size, err)
		}
	}
}
