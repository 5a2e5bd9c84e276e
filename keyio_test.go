package pangfish

import (
	"bytes"
	"testing"
)

func TestPublicKeyJSONRoundTrip(t *testing.T) {
	sk, err := GenerateKey(512, 2)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	pub := sk.Public()

	data, err := pub.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var decoded PublicKey
	if err := decoded.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if decoded.N.Cmp(pub.N) != 0 || decoded.E.Cmp(pub.E) != 0 {
		t.Error("decoded public key does not match original")
	}
}

func TestPrivateKeyJSONRoundTrip(t *testing.T) {
	sk, err := GenerateKey(512, 3)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	data, err := sk.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var decoded PrivateKey
	if err := decoded.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if decoded.N.Cmp(sk.N) != 0 || decoded.D.Cmp(sk.D) != 0 || decoded.P.Cmp(sk.P) != 0 ||
		decoded.Q.Cmp(sk.Q) != 0 || decoded.B != sk.B {
		t.Error("decoded private key does not match original")
	}
}

func TestPrivateKeyUnmarshalMissingField(t *testing.T) {
	var sk PrivateKey
	err := sk.UnmarshalJSON([]byte(`{"n":"1","e":"1","d":"1","p":"1","q":"1","b":2,"dp":"1"}`))
	if !IsKind(err, KindEnvelopeSchema) {
		t.Errorf("expected KindEnvelopeSchema for missing dq, got %v", err)
	}
}

func TestParseDecimalInvalid(t *testing.T) {
	if _, err := parseDecimal("not-a-number", "n"); !IsKind(err, KindEnvelopeSchema) {
		t.Errorf("expected KindEnvelopeSchema, got %v", err)
	}
}

func TestPublicKeyWriteToReadFrom(t *testing.T) {
	sk, err := GenerateKey(512, 2)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	pub := sk.Public()

	var buf bytes.Buffer
	if _, err := pub.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	var decoded PublicKey
	if _, err := decoded.ReadFrom(&buf); err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if decoded.N.Cmp(pub.N) != 0 || decoded.E.Cmp(pub.E) != 0 {
		t.Error("decoded public key from framed stream does not match original")
	}
}

func TestPrivateKeyWriteToReadFrom(t *testing.T) {
	sk, err := GenerateKey(512, 2)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	var buf bytes.Buffer
	if _, err := sk.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	var decoded PrivateKey
	if _, err := decoded.ReadFrom(&buf); err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if decoded.N.Cmp(sk.N) != 0 {
		t.Error("decoded private key from framed stream does not match original")
	}
}
