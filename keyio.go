package pangfish

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"math/big"
)

// Key wire format: public/private keys serialize as JSON records of
// decimal-string integers plus the scalar b. WriteTo/ReadFrom frame that
// JSON payload with a 4-byte length prefix for streaming, generalizing
// the teacher's FileHeader.WriteTo/ReadFrom fixed-binary-field framing to
// a single length-prefixed JSON record.

type publicKeyJSON struct {
	N string `json:"n"`
	E string `json:"e"`
}

type privateKeyJSON struct {
	N  string `json:"n"`
	E  string `json:"e"`
	D  string `json:"d"`
	P  string `json:"p"`
	Q  string `json:"q"`
	B  int    `json:"b"`
	Dp string `json:"dp"`
	Dq string `json:"dq"`
}

// MarshalJSON encodes the public key as decimal-string integers.
func (pk *PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(publicKeyJSON{N: pk.N.String(), E: pk.E.String()})
}

// UnmarshalJSON decodes a public key from decimal-string integers.
func (pk *PublicKey) UnmarshalJSON(data []byte) error {
	var w publicKeyJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return newError(KindEnvelopeSchema, "PublicKey.UnmarshalJSON", "malformed public key JSON", err)
	}
	n, err := parseDecimal(w.N, "n")
	if err != nil {
		return err
	}
	e, err := parseDecimal(w.E, "e")
	if err != nil {
		return err
	}
	pk.N, pk.E = n, e
	return nil
}

// MarshalJSON encodes the private key as decimal-string integers plus
// the scalar b.
func (sk *PrivateKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(privateKeyJSON{
		N: sk.N.String(), E: sk.E.String(), D: sk.D.String(),
		P: sk.P.String(), Q: sk.Q.String(), B: sk.B,
		Dp: sk.Dp.String(), Dq: sk.Dq.String(),
	})
}

// UnmarshalJSON decodes a private key from decimal-string integers plus
// the scalar b.
func (sk *PrivateKey) UnmarshalJSON(data []byte) error {
	var w privateKeyJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return newError(KindEnvelopeSchema, "PrivateKey.UnmarshalJSON", "malformed private key JSON", err)
	}
	fields := map[string]*string{"n": &w.N, "e": &w.E, "d": &w.D, "p": &w.P, "q": &w.Q, "dp": &w.Dp, "dq": &w.Dq}
	for name, v := range fields {
		if *v == "" {
			return newError(KindEnvelopeSchema, "PrivateKey.UnmarshalJSON", "missing field "+name, nil)
		}
	}
	var err error
	if sk.N, err = parseDecimal(w.N, "n"); err != nil {
		return err
	}
	if sk.E, err = parseDecimal(w.E, "e"); err != nil {
		return err
	}
	if sk.D, err = parseDecimal(w.D, "d"); err != nil {
		return err
	}
	if sk.P, err = parseDecimal(w.P, "p"); err != nil {
		return err
	}
	if sk.Q, err = parseDecimal(w.Q, "q"); err != nil {
		return err
	}
	if sk.Dp, err = parseDecimal(w.Dp, "dp"); err != nil {
		return err
	}
	if sk.Dq, err = parseDecimal(w.Dq, "dq"); err != nil {
		return err
	}
	sk.B = w.B
	return nil
}

// parseDecimal parses s as a base-10 integer, naming field in the error
// on failure.
func parseDecimal(s, field string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, newError(KindEnvelopeSchema, "parseDecimal", "field "+field+" is not a valid decimal integer", nil)
	}
	return n, nil
}

// WriteTo writes a length-prefixed JSON encoding of the public key to w:
// a 4-byte little-endian length prefix followed by the JSON payload.
func (pk *PublicKey) WriteTo(w io.Writer) (int64, error) {
	return writeFramedJSON(w, pk)
}

// ReadFrom reads a length-prefixed JSON-encoded public key from r.
func (pk *PublicKey) ReadFrom(r io.Reader) (int64, error) {
	return readFramedJSON(r, pk)
}

// WriteTo writes a length-prefixed JSON encoding of the private key to w.
func (sk *PrivateKey) WriteTo(w io.Writer) (int64, error) {
	return writeFramedJSON(w, sk)
}

// ReadFrom reads a length-prefixed JSON-encoded private key from r.
func (sk *PrivateKey) ReadFrom(r io.Reader) (int64, error) {
	return readFramedJSON(r, sk)
}

// writeFramedJSON marshals v to JSON and writes it to w prefixed with its
// length as a 4-byte little-endian uint32.
func writeFramedJSON(w io.Writer, v json.Marshaler) (int64, error) {
	payload, err := v.MarshalJSON()
	if err != nil {
		return 0, newError(KindEnvelopeSchema, "writeFramedJSON", "failed to marshal payload", err)
	}
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	n1, err := w.Write(lenBuf[:])
	if err != nil {
		return int64(n1), newError(KindEnvelopeSchema, "writeFramedJSON", "failed to write length prefix", err)
	}
	n2, err := w.Write(payload)
	if err != nil {
		return int64(n1 + n2), newError(KindEnvelopeSchema, "writeFramedJSON", "failed to write payload", err)
	}
	return int64(n1 + n2), nil
}

// readFramedJSON reads a 4-byte little-endian length prefix followed by
// that many bytes of JSON, unmarshaling into v.
func readFramedJSON(r io.Reader, v json.Unmarshaler) (int64, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return 0, newError(KindEnvelopeSchema, "readFramedJSON", "failed to read length prefix", err)
	}
	n := binary.LittleEndian.Uint32(lenBuf[:])
	payload := make([]byte, n)
	read, err := io.ReadFull(r, payload)
	total := int64(4 + read)
	if err != nil {
		return total, newError(KindEnvelopeSchema, "readFramedJSON", "failed to read payload", err)
	}
	if err := v.UnmarshalJSON(payload); err != nil {
		return total, err
	}
	return total, nil
}
