package pangfish

import "fmt"

// Input validation helpers for defensive programming. Grounded directly
// in the teacher's validation.go: buffer/size/key-length assertions are
// domain-independent and carry over almost unchanged; the file-path and
// chunk-index helpers (filesystem-specific) are dropped.

// ValidateBuffer checks if a buffer is valid (non-nil and has expected size).
func ValidateBuffer(buf []byte, name string, minSize int) error {
	if buf == nil {
		return newError(KindNoKey, "ValidateBuffer", fmt.Sprintf("%s cannot be nil", name), nil)
	}
	if minSize > 0 && len(buf) < minSize {
		return newError(KindNoKey, "ValidateBuffer", fmt.Sprintf("%s too small: got %d bytes, need at least %d bytes", name, len(buf), minSize), nil)
	}
	return nil
}

// ValidateSize checks if a size parameter is within [minSize, maxSize].
// maxSize <= 0 disables the upper bound.
func ValidateSize(size int, name string, minSize, maxSize int) error {
	if size < 0 {
		return newError(KindNoKey, "ValidateSize", fmt.Sprintf("%s cannot be negative", name), nil)
	}
	if minSize >= 0 && size < minSize {
		return newError(KindNoKey, "ValidateSize", fmt.Sprintf("%s too small: got %d, minimum is %d", name, size, minSize), nil)
	}
	if maxSize > 0 && size > maxSize {
		return newError(KindNoKey, "ValidateSize", fmt.Sprintf("%s too large: got %d, maximum is %d", name, size, maxSize), nil)
	}
	return nil
}

// ValidateKeyLength checks that key has one of the valid Twofish-family
// key lengths (16, 24, or 32 bytes), returning BadKeyLength otherwise.
func ValidateKeyLength(key []byte) error {
	switch len(key) {
	case int(KeySize128), int(KeySize192), int(KeySize256):
		return nil
	default:
		return newError(KindBadKeyLength, "ValidateKeyLength", fmt.Sprintf("key must be 16, 24, or 32 bytes, got %d", len(key)), nil)
	}
}

// ValidateBlockSize checks that block is exactly one cipher block long.
func ValidateBlockSize(block []byte) error {
	if len(block) != BlockSize {
		return newError(KindBadBlockSize, "ValidateBlockSize", fmt.Sprintf("block must be exactly %d bytes, got %d", BlockSize, len(block)), nil)
	}
	return nil
}

// ValidateIVLength checks that iv is exactly one block long.
func ValidateIVLength(iv []byte) error {
	if len(iv) != IVSize {
		return newError(KindBadIvLength, "ValidateIVLength", fmt.Sprintf("iv must be exactly %d bytes, got %d", IVSize, len(iv)), nil)
	}
	return nil
}
