package uicc

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// ByteHex formats v as two upper case hex digits.
func ByteHex(v int) string {
	return fmt.Sprintf("%02X", v)
}

// ASCIIHex hex encodes the bytes of s.
func ASCIIHex(s string) string {
	return strings.ToUpper(hex.EncodeToString([]byte(s)))
}

// NumberHex formats n big-endian, zero padded to byteLen bytes. It fails when
// n does not fit.
func NumberHex(n uint64, byteLen int) (string, error) {
	h := fmt.Sprintf("%X", n)
	if len(h) > byteLen*2 {
		return "", fmt.Errorf("%w: %d does not fit in %d bytes", ErrInvalid, n, byteLen)
	}
	return strings.Repeat("0", byteLen*2-len(h)) + h, nil
}

func HexASCII(h string) (string, error) {
	b, err := hex.DecodeString(h)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return string(b), nil
}

// HexNumber parses h as a big-endian unsigned number and returns it in
// decimal.
func HexNumber(h string) (string, error) {
	n, err := strconv.ParseUint(h, 16, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return strconv.FormatUint(n, 10), nil
}

func isHex(s string) bool {
	_, err := hex.DecodeString(s)
	return err == nil
}

// tlv wraps value, which is already hex, as tag + length + value.
func tlv(tag, value string) (string, error) {
	n := len(value) / 2
	if n > 0xFF {
		return "", fmt.Errorf("%w: %s value is %d bytes", ErrTooLong, tag, n)
	}
	return tag + ByteHex(n) + value, nil
}
