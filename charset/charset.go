// Package charset turns message text into the character codes that get
// embedded, and back.
//
// The default, empty charset uses UTF-16 code units. Any other name selects a
// single-byte encoding, so that for instance Cyrillic text can be carried as
// windows-1251 bytes instead of UTF-16 units the format cannot represent.
package charset

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"

	"lsbsteg/lsb"
)

var (
	ErrUnknownCharset = errors.New("unknown charset")
	ErrUnmappable     = errors.New("character not representable in charset")
	ErrMultiByte      = errors.New("charset is not single-byte")
)

const utf16Name = "utf-16"

func isUTF16(name string) bool {
	return name == "" || strings.EqualFold(name, utf16Name)
}

// Lookup resolves a WHATWG label ("windows-1251", "koi8-r", "latin1") or a
// charmap name ("IBM Code Page 866"). Labels of multi-byte encodings such as
// utf-8 or shift_jis are rejected with ErrMultiByte.
func Lookup(name string) (encoding.Encoding, error) {
	if enc, err := htmlindex.Get(name); err == nil {
		if _, ok := enc.(*charmap.Charmap); !ok {
			return nil, fmt.Errorf("%w: %q", ErrMultiByte, name)
		}
		return enc, nil
	}

	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok && strings.EqualFold(cm.String(), name) {
			return cm, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
}

// Validate reports whether name can be used with Codes and Text.
func Validate(name string) error {
	if isUTF16(name) {
		return nil
	}
	_, err := Lookup(name)
	return err
}

// Codes converts text to character codes in the given charset.
func Codes(name, text string) ([]uint16, error) {
	if isUTF16(name) {
		return utf16.Encode([]rune(text)), nil
	}

	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	b, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnmappable, name, err)
	}

	codes := make([]uint16, len(b))
	for i, c := range b {
		codes[i] = uint16(c)
	}
	return codes, nil
}

// Text converts character codes back to a string. Codes above 0xFF are
// truncated to a byte for single-byte charsets.
func Text(name string, codes []uint16) (string, error) {
	if isUTF16(name) {
		return string(utf16.Decode(codes)), nil
	}

	enc, err := Lookup(name)
	if err != nil {
		return "", err
	}

	b := make([]byte, len(codes))
	for i, c := range codes {
		b[i] = byte(c)
	}

	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("could not decode %q text: %w", name, err)
	}
	return string(out), nil
}

// Lossy returns the indexes of codes that will not come back unchanged after
// embedding.
func Lossy(codes []uint16) []int {
	var idx []int
	for i, c := range codes {
		if !lsb.Lossless(c) {
			idx = append(idx, i)
		}
	}
	return idx
}
