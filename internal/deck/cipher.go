package deck

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"encoding/base64"
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// DefaultKey is the passphrase deck codes are shared with.
const DefaultKey = "BOTDB"

var (
	ErrBadCode = errors.New("deck code cannot be decoded")
	ErrNoKey   = errors.New("codec has no key")
)

var saltedPrefix = []byte("Salted__")

// Codec turns plain "print:count" lists into shareable deck codes. The
// output is the OpenSSL salted format (base64 of "Salted__", salt and
// AES-256-CBC ciphertext under an MD5 EVP_BytesToKey derivation), so codes
// made by the browser viewer decode here and the other way round. It only
// makes codes opaque; the key is public.
type Codec struct {
	Key string
	// Rand supplies salts; crypto/rand when nil.
	Rand io.Reader
}

// Encode obfuscates plain.
func (c Codec) Encode(plain string) (string, error) {
	if c.Key == "" {
		return "", ErrNoKey
	}
	r := c.Rand
	if r == nil {
		r = rand.Reader
	}
	salt := make([]byte, 8)
	if _, err := io.ReadFull(r, salt); err != nil {
		return "", errors.Wrap(err, "read salt")
	}
	key, iv := deriveKey([]byte(c.Key), salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", errors.Wrap(err, "new cipher")
	}
	data := pad([]byte(plain), aes.BlockSize)
	out := make([]byte, len(data))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, data)

	buf := make([]byte, 0, len(saltedPrefix)+len(salt)+len(out))
	buf = append(buf, saltedPrefix...)
	buf = append(buf, salt...)
	buf = append(buf, out...)
	return base64.StdEncoding.EncodeToString(buf), nil
}

// Decode reverses Encode. Any malformed input yields ErrBadCode.
func (c Codec) Decode(code string) (string, error) {
	if c.Key == "" {
		return "", ErrNoKey
	}
	raw, err := base64.StdEncoding.DecodeString(code)
	if err != nil {
		return "", errors.Wrap(ErrBadCode, err.Error())
	}
	if len(raw) < 16 || !bytes.Equal(raw[:8], saltedPrefix) {
		return "", errors.Wrap(ErrBadCode, "missing salt header")
	}
	salt, body := raw[8:16], raw[16:]
	if len(body) == 0 || len(body)%aes.BlockSize != 0 {
		return "", errors.Wrap(ErrBadCode, "bad ciphertext length")
	}
	key, iv := deriveKey([]byte(c.Key), salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", errors.Wrap(err, "new cipher")
	}
	out := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, body)
	plain, err := unpad(out, aes.BlockSize)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plain) {
		return "", errors.Wrap(ErrBadCode, "not utf-8")
	}
	return string(plain), nil
}

// deriveKey is OpenSSL's EVP_BytesToKey with MD5, one round, giving a
// 32-byte key and a 16-byte IV.
func deriveKey(pass, salt []byte) (key, iv []byte) {
	var derived, prev []byte
	for len(derived) < 48 {
		h := md5.New()
		h.Write(prev)
		h.Write(pass)
		h.Write(salt)
		prev = h.Sum(nil)
		derived = append(derived, prev...)
	}
	return derived[:32], derived[32:48]
}

func pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte, size int) ([]byte, error) {
	if len(b) == 0 {
		return nil, errors.Wrap(ErrBadCode, "empty block")
	}
	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return nil, errors.Wrap(ErrBadCode, "bad padding")
	}
	for _, v := range b[len(b)-n:] {
		if int(v) != n {
			return nil, errors.Wrap(ErrBadCode, "bad padding")
		}
	}
	return b[:len(b)-n], nil
}
