// Package credential derives the encrypted password the uHoo login endpoint expects.
//
// The derivation is pure: identical inputs always produce identical output.
package credential

import (
	"crypto/aes"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	pkcs7 "github.com/mergermarket/go-pkcs7"
)

// passwordSalt is appended to uid||password before hashing.
const passwordSalt = "@uhooinc.com"

const hexAlphabet = "0123456789ABCDEF"

var errCiphertextSize = errors.New("ciphertext is not a multiple of the AES block size")

// DeriveEncryptedPassword turns a plaintext password plus the server issued uid and
// verification code into the lowercase hex ciphertext submitted to /login.
func DeriveEncryptedPassword(password, uid, clientCode string) (string, error) {
	hashed := HashPassword(password, uid)
	ct, err := encrypt([]byte(clientCode), []byte(hashed))
	if err != nil {
		return "", fmt.Errorf("encrypt hashed password: %w", err)
	}
	return encodeHex(ct), nil
}

// HashPassword returns sha256(uid || password || salt) as 64 lowercase hex characters.
func HashPassword(password, uid string) string {
	sum := sha256.Sum256([]byte(uid + password + passwordSalt))
	return hex.EncodeToString(sum[:])
}

// DecryptPassword reverses the AES step of DeriveEncryptedPassword and returns the
// hashed password hex string.
func DecryptPassword(encryptedHex, clientCode string) (string, error) {
	ct, err := hex.DecodeString(encryptedHex)
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}
	if len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return "", errCiphertextSize
	}
	block, err := aes.NewCipher(deriveKey([]byte(clientCode)))
	if err != nil {
		return "", fmt.Errorf("init aes: %w", err)
	}
	pt := make([]byte, len(ct))
	for off := 0; off < len(ct); off += aes.BlockSize {
		block.Decrypt(pt[off:off+aes.BlockSize], ct[off:off+aes.BlockSize])
	}
	unpadded, err := pkcs7.Unpad(pt, aes.BlockSize)
	if err != nil {
		return "", fmt.Errorf("unpad plaintext: %w", err)
	}
	return string(unpadded), nil
}

// deriveKey uses the md5 digest of the verification code directly as the AES-128 key.
func deriveKey(code []byte) []byte {
	sum := md5.Sum(code)
	return sum[:]
}

// encrypt runs AES in ECB mode: every block is enciphered independently, no IV.
func encrypt(code, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(deriveKey(code))
	if err != nil {
		return nil, err
	}
	padded, err := pkcs7.Pad(plaintext, aes.BlockSize)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(padded))
	for off := 0; off < len(padded); off += aes.BlockSize {
		block.Encrypt(out[off:off+aes.BlockSize], padded[off:off+aes.BlockSize])
	}
	return out, nil
}

// encodeHex renders high nibble then low nibble with an upper-case alphabet and lowers
// the result, which is what the vendor app does.
func encodeHex(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) * 2)
	for _, v := range b {
		sb.WriteByte(hexAlphabet[(v>>4)&0x0f])
		sb.WriteByte(hexAlphabet[v&0x0f])
	}
	return strings.ToLower(sb.String())
}
