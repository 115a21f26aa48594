// Package cryptox hashes account passwords with argon2id.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/shiftjournal/internal/common"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

var ErrMalformedHash = errors.New("malformed password hash")

// DeriveKey stretches password with salt.
func DeriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// HashPassword returns an encoded "argon2id$<salt>$<key>" string suitable
// for storing in the users table.
func HashPassword(password []byte) string {
	salt := common.GenerateRandByteArray(saltLen)
	return encode(salt, DeriveKey(password, salt))
}

// VerifyPassword reports whether password matches the encoded hash.
func VerifyPassword(encoded string, password []byte) (bool, error) {
	salt, key, err := decode(encoded)
	if err != nil {
		return false, err
	}
	candidate := DeriveKey(password, salt)
	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

func encode(salt, key []byte) string {
	enc := base64.RawStdEncoding
	return fmt.Sprintf("argon2id$%s$%s", enc.EncodeToString(salt), enc.EncodeToString(key))
}

func decode(encoded string) (salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != "argon2id" {
		return nil, nil, ErrMalformedHash
	}
	enc := base64.RawStdEncoding
	if salt, err = enc.DecodeString(parts[1]); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	if key, err = enc.DecodeString(parts[2]); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	return salt, key, nil
}
