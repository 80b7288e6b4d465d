// Package auth проверяет пароли администраторов и пользователей.
//
// В базе лежат bcrypt-хеши (включая $2y$ от старой PHP-версии), argon2i/argon2id
// в формате PHC и, для старых записей, пароли в открытом виде.
package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 6

var ErrMalformedHash = errors.New("malformed password hash")

var hashPrefixes = []string{"$2a$", "$2b$", "$2y$", "$argon2i$", "$argon2id$"}

// IsHash сообщает, похоже ли сохраненное значение на хеш известного формата.
func IsHash(stored string) bool {
	for _, p := range hashPrefixes {
		if strings.HasPrefix(stored, p) {
			return true
		}
	}
	return false
}

func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify сравнивает пароль с сохраненным значением.
// legacy == true означает совпадение с открытым текстом; такой пароль надо перехешировать.
func Verify(stored, password string) (ok bool, legacy bool) {
	if stored == "" {
		return false, false
	}

	switch {
	case strings.HasPrefix(stored, "$argon2"):
		match, err := verifyArgon2(stored, password)
		return err == nil && match, false
	case IsHash(stored):
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil, false
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1 {
		return true, true
	}
	return false, false
}

// $argon2id$v=19$m=65536,t=4,p=1$<salt>$<hash>
func verifyArgon2(stored, password string) (bool, error) {
	parts := strings.Split(stored, "$")
	if len(parts) != 6 {
		return false, ErrMalformedHash
	}

	variant := parts[1]
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, ErrMalformedHash
	}
	if version != argon2.Version {
		return false, fmt.Errorf("%w: unsupported argon2 version %d", ErrMalformedHash, version)
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false, ErrMalformedHash
	}

	var got []byte
	switch variant {
	case "argon2id":
		got = argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(want)))
	case "argon2i":
		got = argon2.Key([]byte(password), salt, time, memory, threads, uint32(len(want)))
	default:
		return false, ErrMalformedHash
	}

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
