package auth

import (
	"strings"

	"github.com/alexedwards/argon2id"
)

var DefaultPasswordParams = &argon2id.Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, DefaultPasswordParams)
}

func ComparePassword(password, hash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(password, hash)
}

// ValidateHash checks that hash is a well-formed argon2id hash.
func ValidateHash(hash string) error {
	_, _, _, err := argon2id.DecodeHash(strings.TrimSpace(hash))
	return err
}
