package utils

import (
	"github.com/matthewhartstonge/argon2"
)

var passwordConfig = argon2.DefaultConfig()

// HashPassword returns an encoded argon2id hash carrying its own random
// salt and parameters.
func HashPassword(password string) (string, error) {
	encoded, err := passwordConfig.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// VerifyPassword checks a plain password against a hash from HashPassword.
func VerifyPassword(encodedHash, password string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
