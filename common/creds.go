package common

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// GenerateID returns an opaque, globally-unique 128-bit hex token. Used for
// entity ids and ad hoc secrets.
func GenerateID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Now returns epoch seconds, used for createdAt stamps.
func Now() int64 {
	return time.Now().Unix()
}
