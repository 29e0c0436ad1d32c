package credentials

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sagarc03/showoff"
)

// Stored password formats:
//
//	hmac-sha256:<hex>   HMAC-SHA256 of the password keyed with the server secret
//	$2a$... / $2b$...   bcrypt hash of the password
const (
	PrefixHMAC = "hmac-sha256:"
)

// Verifier implements showoff.CredentialVerifier.
type Verifier struct{}

// NewVerifier creates a credential verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

var _ showoff.CredentialVerifier = (*Verifier)(nil)

// Verify reports whether username and password match the stored
// credentials. A stored username, when set, must match exactly. An empty
// stored password never verifies.
func (v *Verifier) Verify(secret string, stored showoff.Credentials, username, password string) bool {
	if stored.Username != "" && subtle.ConstantTimeCompare([]byte(stored.Username), []byte(username)) != 1 {
		return false
	}

	switch {
	case stored.Password == "":
		return false
	case strings.HasPrefix(stored.Password, PrefixHMAC):
		want, err := hex.DecodeString(strings.TrimPrefix(stored.Password, PrefixHMAC))
		if err != nil {
			return false
		}
		return hmac.Equal(want, sign(secret, password))
	case strings.HasPrefix(stored.Password, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(password)) == nil
	default:
		return false
	}
}

// HashHMAC returns the stored form of password for the HMAC scheme.
func HashHMAC(secret, password string) string {
	return PrefixHMAC + hex.EncodeToString(sign(secret, password))
}

// HashBcrypt returns the stored form of password for the bcrypt scheme.
func HashBcrypt(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash bcrypt: %w", err)
	}
	return string(h), nil
}

func sign(secret, password string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(password))
	return mac.Sum(nil)
}
