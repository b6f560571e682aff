// Package mockapi emulates an identity backend without a real network. It
// owns the registered users, their credentials, and issued bearer tokens,
// persisting all three collections through a kvstore.Store. Every operation
// pauses for a simulated network delay before resolving.
package mockapi

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
)

// CredentialKind distinguishes hashed credentials from legacy plaintext ones.
type CredentialKind int

const (
	// CredentialHashed is a hex-encoded SHA-256 digest of the password.
	CredentialHashed CredentialKind = iota
	// CredentialLegacy is a plaintext password imported from old data.
	CredentialLegacy
)

// hashedLength is the length of a hex SHA-256 digest. Stored strings of
// exactly this length are treated as digests; anything else is legacy
// plaintext.
const hashedLength = 64

// Credential is a stored password representation. The serialized form is the
// bare string, so persisted data stays compatible with legacy records.
type Credential struct {
	kind  CredentialKind
	value string
}

// ParseCredential classifies a stored string by the length rule.
func ParseCredential(s string) Credential {
	if len(s) == hashedLength {
		return Credential{kind: CredentialHashed, value: s}
	}
	return Credential{kind: CredentialLegacy, value: s}
}

// HashPassword digests a plaintext password into a hashed Credential.
func HashPassword(password string) Credential {
	sum := sha256.Sum256([]byte(password))
	return Credential{kind: CredentialHashed, value: hex.EncodeToString(sum[:])}
}

// Kind reports whether the credential is hashed or legacy.
func (c Credential) Kind() CredentialKind { return c.kind }

// Matches verifies a password candidate against the stored representation.
func (c Credential) Matches(password string) bool {
	candidate := password
	if c.kind == CredentialHashed {
		sum := sha256.Sum256([]byte(password))
		candidate = hex.EncodeToString(sum[:])
	}
	return subtle.ConstantTimeCompare([]byte(c.value), []byte(candidate)) == 1
}

func (c Credential) String() string { return c.value }

func (c Credential) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.value)
}

func (c *Credential) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = ParseCredential(s)
	return nil
}
