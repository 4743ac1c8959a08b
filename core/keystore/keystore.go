package keystore

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/pkcs12"
)

// Decryptor provides encrypt/decrypt capability for at-rest secrets using
// an RSA keypair loaded from a PKCS#12 keystore. It is loaded once at
// process start, never mutated afterwards, and safe for unsynchronized
// concurrent use.
type Decryptor struct {
	key *rsa.PrivateKey
}

// Config holds keystore settings. A load failure is fatal at startup:
// when encrypted-secret storage is enabled, no authentication can proceed
// without the keypair.
type Config struct {
	Path     string `env:"KEYSTORE_PATH" envDefault:""`
	Password string `env:"KEYSTORE_PASSWORD" envDefault:""`
	// Alias names the expected keypair. When set, it is checked against
	// the certificate subject common name.
	Alias string `env:"KEYSTORE_ALIAS" envDefault:""`
}

// Enabled reports whether a keystore is configured.
func (c Config) Enabled() bool {
	return c.Path != ""
}

// Load reads the PKCS#12 keystore and extracts its RSA keypair.
func Load(cfg Config) (*Decryptor, error) {
	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeystoreUnreadable, err)
	}

	priv, cert, err := pkcs12.Decode(data, cfg.Password)
	if err != nil {
		return nil, errors.Join(ErrKeystoreDecode, err)
	}

	key, ok := priv.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotRSAKey, priv)
	}

	if cfg.Alias != "" && cert != nil && cert.Subject.CommonName != cfg.Alias {
		return nil, fmt.Errorf("%w: keystore holds %q, want %q",
			ErrAliasMismatch, cert.Subject.CommonName, cfg.Alias)
	}

	return &Decryptor{key: key}, nil
}

// NewFromKey wraps an existing RSA private key, bypassing the keystore
// file. Intended for tests and for deployments that source keys elsewhere.
func NewFromKey(key *rsa.PrivateKey) (*Decryptor, error) {
	if key == nil {
		return nil, ErrNilKey
	}
	return &Decryptor{key: key}, nil
}

// Encrypt seals a secret with RSA-OAEP (SHA-256) and encodes it base64url.
func (d *Decryptor) Encrypt(plaintext string) (string, error) {
	ciphertext, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, &d.key.PublicKey, []byte(plaintext), nil)
	if err != nil {
		return "", errors.Join(ErrEncrypt, err)
	}
	return base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt.
func (d *Decryptor) Decrypt(encoded string) (string, error) {
	ciphertext, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", errors.Join(ErrDecrypt, err)
	}

	plaintext, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, d.key, ciphertext, nil)
	if err != nil {
		return "", errors.Join(ErrDecrypt, err)
	}
	return string(plaintext), nil
}
