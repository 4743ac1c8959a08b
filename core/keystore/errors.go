package keystore

import "errors"

var (
	// ErrKeystoreUnreadable indicates the keystore file could not be read.
	ErrKeystoreUnreadable = errors.New("failed to read keystore file")
	// ErrKeystoreDecode indicates PKCS#12 decoding failed, typically a
	// wrong password or corrupt file.
	ErrKeystoreDecode = errors.New("failed to decode keystore")
	// ErrNotRSAKey indicates the keystore keypair is not RSA.
	ErrNotRSAKey = errors.New("keystore does not contain an RSA private key")
	// ErrAliasMismatch indicates the keystore holds a different keypair
	// than the configured alias.
	ErrAliasMismatch = errors.New("keystore alias mismatch")
	// ErrNilKey indicates a nil key was supplied to NewFromKey.
	ErrNilKey = errors.New("nil RSA private key")
	// ErrEncrypt indicates RSA encryption failed.
	ErrEncrypt = errors.New("failed to encrypt secret")
	// ErrDecrypt indicates RSA decryption failed.
	ErrDecrypt = errors.New("failed to decrypt secret")
)
