// Package keystore loads an RSA keypair from a PKCS#12 keystore and
// exposes encrypt/decrypt for at-rest secrets such as stored password
// hashes. Load failures are meant to abort startup; a Decryptor is
// read-only after construction and safe for concurrent use.
package keystore
