// Package keystore persists Aleo accounts with their private keys sealed under
// a passphrase.
//
// Secrets are encrypted with XChaCha20-Poly1305 under a key stretched by
// argon2id. The envelope records its cost parameters and Open refuses
// envelopes weaker than MinKDFParams. The account address is authenticated as
// associated data, so a sealed key cannot be moved to another row.
//
// Rows live in sqlite (the default, migrated with gorm AutoMigrate) or
// postgres (migrated with goose from the embedded migrations directory).
package keystore
