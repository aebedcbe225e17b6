// Package file provides the TOML configuration store.
//
// Settings live in ~/.iajur/config.toml unless a config directory is given.
// Keys are addressed with dot notation ("server.base_url") and written back
// as nested TOML tables.
package file
