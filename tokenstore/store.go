// Package tokenstore persists the credential pair across process
// restarts. It is a plain key-value collaborator: the client mirrors
// token changes into it and reads it back on startup.
package tokenstore

import "errors"

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("tokenstore: key not found")

// Keys used by the client for the credential pair.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
)

type Store interface {
	Read(key string) (string, error)
	Write(key, value string) error
	Delete(key string) error
}
