// Package auth persists the Trello API credentials in the system keyring.
package auth

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const (
	service = "tvshowl"
	userKey = "trello-key"
	userTok = "trello-token"
)

// ErrNotFound is returned when no credential has been stored yet.
var ErrNotFound = keyring.ErrNotFound

// Credentials is a Trello API key and token pair.
type Credentials struct {
	Key   string
	Token string
}

// Save persists both halves of the credentials.
func Save(c Credentials) error {
	if err := keyring.Set(service, userKey, c.Key); err != nil {
		return err
	}
	return keyring.Set(service, userTok, c.Token)
}

// Load retrieves the stored credentials. Missing halves are left empty;
// ErrNotFound is returned only when neither is stored.
func Load() (Credentials, error) {
	var c Credentials

	k, errKey := keyring.Get(service, userKey)
	if errKey != nil && !errors.Is(errKey, keyring.ErrNotFound) {
		return c, errKey
	}
	t, errTok := keyring.Get(service, userTok)
	if errTok != nil && !errors.Is(errTok, keyring.ErrNotFound) {
		return c, errTok
	}

	if errKey != nil && errTok != nil {
		return c, ErrNotFound
	}

	c.Key, c.Token = k, t
	return c, nil
}

// Delete removes the stored credentials. Missing entries are not an error.
func Delete() error {
	for _, user := range []string{userKey, userTok} {
		if err := keyring.Delete(service, user); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return err
		}
	}
	return nil
}
