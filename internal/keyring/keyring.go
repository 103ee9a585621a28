// Package keyring keeps habitlit's PostgreSQL connection string in the OS
// keyring and resolves which connection string a command should use.
package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/storage"
)

var (
	ErrNotFound    = errors.New("no connection string in keyring")
	ErrUnavailable = errors.New("OS keyring is not available")
	ErrNotPostgres = errors.New("not a PostgreSQL connection string")
)

// Saved describes a connection string accepted by Save.
type Saved struct {
	Masked      string
	HasPassword bool
}

// Save validates connStr and stores it under habitlit's keyring entry.
// An embedded password is allowed here because the keyring is encrypted;
// Saved reports it so the caller can say so.
func Save(connStr string) (Saved, error) {
	connStr = strings.TrimSpace(connStr)
	embedded, err := check(connStr)
	if err != nil {
		return Saved{}, err
	}
	if err := gokeyring.Set(constants.AppName, constants.KeyringUser, connStr); err != nil {
		return Saved{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return Saved{Masked: Mask(connStr), HasPassword: embedded}, nil
}

// Load returns the stored connection string. A stored value that no longer
// validates is reported rather than handed to the driver.
func Load() (string, error) {
	connStr, err := gokeyring.Get(constants.AppName, constants.KeyringUser)
	if errors.Is(err, gokeyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if _, err := check(connStr); err != nil {
		return "", fmt.Errorf("stored connection string is unusable, run 'habitlit keyring set' again: %w", err)
	}
	return connStr, nil
}

// Remove deletes the stored connection string.
func Remove() error {
	err := gokeyring.Delete(constants.AppName, constants.KeyringUser)
	if errors.Is(err, gokeyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Resolve picks the connection string for a command. HABITLIT_DB_CONNECTION
// always wins; the keyring is read only when fromKeyring is set. ok is false
// when neither source applies and the config path should be used instead.
func Resolve(fromKeyring bool) (conn string, ok bool, err error) {
	if conn := os.Getenv(constants.EnvConnection); conn != "" {
		return conn, true, nil
	}
	if !fromKeyring {
		return "", false, nil
	}
	conn, err = Load()
	if err != nil {
		return "", false, err
	}
	return conn, true, nil
}

// check reports whether connStr embeds a password, or why it cannot be used.
func check(connStr string) (bool, error) {
	if !storage.IsPostgresConnString(connStr) {
		return false, ErrNotPostgres
	}
	err := storage.ValidateConnString(connStr)
	switch {
	case errors.Is(err, storage.ErrEmbeddedCredentials):
		return true, nil
	case err != nil:
		return false, err
	}
	return false, nil
}

// Mask hides the password in a URI or key=value connection string.
func Mask(connStr string) string {
	if scheme, rest, ok := strings.Cut(connStr, "://"); ok {
		at := strings.LastIndex(rest, "@")
		if at < 0 {
			return connStr
		}
		user, _, hasPassword := strings.Cut(rest[:at], ":")
		if !hasPassword {
			return connStr
		}
		return scheme + "://" + user + ":****" + rest[at:]
	}

	parts := strings.Fields(connStr)
	for i, part := range parts {
		if k, _, ok := strings.Cut(part, "="); ok && strings.EqualFold(k, "password") {
			parts[i] = k + "=****"
		}
	}
	return strings.Join(parts, " ")
}
