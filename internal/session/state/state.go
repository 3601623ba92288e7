// Package state is the durable local storage behind the session store.
// It keeps exactly two string-valued entries under the state directory:
// the serialized identity document and the bearer token. Both are written
// and removed together; rehydration needs both to be present and readable.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"workforce/internal/platform/crypto"
)

const (
	identityFile = "current_user.json"
	tokenFile    = "auth_token"
)

var ErrIncomplete = errors.New("session state incomplete")

type File struct {
	dir    string
	crypto *crypto.Service
}

// New returns a state file rooted at dir. The crypto service may be nil or
// unconfigured, in which case entries are stored as plaintext.
func New(dir string, svc *crypto.Service) *File {
	return &File{dir: dir, crypto: svc}
}

// Write persists both entries. The identity document lands first so a crash
// between the two writes leaves a state Read reports as incomplete rather
// than a token with no identity.
func (f *File) Write(identity []byte, token string) error {
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := f.writeEntry(identityFile, identity); err != nil {
		return err
	}
	return f.writeEntry(tokenFile, []byte(token))
}

// Read returns the stored identity document and token. Missing, partial or
// undecryptable state is an error; callers treat any error as "no session".
func (f *File) Read() ([]byte, string, error) {
	identity, err := f.readEntry(identityFile)
	if err != nil {
		return nil, "", err
	}
	token, err := f.readEntry(tokenFile)
	if err != nil {
		return nil, "", err
	}
	if len(identity) == 0 || len(token) == 0 {
		return nil, "", ErrIncomplete
	}
	return identity, string(token), nil
}

// Wipe removes both entries. Already-absent entries are not an error.
func (f *File) Wipe() error {
	var errs []error
	for _, name := range []string{identityFile, tokenFile} {
		if err := os.Remove(filepath.Join(f.dir, name)); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *File) writeEntry(name string, value []byte) error {
	data := value
	if f.crypto != nil && f.crypto.Configured() {
		encrypted, err := f.crypto.Encrypt(value)
		if err != nil {
			return fmt.Errorf("encrypt %s: %w", name, err)
		}
		data = encrypted
	}
	path := filepath.Join(f.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return os.Rename(tmp, path)
}

func (f *File) readEntry(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrIncomplete
		}
		return nil, err
	}
	if f.crypto != nil && f.crypto.Configured() {
		plain, err := f.crypto.Decrypt(data)
		if err != nil {
			return nil, fmt.Errorf("decrypt %s: %w", name, err)
		}
		return plain, nil
	}
	return data, nil
}
