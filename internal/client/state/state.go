// Package state persists the client's durable state (the bearer credential
// and the view-mode preference) to a JSON file so a session survives a
// process restart.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// persisted is the on-disk shape of the state file. The field names match
// the storage keys used by the web client so both frontends stay
// interchangeable against the same backend.
type persisted struct {
	// AccessToken is the bearer credential issued at login.
	AccessToken string `json:"access_token"`
	// ViewMode is the saved admin/employee view preference.
	ViewMode string `json:"viewMode"`
}

// File is a mutex-guarded, file-backed store for the client's durable state.
// A missing file is treated as empty state, not an error.
type File struct {
	path string

	mu   sync.Mutex
	data persisted
}

// Open loads the state file at path. If the file does not exist yet, Open
// returns an empty store; parent directories are created on first save.
func Open(path string) (*File, error) {
	f := &File{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &f.data); err != nil {
		return nil, err
	}
	return f, nil
}

// Token returns the persisted bearer credential, or "" when logged out.
// It implements the api.TokenSource interface.
func (f *File) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data.AccessToken
}

// SetToken persists a new bearer credential.
func (f *File) SetToken(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data.AccessToken = token
	return f.save()
}

// ClearToken removes the persisted bearer credential.
func (f *File) ClearToken() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data.AccessToken = ""
	return f.save()
}

// ViewMode returns the saved view-mode preference, or "" when unset.
func (f *File) ViewMode() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data.ViewMode
}

// SetViewMode persists the view-mode preference.
func (f *File) SetViewMode(mode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data.ViewMode = mode
	return f.save()
}

// save writes the current state to disk. Callers must hold f.mu.
func (f *File) save() error {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	out, err := os.Create(f.path)
	if err != nil {
		return err
	}
	defer out.Close()
	return json.NewEncoder(out).Encode(&f.data)
}
