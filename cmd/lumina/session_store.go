// Copyright (C) 2024 Lumina Payments Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"code.luminapay.io/lumina/auth"
)

// fileSessionStore persists the JWT session as a JSON file so consecutive
// CLI invocations share one login.
type fileSessionStore struct {
	path string
}

func newFileSessionStore(path string) *fileSessionStore {
	return &fileSessionStore{path: path}
}

func (s *fileSessionStore) GetSession() (auth.Session, error) {
	buf, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return auth.Session{}, auth.ErrNoSessionStored
		}
		return auth.Session{}, fmt.Errorf("couldn't read the session file: %w", err)
	}
	session := auth.Session{}
	if err := json.Unmarshal(buf, &session); err != nil {
		return auth.Session{}, fmt.Errorf("couldn't parse the session file: %w", err)
	}
	return session, nil
}

func (s *fileSessionStore) SaveSession(session auth.Session) error {
	buf, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("couldn't serialize the session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("couldn't create the session directory: %w", err)
	}
	if err := os.WriteFile(s.path, buf, 0o600); err != nil {
		return fmt.Errorf("couldn't write the session file: %w", err)
	}
	return nil
}

func (s *fileSessionStore) ClearSession() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("couldn't remove the session file: %w", err)
	}
	return nil
}
