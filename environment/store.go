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

package environment

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const environmentFileExt = ".toml"

// FileStore keeps one TOML file per environment under a directory. The
// built-in environments are always available, even with an empty directory;
// a file with a built-in's name overrides it.
type FileStore struct {
	dir      string
	builtins map[string]*Environment
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("couldn't create the environments directory %s: %w", dir, err)
	}
	return &FileStore{
		dir: dir,
		builtins: map[string]*Environment{
			"mainnet": Mainnet(),
			"testnet": Testnet(),
		},
	}, nil
}

func (s *FileStore) EnvironmentExists(name string) (bool, error) {
	if _, ok := s.builtins[name]; ok {
		return true, nil
	}
	if _, err := os.Stat(s.pathFor(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("couldn't stat the environment file: %w", err)
	}
	return true, nil
}

func (s *FileStore) GetEnvironment(name string) (*Environment, error) {
	env := &Environment{}
	if _, err := toml.DecodeFile(s.pathFor(name), env); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if builtin, ok := s.builtins[name]; ok {
				copied := *builtin
				return &copied, nil
			}
			return nil, NewDoesNotExistError(name)
		}
		return nil, fmt.Errorf("couldn't read the environment file: %w", err)
	}
	if env.Name == "" {
		env.Name = name
	}
	return env, nil
}

func (s *FileStore) SaveEnvironment(env *Environment) error {
	f, err := os.OpenFile(s.pathFor(env.Name), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("couldn't create the environment file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(env); err != nil {
		return fmt.Errorf("couldn't write the environment file: %w", err)
	}
	return nil
}

func (s *FileStore) ListEnvironments() ([]string, error) {
	seen := map[string]struct{}{}
	for name := range s.builtins {
		seen[name] = struct{}{}
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("couldn't read the environments directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), environmentFileExt) {
			continue
		}
		seen[strings.TrimSuffix(entry.Name(), environmentFileExt)] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *FileStore) pathFor(name string) string {
	return filepath.Join(s.dir, name+environmentFileExt)
}
