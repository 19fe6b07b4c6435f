package tokenstore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/ihoflaz/opca-admin-dashboard/internal/crypto"
)

// FileStore persists credentials as a JSON document on disk, the local
// analog of the dashboard's browser storage. An empty path disables the
// store entirely: every operation becomes a no-op and reads report absent,
// mirroring the original's behavior when no persistent storage exists.
type FileStore struct {
	path   string
	cipher crypto.Service

	mu sync.Mutex
}

// NewFileStore creates a store writing to path. cipher may be nil, in
// which case values are stored in plaintext.
func NewFileStore(path string, cipher crypto.Service) *FileStore {
	if cipher == nil {
		cipher = crypto.NoopService{}
	}
	return &FileStore{path: path, cipher: cipher}
}

func (s *FileStore) Save(kind Kind, value string) {
	if s.path == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	sealed, err := s.cipher.Encrypt(value)
	if err != nil {
		slog.Warn("Failed to encrypt credential, not saving", "kind", string(kind), "error", err)
		return
	}
	doc[kind] = sealed
	s.write(doc)
}

func (s *FileStore) Get(kind Kind) (string, bool) {
	if s.path == "" {
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	sealed, ok := doc[kind]
	if !ok || sealed == "" {
		return "", false
	}
	value, err := s.cipher.Decrypt(sealed)
	if err != nil {
		slog.Warn("Failed to decrypt stored credential", "kind", string(kind), "error", err)
		return "", false
	}
	if value == "" {
		return "", false
	}
	return value, true
}

// Clear removes the whole credentials file, so all three slots vanish in
// one step with no partial state left behind.
func (s *FileStore) Clear() {
	if s.path == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to remove credentials file", "path", s.path, "error", err)
	}
}

func (s *FileStore) read() map[Kind]string {
	doc := make(map[Kind]string)
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return doc
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		slog.Warn("Credentials file is corrupt, treating as empty", "path", s.path)
		return make(map[Kind]string)
	}
	return doc
}

func (s *FileStore) write(doc map[Kind]string) {
	raw, err := json.Marshal(doc)
	if err != nil {
		slog.Warn("Failed to encode credentials", "error", err)
		return
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		slog.Warn("Failed to create credentials directory", "dir", dir, "error", err)
		return
	}

	// Write-then-rename keeps readers from ever seeing a half-written file.
	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		slog.Warn("Failed to create temp credentials file", "error", err)
		return
	}
	name := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		slog.Warn("Failed to write credentials", "error", err)
		return
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return
	}
	if err := os.Chmod(name, 0o600); err != nil {
		_ = os.Remove(name)
		return
	}
	if err := os.Rename(name, s.path); err != nil {
		_ = os.Remove(name)
		slog.Warn("Failed to replace credentials file", "error", err)
	}
}
