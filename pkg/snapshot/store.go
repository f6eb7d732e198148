package snapshot

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/devicelab-dev/flowshot/pkg/logger"
)

// Artifact filename suffixes.
const (
	refSuffix  = ".png"
	failSuffix = ".fail.png"
	diffSuffix = ".diff.png"
)

// Store is the filesystem layout of one snapshot directory: for snapshot
// name N it owns N.png (reference), N.fail.png (last mismatching render)
// and N.diff.png (visual diff). All writes are best-effort; failures are
// logged and never abort a run.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created
// lazily, before the first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// SanitizeName replaces path separators in a snapshot name with
// underscores so every snapshot maps to a single flat file, regardless of
// hierarchical names produced by matrix runs.
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	return strings.ReplaceAll(name, string(os.PathSeparator), "_")
}

// ReferencePath returns the reference file path for a sanitized name.
func (s *Store) ReferencePath(name string) string {
	return filepath.Join(s.dir, name+refSuffix)
}

// FailPath returns the failing-render file path for a sanitized name.
func (s *Store) FailPath(name string) string {
	return filepath.Join(s.dir, name+failSuffix)
}

// DiffPath returns the diff file path for a sanitized name.
func (s *Store) DiffPath(name string) string {
	return filepath.Join(s.dir, name+diffSuffix)
}

// EnsureDir creates the store directory (including parents), idempotently.
func (s *Store) EnsureDir() error {
	return os.MkdirAll(s.dir, 0o755)
}

// Write stores data at path.
func (s *Store) Write(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// Read loads the file at path.
func (s *Store) Read(path string) ([]byte, error) {
	return os.ReadFile(path) //#nosec G304 -- store-derived path
}

// Remove deletes the given files, ignoring missing ones and logging any
// other failure. Used to drop stale fail/diff artifacts once a snapshot
// passes again.
func (s *Store) Remove(paths ...string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logger.Logger().Warn().Err(err).Str("path", p).Msg("failed to remove stale artifact")
		}
	}
}

// Names lists the snapshot names (sanitized stems) that have a reference
// file in the store, sorted.
func (s *Store) Names() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, refSuffix) {
			continue
		}
		if strings.HasSuffix(name, failSuffix) || strings.HasSuffix(name, diffSuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, refSuffix))
	}
	sort.Strings(names)
	return names, nil
}

// HasFail reports whether a failing render is stored for name.
func (s *Store) HasFail(name string) bool {
	_, err := os.Stat(s.FailPath(name))
	return err == nil
}

// Approve promotes the failing render of name to the new reference and
// removes the fail/diff artifacts.
func (s *Store) Approve(name string) error {
	data, err := s.Read(s.FailPath(name))
	if err != nil {
		return err
	}
	if err := s.Write(s.ReferencePath(name), data); err != nil {
		return err
	}
	s.Remove(s.FailPath(name), s.DiffPath(name))
	return nil
}

// Clean removes all fail and diff artifacts from the store.
func (s *Store) Clean() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(name, failSuffix) || strings.HasSuffix(name, diffSuffix) {
			s.Remove(filepath.Join(s.dir, name))
		}
	}
	return nil
}
