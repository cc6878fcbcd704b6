// Package filestore keeps save slots as JSON files in a directory, with
// rolled backups under backups/<slot>/.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/ChronoFarm_Go/internal/save"
	"github.com/osse101/ChronoFarm_Go/internal/utils"
)

const (
	backupsDir = "backups"
	extension  = ".json"
	dirPerm    = 0o755
)

// Store is a directory backed save.Backend
type Store struct {
	dir string
	now func() time.Time
}

var _ save.Backend = (*Store)(nil)

// New creates the directory if needed
func New(dir string, now func() time.Time) (*Store, error) {
	if now == nil {
		now = time.Now
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create save dir %s: %w", dir, err)
	}
	return &Store{dir: dir, now: now}, nil
}

// Name implements save.Backend
func (s *Store) Name() string { return "file" }

func (s *Store) primaryPath(slot string) string {
	return filepath.Join(s.dir, slot+extension)
}

func (s *Store) backupDir(slot string) string {
	return filepath.Join(s.dir, backupsDir, slot)
}

// Read implements save.Backend
func (s *Store) Read(ctx context.Context, slot string) ([]byte, error) {
	if err := save.ValidateSlot(slot); err != nil {
		return nil, err
	}
	return readFile(ctx, s.primaryPath(slot))
}

// Write implements save.Backend. The previous primary is copied into the
// backups before the new one atomically replaces it.
func (s *Store) Write(ctx context.Context, slot string, data []byte, keep int) error {
	if err := save.ValidateSlot(slot); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if keep > 0 {
		prev, err := os.ReadFile(s.primaryPath(slot))
		switch {
		case err == nil:
			if err := os.MkdirAll(s.backupDir(slot), dirPerm); err != nil {
				return fmt.Errorf("failed to create backup dir: %w", err)
			}
			name := backupName(s.now())
			if err := utils.WriteFileAtomic(filepath.Join(s.backupDir(slot), name+extension), prev); err != nil {
				return err
			}
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("failed to read previous save: %w", err)
		}
	}

	if err := utils.WriteFileAtomic(s.primaryPath(slot), data); err != nil {
		return err
	}
	return s.prune(slot, keep)
}

// Backups implements save.Backend
func (s *Store) Backups(_ context.Context, slot string) ([]save.Backup, error) {
	if err := save.ValidateSlot(slot); err != nil {
		return nil, err
	}
	names, err := s.backupNames(slot)
	if err != nil {
		return nil, err
	}
	out := make([]save.Backup, 0, len(names))
	for _, name := range names {
		out = append(out, save.Backup{ID: name, CreatedAt: createdAt(name)})
	}
	return out, nil
}

// ReadBackup implements save.Backend
func (s *Store) ReadBackup(ctx context.Context, slot, id string) ([]byte, error) {
	if err := save.ValidateSlot(slot); err != nil {
		return nil, err
	}
	if err := save.ValidateSlot(id); err != nil {
		return nil, fmt.Errorf("%w: backup %q", save.ErrNotFound, id)
	}
	return readFile(ctx, filepath.Join(s.backupDir(slot), id+extension))
}

// Delete implements save.Backend
func (s *Store) Delete(_ context.Context, slot string) error {
	if err := save.ValidateSlot(slot); err != nil {
		return err
	}
	if err := os.Remove(s.primaryPath(slot)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete save: %w", err)
	}
	if err := os.RemoveAll(s.backupDir(slot)); err != nil {
		return fmt.Errorf("failed to delete backups: %w", err)
	}
	return nil
}

// backupNames returns backup ids newest first
func (s *Store) backupNames(slot string) ([]string, error) {
	entries, err := os.ReadDir(s.backupDir(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), extension) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), extension))
	}
	// zero padded timestamps sort lexically
	slices.Sort(names)
	slices.Reverse(names)
	return names, nil
}

func (s *Store) prune(slot string, keep int) error {
	names, err := s.backupNames(slot)
	if err != nil {
		return err
	}
	if keep < 0 {
		keep = 0
	}
	for _, name := range names[min(keep, len(names)):] {
		if err := os.Remove(filepath.Join(s.backupDir(slot), name+extension)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to prune backup %s: %w", name, err)
		}
	}
	return nil
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", save.ErrNotFound, filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// backupName is <unix nanos, 20 digits>-<short uuid>
func backupName(t time.Time) string {
	return fmt.Sprintf("%020d-%s", t.UnixNano(), uuid.NewString()[:8])
}

func createdAt(name string) time.Time {
	prefix, _, _ := strings.Cut(name, "-")
	n, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}
