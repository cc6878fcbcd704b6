package save

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/ChronoFarm_Go/internal/clock"
	"github.com/osse101/ChronoFarm_Go/internal/domain"
	"github.com/osse101/ChronoFarm_Go/internal/logger"
)

// Options configures a save Service
type Options struct {
	Slot      string
	Backups   int
	CacheSize int
	CacheTTL  time.Duration
	Clock     clock.Clock
	// Defaults builds the state used for missing fields and as the last fallback
	Defaults func() domain.GameState
}

// Result is a loaded game and where it came from
type Result struct {
	File     File
	Source   string
	BackupID string
	// FromVersion is the on-disk version before migration
	FromVersion int
}

// Service saves and loads the game through a Backend. Loading never fails
// on bad data: it falls back from the primary slot to the newest readable
// backup and finally to a new game.
type Service struct {
	backend Backend
	opts    Options
	cache   *expirable.LRU[string, File]
}

// NewService creates a save service
func NewService(b Backend, opts Options) (*Service, error) {
	if opts.Slot == "" {
		opts.Slot = DefaultSlot
	}
	if err := ValidateSlot(opts.Slot); err != nil {
		return nil, err
	}
	if opts.Backups < 0 {
		opts.Backups = 0
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewRealClock()
	}
	if opts.Defaults == nil {
		return nil, errors.New("save: Defaults is required")
	}
	return &Service{
		backend: b,
		opts:    opts,
		cache:   expirable.NewLRU[string, File](opts.CacheSize, nil, opts.CacheTTL),
	}, nil
}

// Backend returns the storage backend name
func (s *Service) Backend() string {
	return s.backend.Name()
}

// Slot returns the slot this service writes
func (s *Service) Slot() string {
	return s.opts.Slot
}

// Save writes a snapshot of st to the slot, rolling the previous save into
// the backups
func (s *Service) Save(ctx context.Context, st domain.GameState) (File, error) {
	f := NewFile(st, s.opts.Clock.Now())
	data, err := Encode(f)
	if err != nil {
		return File{}, err
	}
	if err := s.backend.Write(ctx, s.opts.Slot, data, s.opts.Backups); err != nil {
		return File{}, fmt.Errorf("failed to write save to %s: %w", s.backend.Name(), err)
	}
	cached := f
	cached.Time.Traveling = false
	s.cache.Add(s.key(""), cached)

	logger.FromContext(ctx).Info(LogMsgSaved, "slot", s.opts.Slot, "backend", s.backend.Name(), "id", f.ID)
	return f, nil
}

// Load reads the slot, falling back to backups and then to a new game. The
// only error it returns is the context's.
func (s *Service) Load(ctx context.Context) (Result, error) {
	log := logger.FromContext(ctx)

	f, from, err := s.read(ctx, "")
	if err == nil {
		log.Info(LogMsgLoaded, "slot", s.opts.Slot, "source", SourcePrimary, "fromVersion", from)
		return Result{File: f, Source: SourcePrimary, FromVersion: from}, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{}, ctxErr
	}
	if !errors.Is(err, ErrNotFound) {
		log.Warn(LogMsgPrimaryUnreadable, "slot", s.opts.Slot, "error", err)

		backups, listErr := s.backend.Backups(ctx, s.opts.Slot)
		if listErr != nil {
			log.Warn(LogMsgBackupUnreadable, "slot", s.opts.Slot, "error", listErr)
		}
		for _, b := range backups {
			f, from, err := s.read(ctx, b.ID)
			if err != nil {
				log.Warn(LogMsgBackupUnreadable, "slot", s.opts.Slot, "backup", b.ID, "error", err)
				continue
			}
			log.Info(LogMsgLoaded, "slot", s.opts.Slot, "source", SourceBackup, "backup", b.ID)
			return Result{File: f, Source: SourceBackup, BackupID: b.ID, FromVersion: from}, nil
		}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{}, ctxErr
	}

	log.Info(LogMsgFallbackDefault, "slot", s.opts.Slot)
	def := s.opts.Defaults()
	return Result{File: NewFile(def, s.opts.Clock.Now()), Source: SourceDefault, FromVersion: domain.SaveVersion}, nil
}

// Backups lists the slot's backups, newest first
func (s *Service) Backups(ctx context.Context) ([]Backup, error) {
	return s.backend.Backups(ctx, s.opts.Slot)
}

// Delete removes the slot and its backups
func (s *Service) Delete(ctx context.Context) error {
	s.cache.Purge()
	return s.backend.Delete(ctx, s.opts.Slot)
}

// read loads the primary when backupID is empty, otherwise one backup
func (s *Service) read(ctx context.Context, backupID string) (File, int, error) {
	key := s.key(backupID)
	if f, ok := s.cache.Get(key); ok {
		return f, f.Version, nil
	}

	var (
		data []byte
		err  error
	)
	if backupID == "" {
		data, err = s.backend.Read(ctx, s.opts.Slot)
	} else {
		data, err = s.backend.ReadBackup(ctx, s.opts.Slot, backupID)
	}
	if err != nil {
		return File{}, 0, err
	}

	f, from, err := Decode(data, s.opts.Defaults())
	if err != nil {
		return File{}, from, err
	}
	if from != domain.SaveVersion {
		logger.FromContext(ctx).Info(LogMsgMigrated, "slot", s.opts.Slot, "from", from, "to", domain.SaveVersion)
	}
	s.cache.Add(key, f)
	return f, from, nil
}

func (s *Service) key(backupID string) string {
	if backupID == "" {
		return s.opts.Slot
	}
	return s.opts.Slot + "@" + backupID
}
