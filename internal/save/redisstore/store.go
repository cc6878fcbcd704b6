// Package redisstore stores save slots in Redis. Each slot is a string key;
// its backups are a capped list holding the newest copy first.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/osse101/ChronoFarm_Go/internal/save"
)

// DefaultPrefix namespaces every key the store writes
const DefaultPrefix = "chronofarm:save:"

// maxWriteRetries bounds optimistic retries when another writer races us
const maxWriteRetries = 3

type backupEntry struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	Data      json.RawMessage `json:"data"`
}

// Store is a Redis save.Backend
type Store struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

var _ save.Backend = (*Store)(nil)

// New creates a store on an existing client
func New(client redis.UniversalClient, prefix string, now func() time.Time) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if now == nil {
		now = time.Now
	}
	return &Store{client: client, prefix: prefix, now: now}
}

// Name implements save.Backend
func (s *Store) Name() string { return "redis" }

func (s *Store) slotKey(slot string) string    { return s.prefix + slot }
func (s *Store) backupsKey(slot string) string { return s.prefix + slot + ":backups" }

// Read implements save.Backend
func (s *Store) Read(ctx context.Context, slot string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.slotKey(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", save.ErrNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read save slot: %w", err)
	}
	return data, nil
}

// Write implements save.Backend. The slot key is watched so a concurrent
// writer cannot slip between reading the old value and rolling it over.
func (s *Store) Write(ctx context.Context, slot string, data []byte, keep int) error {
	if err := save.ValidateSlot(slot); err != nil {
		return err
	}
	if !json.Valid(data) {
		return fmt.Errorf("%w: refusing to store invalid JSON", save.ErrCorrupt)
	}
	key, backups := s.slotKey(slot), s.backupsKey(slot)

	txf := func(tx *redis.Tx) error {
		prev, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if keep > 0 && prev != nil {
				entry, err := json.Marshal(backupEntry{ID: uuid.NewString(), CreatedAt: s.now().UTC(), Data: prev})
				if err != nil {
					return err
				}
				pipe.LPush(ctx, backups, entry)
				pipe.LTrim(ctx, backups, 0, int64(keep-1))
			}
			if keep <= 0 {
				pipe.Del(ctx, backups)
			}
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}

	for range maxWriteRetries {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to write save slot: %w", err)
		}
		return nil
	}
	return fmt.Errorf("failed to write save slot: %w", redis.TxFailedErr)
}

// Backups implements save.Backend
func (s *Store) Backups(ctx context.Context, slot string) ([]save.Backup, error) {
	entries, err := s.entries(ctx, slot)
	if err != nil {
		return nil, err
	}
	out := make([]save.Backup, 0, len(entries))
	for _, e := range entries {
		out = append(out, save.Backup{ID: e.ID, CreatedAt: e.CreatedAt})
	}
	return out, nil
}

// ReadBackup implements save.Backend
func (s *Store) ReadBackup(ctx context.Context, slot, id string) ([]byte, error) {
	entries, err := s.entries(ctx, slot)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e.Data, nil
		}
	}
	return nil, fmt.Errorf("%w: backup %s", save.ErrNotFound, id)
}

// Delete implements save.Backend
func (s *Store) Delete(ctx context.Context, slot string) error {
	if err := s.client.Del(ctx, s.slotKey(slot), s.backupsKey(slot)).Err(); err != nil {
		return fmt.Errorf("failed to delete save slot: %w", err)
	}
	return nil
}

func (s *Store) entries(ctx context.Context, slot string) ([]backupEntry, error) {
	raw, err := s.client.LRange(ctx, s.backupsKey(slot), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list save backups: %w", err)
	}
	out := make([]backupEntry, 0, len(raw))
	for _, r := range raw {
		var e backupEntry
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			// one damaged entry must not hide the others
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
