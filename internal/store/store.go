// Package store persists the dashboard snapshot (db.json).
//
// The store is the write side the action aggregator hands its updates to.
// Each update re-reads the file under an exclusive lock, merges one entity
// into it by id, and replaces the file atomically. Keys and fields the board
// model does not know about are preserved.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"

	"github.com/calvinalkan/workboard/internal/board"
)

// Errors returned by the store.
var (
	ErrSnapshotRead    = errors.New("cannot read snapshot")
	ErrSnapshotInvalid = errors.New("invalid snapshot")
	ErrLockTimeout     = errors.New("lock timeout")
	ErrEntityIDEmpty   = errors.New("entity id is required")
)

// Document keys of the collections the store can update.
const (
	keyTeams       = "teams"
	keyMeetings    = "meetings"
	keyGroups      = "workingGroups"
	keyLastUpdated = "lastUpdated"
)

// Store is a file-backed snapshot. It is not safe for concurrent use by
// multiple goroutines; separate processes are serialized by the file lock.
type Store struct {
	path        string
	log         *zap.Logger
	now         func() time.Time
	lockTimeout time.Duration
	snap        board.Snapshot
}

// Option configures a [Store].
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock sets the clock used to stamp lastUpdated.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLockTimeout sets how long writes wait for the file lock.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) { s.lockTimeout = d }
}

// Open loads the snapshot at path. A missing file is an empty snapshot;
// the file is created on the first update.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:        path,
		log:         zap.NewNop(),
		now:         time.Now,
		lockTimeout: DefaultLockTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	_, err := s.reload()
	if err != nil {
		return nil, err
	}

	s.log.Debug("snapshot loaded",
		zap.String("path", path),
		zap.Int("teams", len(s.snap.Teams)),
		zap.Int("meetings", len(s.snap.Meetings)),
		zap.Int("working_groups", len(s.snap.WorkingGroups)),
	)

	return s, nil
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns the last loaded or written snapshot. Callers must treat
// it as read-only.
func (s *Store) Snapshot() *board.Snapshot {
	return &s.snap
}

// UpdateTeam merges team into the snapshot, replacing the team with the same
// id or appending it.
func (s *Store) UpdateTeam(team board.Team) error {
	return s.upsert(keyTeams, team.ID, team)
}

// UpdateMeeting merges meeting into the snapshot.
func (s *Store) UpdateMeeting(meeting board.Meeting) error {
	return s.upsert(keyMeetings, meeting.ID, meeting)
}

// UpdateGroup merges group into the snapshot.
func (s *Store) UpdateGroup(group board.WorkingGroup) error {
	return s.upsert(keyGroups, group.ID, group)
}

func (s *Store) upsert(key, id string, entity any) error {
	if id == "" {
		return fmt.Errorf("%s: %w", key, ErrEntityIDEmpty)
	}

	next, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", key, id, err)
	}

	return withLock(s.path, s.lockTimeout, func() error {
		doc, err := s.reload()
		if err != nil {
			return err
		}

		list, err := decodeList(doc[key])
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrSnapshotInvalid, key, err)
		}

		replaced := false

		for i, raw := range list {
			rawEntityID, idErr := rawID(raw)
			if idErr != nil {
				s.log.Debug("skipping element without object id",
					zap.String("collection", key),
					zap.Int("index", i),
					zap.Error(idErr),
				)

				continue
			}

			if rawEntityID != id {
				continue
			}

			merged, mergeErr := mergeEntity(raw, next)
			if mergeErr != nil {
				return fmt.Errorf("merge %s %s: %w", key, id, mergeErr)
			}

			list[i] = merged
			replaced = true

			break
		}

		if !replaced {
			list = append(list, next)
		}

		encodedList, err := json.Marshal(list)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}

		doc[key] = encodedList
		doc[keyLastUpdated] = json.RawMessage(strconv.FormatInt(s.now().UnixMilli(), 10))

		err = s.write(doc)
		if err != nil {
			return err
		}

		s.log.Info("entity saved",
			zap.String("collection", key),
			zap.String("id", id),
			zap.Bool("replaced", replaced),
		)

		return nil
	})
}

// reload reads the file, refreshes s.snap and returns the raw document.
func (s *Store) reload() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s: %w", ErrSnapshotRead, s.path, err)
		}

		s.snap = board.Snapshot{}

		return map[string]json.RawMessage{}, nil
	}

	return s.decode(data)
}

func (s *Store) decode(data []byte) (map[string]json.RawMessage, error) {
	doc := map[string]json.RawMessage{}

	if len(bytes.TrimSpace(data)) == 0 {
		s.snap = board.Snapshot{}

		return doc, nil
	}

	err := json.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSnapshotInvalid, s.path, err)
	}

	var snap board.Snapshot

	err = json.Unmarshal(data, &snap)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSnapshotInvalid, s.path, err)
	}

	s.snap = snap

	return doc, nil
}

func (s *Store) write(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	data = append(data, '\n')

	err = atomic.WriteFile(s.path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	_, err = s.decode(data)

	return err
}

func decodeList(raw json.RawMessage) ([]json.RawMessage, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var list []json.RawMessage

	err := json.Unmarshal(raw, &list)
	if err != nil {
		return nil, err
	}

	return list, nil
}

// rawID returns the "id" of a stored element. Elements that are not objects,
// or whose id is not a string, are an error.
func rawID(raw json.RawMessage) (string, error) {
	var head struct {
		ID string `json:"id"`
	}

	err := json.Unmarshal(raw, &head)
	if err != nil {
		return "", err
	}

	return head.ID, nil
}
