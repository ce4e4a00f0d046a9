package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger"
	"github.com/raushankrgupta/glow-studio/models"
	"github.com/rs/zerolog"
)

// Key names of the per-owner entries. The owner id is appended after a colon.
const (
	keyFavorites      = "glow_v8_favs"
	keyCustomProducts = "glow_v8_custom_products"
	keySavedLooks     = "glow_v8_saved_looks"
	keyTutorialSeen   = "glow_v8_tutorial_seen"
)

// LocalStore keeps each owner's collections on local disk so a studio can be rebuilt
// without the remote store
type LocalStore struct {
	db  *badger.DB
	log zerolog.Logger
}

// OpenLocalStore opens (or creates) the badger database in dir
func OpenLocalStore(dir string, log zerolog.Logger) (*LocalStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	return &LocalStore{db: db, log: log}, nil
}

func (s *LocalStore) Close() error {
	return s.db.Close()
}

// LoadCollections returns owner's stored collections. Missing or unreadable entries load as empty.
func (s *LocalStore) LoadCollections(owner string) models.Collections {
	var u models.User
	s.load(owner, keyFavorites, &u.Favorites)
	s.load(owner, keyCustomProducts, &u.CustomProducts)
	s.load(owner, keySavedLooks, &u.SavedLooks)
	return u.Collections()
}

// SaveCollections writes all three collections in one transaction
func (s *LocalStore) SaveCollections(owner string, c models.Collections) error {
	entries := map[string]any{
		keyFavorites:      c.Favorites,
		keyCustomProducts: c.CustomProducts,
		keySavedLooks:     c.SavedLooks,
	}
	return s.db.Update(func(txn *badger.Txn) error {
		for name, v := range entries {
			raw, err := json.Marshal(v)
			if err != nil {
				return err
			}
			if err := txn.Set(ownerKey(owner, name), raw); err != nil {
				return err
			}
		}
		return nil
	})
}

// TutorialSeen reports whether owner dismissed the tutorial
func (s *LocalStore) TutorialSeen(owner string) bool {
	var seen bool
	s.load(owner, keyTutorialSeen, &seen)
	return seen
}

// MarkTutorialSeen records that owner dismissed the tutorial
func (s *LocalStore) MarkTutorialSeen(owner string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(ownerKey(owner, keyTutorialSeen), []byte("true"))
	})
}

func (s *LocalStore) load(owner, name string, out any) {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(ownerKey(owner, name))
		if err != nil {
			return err
		}
		raw, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, out)
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		s.log.Warn().Err(err).Str("owner", owner).Str("key", name).Msg("failed to read local entry")
	}
}

func ownerKey(owner, name string) []byte {
	return []byte(name + ":" + owner)
}
