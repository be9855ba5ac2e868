package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/su-perfume/storefront/internal/core/domain"
	"github.com/su-perfume/storefront/internal/core/port"
)

var _ port.StateStore = (*Store)(nil)

// Durable storage keys. The favorites and cart collections live next to
// the session identity fields but have independent lifecycles: logout
// clears the identity keys only.
const (
	keyFavorites   = "favorites"
	keyCart        = "cart"
	keyUser        = "user"
	keyAccessToken = "accessToken"
	keyRole        = "role"
)

type (
	favoriteRecord struct {
		ID          string  `json:"_id"`
		Name        string  `json:"name"`
		Brand       string  `json:"brand"`
		Cost        float64 `json:"cost"`
		Description string  `json:"description"`
		ImgURL      string  `json:"imgURL"`
	}

	cartRecord struct {
		favoriteRecord
		Quantity int `json:"quantity"`
	}

	userRecord struct {
		ID    string `json:"_id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
)

// Store is the durable client state store, a LevelDB database under a
// local path. Loads degrade to empty defaults and saves are best-effort;
// storage failures are logged, never propagated.
type Store struct {
	db *leveldb.DB
}

func Open(path string) (*Store, error) {
	const op = "localstore.Open"

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open state db: %w", op, err)
	}
	return &Store{db}, nil
}

func (s *Store) Close() {
	const op = "localstore.Close"
	log := slog.With("op", op)

	if err := s.db.Close(); err != nil {
		log.Error("failed to close state db", "err", err)
		return
	}
	log.Info("state db is closed")
}

func (s *Store) LoadFavorites() []domain.FavoriteEntry {
	var rs []favoriteRecord
	s.loadJSON(keyFavorites, &rs)

	out := make([]domain.FavoriteEntry, 0, len(rs))
	for _, r := range rs {
		out = append(out, domain.FavoriteEntry{Product: r.toDomain()})
	}
	return out
}

func (s *Store) SaveFavorites(fs []domain.FavoriteEntry) {
	rs := make([]favoriteRecord, 0, len(fs))
	for _, f := range fs {
		rs = append(rs, toFavoriteRecord(f.Product))
	}
	s.saveJSON(keyFavorites, rs)
}

func (s *Store) LoadCart() []domain.CartLine {
	var rs []cartRecord
	s.loadJSON(keyCart, &rs)

	out := make([]domain.CartLine, 0, len(rs))
	for _, r := range rs {
		out = append(out, domain.CartLine{Product: r.toDomain(), Quantity: r.Quantity})
	}
	return out
}

func (s *Store) SaveCart(ls []domain.CartLine) {
	rs := make([]cartRecord, 0, len(ls))
	for _, l := range ls {
		rs = append(rs, cartRecord{favoriteRecord: toFavoriteRecord(l.Product), Quantity: l.Quantity})
	}
	s.saveJSON(keyCart, rs)
}

func (s *Store) LoadSession() domain.Session {
	sess := domain.Session{
		Token: s.loadString(keyAccessToken),
		Role:  s.loadString(keyRole),
	}

	var u userRecord
	if s.loadJSON(keyUser, &u) {
		sess.User = domain.User{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
	}
	return sess
}

func (s *Store) SaveSession(sess domain.Session) {
	u := sess.User
	s.saveJSON(keyUser, userRecord{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
	s.saveString(keyAccessToken, sess.Token)
	s.saveString(keyRole, sess.Role)
}

// ClearSession removes the identity keys. Favorites and cart are kept on
// purpose: they persist across sessions.
func (s *Store) ClearSession() {
	const op = "Store.ClearSession"
	log := slog.With("op", op)

	for _, key := range []string{keyUser, keyAccessToken, keyRole} {
		if err := s.db.Delete([]byte(key), nil); err != nil {
			log.Error("failed to delete key", "key", key, "err", err)
		}
	}
}

// loadJSON reports whether v was populated. A missing key or unparsable
// value leaves v untouched; parse failures are logged and swallowed so
// the caller falls back to an empty default.
func (s *Store) loadJSON(key string, v any) bool {
	const op = "Store.loadJSON"
	log := slog.With("op", op, "key", key)

	b, err := s.db.Get([]byte(key), nil)
	if err != nil {
		if !errors.Is(err, leveldb.ErrNotFound) {
			log.Error("failed to read key", "err", err)
		}
		return false
	}

	if err := json.Unmarshal(b, v); err != nil {
		log.Warn("stored value is not parsable, using empty default", "err", err)
		return false
	}
	return true
}

func (s *Store) saveJSON(key string, v any) {
	const op = "Store.saveJSON"
	log := slog.With("op", op, "key", key)

	b, err := json.Marshal(v)
	if err != nil {
		log.Error("failed to encode value", "err", err)
		return
	}
	if err := s.db.Put([]byte(key), b, nil); err != nil {
		log.Error("failed to write key", "err", err)
	}
}

func (s *Store) loadString(key string) string {
	b, err := s.db.Get([]byte(key), nil)
	if err != nil {
		return ""
	}
	return string(b)
}

func (s *Store) saveString(key, value string) {
	const op = "Store.saveString"

	if err := s.db.Put([]byte(key), []byte(value), nil); err != nil {
		slog.Error("failed to write key", "op", op, "key", key, "err", err)
	}
}

func (r favoriteRecord) toDomain() domain.Product {
	return domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Brand:       r.Brand,
		Cost:        r.Cost,
		Description: r.Description,
		ImageURL:    r.ImgURL,
	}
}

func toFavoriteRecord(p domain.Product) favoriteRecord {
	return favoriteRecord{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Cost:        p.Cost,
		Description: p.Description,
		ImgURL:      p.ImageURL,
	}
}
