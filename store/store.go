// Package store persists the small amount of local state the app keeps:
// the session token pair, caches for immutable theater layouts, and the
// user's recently browsed movies. Reserved-seat sets are deliberately never
// cached; they are fetched fresh on every reservation view entry.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cinebook-cli/auth"
	"cinebook-cli/model"
)

const (
	appDirName     = "cinebook-cli"
	layoutCacheTTL = 24 * time.Hour
	maxRecentMovie = 8
)

type cacheEnvelope[T any] struct {
	UpdatedAt time.Time `json:"updated_at"`
	Data      T         `json:"data"`
}

// LoadSession returns the persisted session, or nil when the user has
// never logged in (or logged out).
func LoadSession() (*auth.Session, error) {
	path, err := configPath("session.json")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var session auth.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.New("invalid session format")
	}
	if !session.Authenticated() {
		return nil, nil
	}
	return &session, nil
}

func SaveSession(session *auth.Session) error {
	if !session.Authenticated() {
		return errors.New("refusing to save an empty session")
	}
	path, err := configPath("session.json")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}
	// Tokens grant booking rights; keep the file owner-only.
	return os.WriteFile(path, payload, 0o600)
}

func ClearSession() error {
	path, err := configPath("session.json")
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// LoadTheaterLayoutCache returns the cached theater record and seat list,
// plus whether the cache is still fresh.
func LoadTheaterLayoutCache(theaterID int) (model.Theater, []model.Seat, bool, error) {
	path, err := cachePath(fmt.Sprintf("theater_%d.json", theaterID))
	if err != nil {
		return model.Theater{}, nil, false, err
	}
	cache, err := loadCache[theaterLayout](path)
	if err != nil {
		return model.Theater{}, nil, false, err
	}
	fresh := !cache.UpdatedAt.IsZero() && time.Since(cache.UpdatedAt) <= layoutCacheTTL
	return cache.Data.Theater, cache.Data.Seats, fresh, nil
}

func SaveTheaterLayoutCache(theater model.Theater, seats []model.Seat) error {
	path, err := cachePath(fmt.Sprintf("theater_%d.json", theater.Id))
	if err != nil {
		return err
	}
	return saveCache(path, theaterLayout{Theater: theater, Seats: seats})
}

type theaterLayout struct {
	Theater model.Theater `json:"theater"`
	Seats   []model.Seat  `json:"seats"`
}

type RecentMovie struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type movieHistory struct {
	Movies []RecentMovie `json:"movies"`
}

func LoadRecentMovies() ([]RecentMovie, error) {
	path, err := configPath("history.json")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var history movieHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, errors.New("invalid movie history format")
	}
	return history.Movies, nil
}

func RememberMovie(movie model.Movie) error {
	history, _ := LoadRecentMovies()
	next := []RecentMovie{{ID: movie.Id, Title: movie.Title}}

	for _, existing := range history {
		if existing.ID == movie.Id {
			continue
		}
		next = append(next, existing)
		if len(next) >= maxRecentMovie {
			break
		}
	}

	path, err := configPath("history.json")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(movieHistory{Movies: next}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

// OpenLogFile opens the append-only log used for silent degradations the
// TUI must not paint over the screen.
func OpenLogFile() (*os.File, error) {
	path, err := cachePath("cinebook.log")
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

func loadCache[T any](path string) (cacheEnvelope[T], error) {
	var cache cacheEnvelope[T]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cache, nil
		}
		return cache, err
	}
	if err := json.Unmarshal(data, &cache); err != nil {
		return cache, err
	}
	return cache, nil
}

func saveCache[T any](path string, data T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	cache := cacheEnvelope[T]{
		UpdatedAt: time.Now(),
		Data:      data,
	}
	payload, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, name), nil
}

func cachePath(name string) (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, name), nil
}
