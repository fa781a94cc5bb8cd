package prefs

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/singleflight"
)

// Valid themes. Unknown stored values fall back to the default.
const (
	ThemeDark = "dark"
	ThemeWarm = "warm"

	DefaultTheme = ThemeDark
)

var (
	ErrNotFound     = errors.New("preference not found")
	ErrUnknownTheme = errors.New("unknown theme")
)

// Store persists per-session theme preferences.
type Store interface {
	Get(ctx context.Context, sessionID string) (string, error)
	Set(ctx context.Context, sessionID, theme string) error
}

// Service wraps the store with validation and a singleflight group so
// concurrent reads for the same session hit the backend once.
type Service struct {
	store Store
	sfg   singleflight.Group
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Theme returns the session's stored theme, or the default when nothing
// valid is stored. Store errors degrade to the default rather than failing
// the request.
func (s *Service) Theme(ctx context.Context, sessionID string) string {
	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		theme, errGet := s.store.Get(ctx, sessionID)
		if errGet != nil {
			if !errors.Is(errGet, ErrNotFound) {
				log.Printf("prefs get error: %v", errGet)
			}
			return DefaultTheme, nil
		}
		if !validTheme(theme) {
			return DefaultTheme, nil
		}
		return theme, nil
	})
	if err != nil {
		return DefaultTheme
	}
	return v.(string)
}

// SetTheme stores the session's theme preference.
func (s *Service) SetTheme(ctx context.Context, sessionID, theme string) error {
	if !validTheme(theme) {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
	}
	if err := s.store.Set(ctx, sessionID, theme); err != nil {
		return fmt.Errorf("failed to store theme: %w", err)
	}
	return nil
}

func validTheme(theme string) bool {
	return theme == ThemeDark || theme == ThemeWarm
}
