package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"

	"github.com/ade-gb/investlite-demo-platform/internal/repository"
)

// ErrNoEncryptionKey indicates that SETTINGS_ENCRYPTION_KEY is not
// configured, so secrets cannot be stored or read.
var ErrNoEncryptionKey = errors.New("settings encryption key not configured")

// ErrAssistantKeyNotSet indicates that no assistant gateway API key has
// been stored yet.
var ErrAssistantKeyNotSet = errors.New("assistant API key not configured")

// SettingsService stores platform secrets fernet-encrypted at rest.
// Currently the only secret is the chat-assistant gateway API key.
type SettingsService struct {
	settingsRepo *repository.SettingsRepository
	key          *fernet.Key
}

// NewSettingsService creates a new SettingsService. encodedKey is the
// base64 fernet key from configuration; it may be empty, in which case
// secret operations fail with ErrNoEncryptionKey.
func NewSettingsService(settingsRepo *repository.SettingsRepository, encodedKey string) (*SettingsService, error) {
	s := &SettingsService{settingsRepo: settingsRepo}

	if encodedKey != "" {
		key, err := fernet.DecodeKey(encodedKey)
		if err != nil {
			return nil, fmt.Errorf("invalid settings encryption key: %w", err)
		}
		s.key = key
	}

	return s, nil
}

// SetAssistantKey encrypts and stores the assistant gateway API key.
func (s *SettingsService) SetAssistantKey(ctx context.Context, apiKey string) error {
	if s.key == nil {
		return ErrNoEncryptionKey
	}

	token, err := fernet.EncryptAndSign([]byte(apiKey), s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt assistant key: %w", err)
	}

	if err := s.settingsRepo.UpsertAssistantKey(ctx, string(token)); err != nil {
		return persistence(err)
	}
	return nil
}

// GetAssistantKey decrypts and returns the stored assistant gateway API key.
func (s *SettingsService) GetAssistantKey(ctx context.Context) (string, error) {
	if s.key == nil {
		return "", ErrNoEncryptionKey
	}

	stored, err := s.settingsRepo.GetAssistantKey(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrAssistantKeyNotSet
		}
		return "", persistence(err)
	}

	// TTL 0: stored keys do not expire.
	plain := fernet.VerifyAndDecrypt([]byte(stored), 0, []*fernet.Key{s.key})
	if plain == nil {
		return "", fmt.Errorf("stored assistant key failed verification")
	}

	return string(plain), nil
}
