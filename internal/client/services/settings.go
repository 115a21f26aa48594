package services

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/dmitrijs2005/shiftjournal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/shiftjournal/internal/voice"
)

const keyVoiceGain = "voice.gain"

// SettingsService keeps small user preferences in the local database.
type SettingsService interface {
	VoiceGain(ctx context.Context) (int, error)
	SetVoiceGain(ctx context.Context, gain int) error
}

type settingsService struct {
	repo metadata.Repository
}

func NewSettingsService(db *sql.DB) SettingsService {
	return &settingsService{repo: metadata.NewSQLiteRepository(db)}
}

// VoiceGain returns the stored gain, or voice.DefaultGain when unset or
// unreadable.
func (s *settingsService) VoiceGain(ctx context.Context) (int, error) {
	v, err := s.repo.Get(ctx, keyVoiceGain)
	if err != nil {
		return voice.DefaultGain, err
	}
	if v == nil {
		return voice.DefaultGain, nil
	}
	g, err := strconv.Atoi(string(v))
	if err != nil {
		return voice.DefaultGain, nil
	}
	return voice.ClampGain(g), nil
}

func (s *settingsService) SetVoiceGain(ctx context.Context, gain int) error {
	return s.repo.Set(ctx, keyVoiceGain, []byte(strconv.Itoa(voice.ClampGain(gain))))
}
