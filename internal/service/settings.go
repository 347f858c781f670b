package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"docqa/internal/answer"
	"docqa/internal/display"
	"docqa/internal/model"
	"docqa/internal/state"
)

const (
	msgCredentialCleared = "API key cleared. AI chat disabled."
	msgCredentialSaved   = "API key saved successfully!"
	msgCredentialInvalid = "Invalid API key. Please check and try again."
	msgCredentialFailed  = "Failed to validate API key. Please try again."
)

// Settings is the public view of the user preferences. The credential itself never leaves
// the service.
type Settings struct {
	HasCredential    bool        `json:"has_credential"`
	MaskedCredential string      `json:"masked_credential,omitempty"`
	Theme            model.Theme `json:"theme"`
}

type SettingsService interface {
	Get(ctx context.Context) Settings

	// SetCredential validates key against the remote before saving it. A blank key clears
	// the stored credential.
	SetCredential(ctx context.Context, key string) error

	ClearCredential(ctx context.Context)

	HasCredential(ctx context.Context) bool

	// MaskedCredential shows only the ends of the key.
	MaskedCredential(ctx context.Context) string

	Theme(ctx context.Context) model.Theme

	// ToggleTheme flips between light and dark and returns the new theme.
	ToggleTheme(ctx context.Context) model.Theme
}

type SettingsDeps struct {
	Workspace *state.Workspace
	Answerer  Answerer
	Notifier  Notifier
	Logger    *zap.Logger
}

type settingsService struct {
	ws     *state.Workspace
	remote Answerer
	notify Notifier
	log    *zap.Logger
}

func NewSettingsService(d SettingsDeps) SettingsService {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &settingsService{
		ws:     d.Workspace,
		remote: d.Answerer,
		notify: d.Notifier,
		log:    d.Logger.Named("settings"),
	}
}

func (s *settingsService) Get(ctx context.Context) Settings {
	return Settings{
		HasCredential:    s.HasCredential(ctx),
		MaskedCredential: s.MaskedCredential(ctx),
		Theme:            s.Theme(ctx),
	}
}

func (s *settingsService) SetCredential(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		s.ClearCredential(ctx)
		return nil
	}

	ok, err := s.remote.ValidateCredential(ctx, key)
	if err != nil {
		s.notify.Show(model.SeverityError, msgCredentialFailed)
		s.log.Warn("validate credential", zap.Error(err))
		return fmt.Errorf("validate credential: %w", err)
	}
	if !ok {
		s.notify.Show(model.SeverityError, msgCredentialInvalid)
		return &CredentialError{Err: answer.ErrInvalidCredential}
	}

	s.ws.SetCredential(ctx, key)
	s.notify.Show(model.SeveritySuccess, msgCredentialSaved)
	s.log.Info("credential saved", zap.String("key", display.MaskKey(key)))
	return nil
}

func (s *settingsService) ClearCredential(ctx context.Context) {
	s.ws.SetCredential(ctx, "")
	s.notify.Show(model.SeverityInfo, msgCredentialCleared)
}

func (s *settingsService) HasCredential(_ context.Context) bool {
	return s.ws.Credential() != ""
}

func (s *settingsService) MaskedCredential(_ context.Context) string {
	key := s.ws.Credential()
	if key == "" {
		return ""
	}
	return display.MaskKey(key)
}

func (s *settingsService) Theme(_ context.Context) model.Theme {
	return s.ws.Theme()
}

func (s *settingsService) ToggleTheme(ctx context.Context) model.Theme {
	return s.ws.ToggleTheme(ctx)
}
