package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
	"github.com/custodia-labs/iajur-cli/internal/core/ports/driven"
	"github.com/custodia-labs/iajur-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyServerBaseURL  = domain.SettingServerBaseURL
	KeyServerTimeout  = domain.SettingServerTimeout
	KeyServerRate     = domain.SettingServerRate
	KeyServerBurst    = domain.SettingServerBurst
	KeyHistoryBackend = domain.SettingHistoryBackend
	KeyHistoryDir     = domain.SettingHistoryDir
	KeyAppName        = domain.SettingAppName
	KeyAppSystemName  = domain.SettingAppSystemName
	KeyDownloadDir    = domain.SettingDownloadDir
)

var settingKeys = []string{
	KeyServerBaseURL,
	KeyServerTimeout,
	KeyServerRate,
	KeyServerBurst,
	KeyHistoryBackend,
	KeyHistoryDir,
	KeyAppName,
	KeyAppSystemName,
	KeyDownloadDir,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Server: domain.ServerSettings{
			BaseURL:        s.getString(KeyServerBaseURL, defaults.Server.BaseURL),
			TimeoutSeconds: s.getInt(KeyServerTimeout, defaults.Server.TimeoutSeconds),
			RateLimit:      s.getFloat(KeyServerRate, defaults.Server.RateLimit),
			Burst:          s.getInt(KeyServerBurst, defaults.Server.Burst),
		},
		History: domain.HistorySettings{
			Backend: s.getBackend(defaults.History.Backend),
			Dir:     s.configStore.GetString(KeyHistoryDir),
		},
		App: domain.AppIdentity{
			Name:       s.getString(KeyAppName, defaults.App.Name),
			SystemName: s.getString(KeyAppSystemName, defaults.App.SystemName),
		},
		Download: domain.DownloadSettings{
			Dir: s.configStore.GetString(KeyDownloadDir),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{KeyServerBaseURL, settings.Server.BaseURL},
		{KeyServerTimeout, settings.Server.TimeoutSeconds},
		{KeyServerRate, settings.Server.RateLimit},
		{KeyServerBurst, settings.Server.Burst},
		{KeyHistoryBackend, settings.History.Backend.String()},
		{KeyHistoryDir, settings.History.Dir},
		{KeyAppName, settings.App.Name},
		{KeyAppSystemName, settings.App.SystemName},
		{KeyDownloadDir, settings.Download.Dir},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var typed any
	switch key {
	case KeyServerBaseURL:
		if err := validateBaseURL(value); err != nil {
			return err
		}
		typed = strings.TrimRight(value, "/")
	case KeyServerTimeout, KeyServerBurst:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		if key == KeyServerBurst && n < 1 {
			return fmt.Errorf("%w: %s must be at least 1", domain.ErrInvalidInput, key)
		}
		typed = n
	case KeyServerRate:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		typed = f
	case KeyHistoryBackend:
		backend := domain.HistoryBackend(value)
		if !backend.IsValid() {
			return fmt.Errorf("%w: unknown history backend %q", domain.ErrInvalidInput, value)
		}
		typed = backend.String()
	case KeyHistoryDir, KeyAppName, KeyAppSystemName, KeyDownloadDir:
		typed = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, typed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the supported setting keys.
func (s *SettingsService) Keys() []string {
	out := make([]string, len(settingKeys))
	copy(out, settingKeys)
	return out
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if err := validateBaseURL(settings.Server.BaseURL); err != nil {
		return err
	}
	if settings.Server.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: timeout must not be negative", domain.ErrInvalidInput)
	}
	if settings.Server.RateLimit < 0 {
		return fmt.Errorf("%w: rate limit must not be negative", domain.ErrInvalidInput)
	}
	if settings.Server.Burst < 1 {
		return fmt.Errorf("%w: burst must be at least 1", domain.ErrInvalidInput)
	}
	if !settings.History.Backend.IsValid() {
		return fmt.Errorf("%w: unknown history backend %q", domain.ErrInvalidInput, settings.History.Backend)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base URL must be an http(s) URL, got %q", domain.ErrInvalidInput, raw)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBackend(defaultVal domain.HistoryBackend) domain.HistoryBackend {
	val := s.configStore.GetString(KeyHistoryBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.HistoryBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
