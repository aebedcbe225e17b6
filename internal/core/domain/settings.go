package domain

import (
	"strconv"
	"time"
)

const unknownDescription = "Unknown"

// HistoryBackend selects the durable store behind the history log.
type HistoryBackend string

// Available history backends.
const (
	// HistoryBackendFile stores the log as a single JSON document on disk.
	HistoryBackendFile HistoryBackend = "file"

	// HistoryBackendSQLite stores the log as a JSON document in a SQLite
	// key/value table.
	HistoryBackendSQLite HistoryBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b HistoryBackend) IsValid() bool {
	switch b {
	case HistoryBackendFile, HistoryBackendSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b HistoryBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b HistoryBackend) Description() string {
	switch b {
	case HistoryBackendFile:
		return "JSON file"
	case HistoryBackendSQLite:
		return "SQLite database"
	default:
		return unknownDescription
	}
}

// ServerSettings configures the remote answering service.
type ServerSettings struct {
	// BaseURL is the service root, e.g. http://localhost:8001.
	BaseURL string

	// TimeoutSeconds bounds each HTTP call. Zero means no client timeout.
	TimeoutSeconds int

	// RateLimit is the sustained number of requests per second.
	RateLimit float64

	// Burst is the token bucket size.
	Burst int
}

// Timeout returns TimeoutSeconds as a duration.
func (s ServerSettings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// HistorySettings configures durable history storage.
type HistorySettings struct {
	Backend HistoryBackend

	// Dir is the data directory. Empty means ~/.iajur/data.
	Dir string
}

// AppIdentity names the application in transcripts and the UI.
type AppIdentity struct {
	// Name is the short application name.
	Name string

	// SystemName is the long name written in transcript footers.
	SystemName string
}

// DownloadSettings configures where transcripts and artifacts are saved.
type DownloadSettings struct {
	// Dir is the output directory. Empty means the working directory.
	Dir string
}

// AppSettings aggregates all application settings.
type AppSettings struct {
	Server   ServerSettings
	History  HistorySettings
	App      AppIdentity
	Download DownloadSettings
}

// Default setting values.
const (
	DefaultBaseURL    = "http://localhost:8001"
	DefaultRateLimit  = 2.0
	DefaultBurst      = 5
	DefaultAppName    = "IA-JUR"
	DefaultSystemName = "IA-JUR - Sistema de Pesquisa Jurídica Inteligente"
)

// DefaultAppSettings returns the default application settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Server: ServerSettings{
			BaseURL:   DefaultBaseURL,
			RateLimit: DefaultRateLimit,
			Burst:     DefaultBurst,
		},
		History: HistorySettings{
			Backend: HistoryBackendFile,
		},
		App: AppIdentity{
			Name:       DefaultAppName,
			SystemName: DefaultSystemName,
		},
	}
}

// AllHistoryBackends returns the supported history backends.
func AllHistoryBackends() []HistoryBackend {
	return []HistoryBackend{
		HistoryBackendFile,
		HistoryBackendSQLite,
	}
}

// Setting keys as stored in the configuration file.
const (
	SettingServerBaseURL  = "server.base_url"
	SettingServerTimeout  = "server.timeout_seconds"
	SettingServerRate     = "server.rate_limit"
	SettingServerBurst    = "server.burst"
	SettingHistoryBackend = "history.backend"
	SettingHistoryDir     = "history.dir"
	SettingAppName        = "app.name"
	SettingAppSystemName  = "app.system_name"
	SettingDownloadDir    = "download.dir"
)

// Value returns the string form of the setting stored under key.
func (s AppSettings) Value(key string) (string, bool) {
	switch key {
	case SettingServerBaseURL:
		return s.Server.BaseURL, true
	case SettingServerTimeout:
		return strconv.Itoa(s.Server.TimeoutSeconds), true
	case SettingServerRate:
		return strconv.FormatFloat(s.Server.RateLimit, 'f', -1, 64), true
	case SettingServerBurst:
		return strconv.Itoa(s.Server.Burst), true
	case SettingHistoryBackend:
		return s.History.Backend.String(), true
	case SettingHistoryDir:
		return s.History.Dir, true
	case SettingAppName:
		return s.App.Name, true
	case SettingAppSystemName:
		return s.App.SystemName, true
	case SettingDownloadDir:
		return s.Download.Dir, true
	default:
		return "", false
	}
}
