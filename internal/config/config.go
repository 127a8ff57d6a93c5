package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/alkmaar-rp/supportbot/internal/domain"
)

// Config aggregates runtime configuration for the bot and web backend.
type Config struct {
	App        AppConfig
	Postgres   PostgresConfig
	Redis      RedisConfig
	Logger     LoggerConfig
	Guild      GuildConfig
	Roles      RolesConfig
	Channels   ChannelsConfig
	Categories CategoriesConfig
	Tickets    TicketsConfig
	Clock      ClockConfig
	Review     ReviewConfig
}

// AppConfig controls web server behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	RequestTimeoutSeconds int
}

// PostgresConfig holds connection values for the audit store.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds connection values for the ticket record store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// GuildConfig identifies the guild the bot serves.
type GuildConfig struct {
	// EveryoneID is the subject ID of the everyone role.
	EveryoneID string
}

// RolesConfig holds the staff role identifiers.
type RolesConfig struct {
	Support          string
	StaffCoordinator string
	Bestuur          string
	Unban            string
	Refund           string
	Development      string
	Gang             string
}

// ChannelsConfig holds the audit destination channels.
type ChannelsConfig struct {
	AuditLog   string
	SignoffLog string
	ClockLog   string
	Reviews    string
}

// CategoriesConfig holds the parent container per ticket category.
type CategoriesConfig struct {
	AlgemeneVraag          string
	Unban                  string
	IngameRefund           string
	Klachten               string
	Donatie                string
	Sollicitatie           string
	Development            string
	OverheidCoordinator    string
	OnderwereldCoordinator string
	GangAanvraag           string
	StaffCoordinator       string
}

// TicketsConfig controls ticket handling behavior.
type TicketsConfig struct {
	TranscriptDir string
	StateFile     string
	AlertHours    int
}

// ClockConfig controls the staff time-clock ledger.
type ClockConfig struct {
	DataFile string
}

// ReviewConfig configures the signed review handle.
type ReviewConfig struct {
	HandleSecret     string
	HandleTTLMinutes int
}

// Load reads configuration from environment variables, applying defaults
// where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "supportbot"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8123"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Guild: GuildConfig{
			EveryoneID: getEnv("GUILD_EVERYONE_ID", "everyone"),
		},
		Roles: RolesConfig{
			Support:          os.Getenv("ROLE_SUPPORT"),
			StaffCoordinator: os.Getenv("ROLE_STAFF_COORDINATOR"),
			Bestuur:          os.Getenv("ROLE_BESTUUR"),
			Unban:            os.Getenv("ROLE_UNBAN"),
			Refund:           os.Getenv("ROLE_REFUND"),
			Development:      os.Getenv("ROLE_DEVELOPMENT"),
			Gang:             os.Getenv("ROLE_GANG"),
		},
		Channels: ChannelsConfig{
			AuditLog:   os.Getenv("CHANNEL_AUDIT_LOG"),
			SignoffLog: os.Getenv("CHANNEL_SIGNOFF_LOG"),
			ClockLog:   os.Getenv("CHANNEL_CLOCK_LOG"),
			Reviews:    os.Getenv("CHANNEL_REVIEWS"),
		},
		Categories: CategoriesConfig{
			AlgemeneVraag:          os.Getenv("CATEGORY_ALGEMENE_VRAAG"),
			Unban:                  os.Getenv("CATEGORY_UNBAN"),
			IngameRefund:           os.Getenv("CATEGORY_INGAME_REFUND"),
			Klachten:               os.Getenv("CATEGORY_KLACHTEN"),
			Donatie:                os.Getenv("CATEGORY_DONATIE"),
			Sollicitatie:           os.Getenv("CATEGORY_SOLLICITATIE"),
			Development:            os.Getenv("CATEGORY_DEVELOPMENT"),
			OverheidCoordinator:    os.Getenv("CATEGORY_OVERHEID_COORDINATOR"),
			OnderwereldCoordinator: os.Getenv("CATEGORY_ONDERWERELD_COORDINATOR"),
			GangAanvraag:           os.Getenv("CATEGORY_GANG_AANVRAAG"),
			StaffCoordinator:       os.Getenv("CATEGORY_STAFF_COORDINATOR"),
		},
		Tickets: TicketsConfig{
			TranscriptDir: getEnv("TICKET_TRANSCRIPT_DIR", "./transcripts"),
			StateFile:     getEnv("TICKET_STATE_FILE", "./ticket_state.json"),
			AlertHours:    getEnvAsInt("TICKET_ALERT_HOURS", 24),
		},
		Clock: ClockConfig{
			DataFile: getEnv("CLOCK_DATA_FILE", "./clock_data.json"),
		},
		Review: ReviewConfig{
			HandleSecret:     getEnv("REVIEW_HANDLE_SECRET", "dev-secret"),
			HandleTTLMinutes: getEnvAsInt("REVIEW_HANDLE_TTL_MINUTES", 7*24*60),
		},
	}

	return cfg, nil
}

// CategoryRegistry builds the static category table from configuration.
// Categories without a dedicated role fall back to the generic support
// role when permissions are planned.
func (c *Config) CategoryRegistry() *domain.CategoryRegistry {
	return domain.NewCategoryRegistry([]domain.Category{
		{Key: domain.CategoryAlgemeneVraag, Label: "Algemene Vragen", ParentID: c.Categories.AlgemeneVraag, InPanel: true},
		{Key: domain.CategoryUnban, Label: "Unban", ParentID: c.Categories.Unban, RoleID: c.Roles.Unban, InPanel: true},
		{Key: domain.CategoryIngameRefund, Label: "Ingame Refund", ParentID: c.Categories.IngameRefund, RoleID: c.Roles.Refund, InPanel: true},
		{Key: domain.CategorySpelerKlacht, Label: "Speler Klacht", ParentID: c.Categories.Klachten, InPanel: true},
		{Key: domain.CategoryStaffKlacht, Label: "Staff Klacht", ParentID: c.Categories.Klachten, RoleID: c.Roles.StaffCoordinator, InPanel: true},
		{Key: domain.CategoryDonatie, Label: "Donatie", ParentID: c.Categories.Donatie, RoleID: c.Roles.Bestuur, InPanel: true},
		{Key: domain.CategorySollicitatie, Label: "Staff Sollicitatie", ParentID: c.Categories.Sollicitatie, RoleID: c.Roles.StaffCoordinator, InPanel: true},
		{Key: domain.CategoryDevelopment, Label: "Development", ParentID: c.Categories.Development, RoleID: c.Roles.Development, Restricted: true, InPanel: true},
		{Key: domain.CategoryOverheidCoordinator, Label: "Overheid Coördinator", ParentID: c.Categories.OverheidCoordinator},
		{Key: domain.CategoryOnderwereldCoordinator, Label: "Onderwereld Coördinator", ParentID: c.Categories.OnderwereldCoordinator},
		{Key: domain.CategoryGangAanvraag, Label: "Gang Aanvraag", ParentID: c.Categories.GangAanvraag, RoleID: c.Roles.Gang, InPanel: true},
		{Key: domain.CategoryStaffCoordinator, Label: "Staff Coördinator", ParentID: c.Categories.StaffCoordinator, RoleID: c.Roles.StaffCoordinator, Restricted: true},
	})
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// AlertWindow returns the reminder observation window.
func (t TicketsConfig) AlertWindow() time.Duration {
	if t.AlertHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(t.AlertHours) * time.Hour
}

// HandleTTL returns how long a review handle stays valid.
func (r ReviewConfig) HandleTTL() time.Duration {
	if r.HandleTTLMinutes <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(r.HandleTTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
