package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	apiPrefix     = "/api/v1"
	hostedBackend = "https://sgpj-legal-backend.vercel.app" + apiPrefix
	localBackend  = "http://localhost:8000" + apiPrefix
)

// Config holds application configuration loaded from an optional TOML
// file and the environment. Environment values win.
type Config struct {
	API struct {
		URL            string `toml:"url"`
		Host           string `toml:"host"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
		BaseURL        string `toml:"-"`
	} `toml:"api"`
	Session struct {
		TokenFile string `toml:"token_file"`
	} `toml:"session"`
	Logging struct {
		Dir   string `toml:"dir"`
		Level string `toml:"level"`
	} `toml:"logging"`
	Reminders struct {
		Enabled              bool  `toml:"enabled"`
		CheckIntervalMinutes int   `toml:"check_interval_minutes"`
		HearingHours         []int `toml:"hearing_hours"`
		HearingWindowMinutes int   `toml:"hearing_window_minutes"`
		DiligenciaHours      int   `toml:"diligencia_hours"`
		ReviewDays           int   `toml:"review_days"`
		DedupWindowMinutes   int   `toml:"dedup_window_minutes"`
	} `toml:"reminders"`
	Notification struct {
		QueueSize  int `toml:"queue_size"`
		MaxWorkers int `toml:"max_workers"`
	} `toml:"notification"`
	Email struct {
		SMTPServer string   `toml:"smtp_server"`
		SMTPPort   int      `toml:"smtp_port"`
		Username   string   `toml:"username"`
		Password   string   `toml:"password"`
		FromName   string   `toml:"from_name"`
		Recipients []string `toml:"recipients"`
	} `toml:"email"`
	Telegram struct {
		BotToken  string  `toml:"bot_token"`
		ChatIDs   []int64 `toml:"chat_ids"`
		RateLimit int     `toml:"rate_limit"`
	} `toml:"telegram"`
	SMS struct {
		AccountSID string   `toml:"account_sid"`
		AuthToken  string   `toml:"auth_token"`
		FromNumber string   `toml:"from_number"`
		Recipients []string `toml:"recipients"`
	} `toml:"sms"`
	Kafka struct {
		Broker  string `toml:"broker"`
		Topic   string `toml:"topic"`
		GroupID string `toml:"group_id"`
	} `toml:"kafka"`
	DB struct {
		DSN string `toml:"dsn"`
	} `toml:"db"`
	Agenda struct {
		Port     string `toml:"port"`
		BasePath string `toml:"base_path"`
	} `toml:"agenda"`
}

// Load reads the TOML overlay (SGPJ_CONFIG), then environment variables,
// applies defaults, and returns a Config.
func Load() (Config, error) {
	// Load .env if present
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config

	if path := os.Getenv("SGPJ_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	// API settings
	setString(&cfg.API.URL, "SGPJ_API_URL", "NEXT_PUBLIC_API_URL")
	setString(&cfg.API.Host, "SGPJ_API_HOST")
	setInt(&cfg.API.TimeoutSeconds, "SGPJ_API_TIMEOUT_SECONDS")
	setString(&cfg.Session.TokenFile, "SGPJ_TOKEN_FILE")

	setString(&cfg.Logging.Dir, "LOG_DIR")
	setString(&cfg.Logging.Level, "LOG_LEVEL")

	// Reminder scheduler settings
	if v, ok := lookup("AUTO_NOTIFICATIONS_ENABLED"); ok {
		cfg.Reminders.Enabled, _ = strconv.ParseBool(v)
	}
	setInt(&cfg.Reminders.CheckIntervalMinutes, "NOTIFICATION_CHECK_INTERVAL_MINUTES")
	if v, ok := lookup("AUDIENCIA_NOTIFICATION_HOURS"); ok {
		hours, err := parseInts(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid AUDIENCIA_NOTIFICATION_HOURS: %w", err)
		}
		cfg.Reminders.HearingHours = hours
	}
	setInt(&cfg.Reminders.HearingWindowMinutes, "AUDIENCIA_NOTIFICATION_WINDOW_MINUTES")
	setInt(&cfg.Reminders.DiligenciaHours, "DILIGENCIA_NOTIFICATION_HOURS")
	setInt(&cfg.Reminders.ReviewDays, "PROCESO_REVIEW_NOTIFICATION_DAYS")
	setInt(&cfg.Reminders.DedupWindowMinutes, "NOTIFICATION_DEDUP_MINUTES")

	// Notification worker settings
	setInt(&cfg.Notification.QueueSize, "QUEUE_SIZE")
	setInt(&cfg.Notification.MaxWorkers, "MAX_WORKERS")

	// Email settings
	setString(&cfg.Email.SMTPServer, "EMAIL_SMTP_SERVER")
	setInt(&cfg.Email.SMTPPort, "EMAIL_SMTP_PORT")
	setString(&cfg.Email.Username, "EMAIL_USERNAME")
	setString(&cfg.Email.Password, "EMAIL_PASSWORD")
	setString(&cfg.Email.FromName, "EMAIL_FROM_NAME")
	if v, ok := lookup("NOTIFICATION_RECIPIENTS"); ok {
		cfg.Email.Recipients = splitList(v)
	}

	// Telegram settings
	setString(&cfg.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	if v, ok := lookup("TELEGRAM_CHAT_IDS"); ok {
		ids, err := parseInt64s(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TELEGRAM_CHAT_IDS: %w", err)
		}
		cfg.Telegram.ChatIDs = ids
	}
	setInt(&cfg.Telegram.RateLimit, "TELEGRAM_RATE_LIMIT")

	// Twilio settings
	setString(&cfg.SMS.AccountSID, "TWILIO_ACCOUNT_SID")
	setString(&cfg.SMS.AuthToken, "TWILIO_AUTH_TOKEN")
	setString(&cfg.SMS.FromNumber, "TWILIO_FROM_NUMBER")
	if v, ok := lookup("SMS_RECIPIENTS"); ok {
		cfg.SMS.Recipients = splitList(v)
	}

	// Kafka settings
	setString(&cfg.Kafka.Broker, "KAFKA_BROKER")
	setString(&cfg.Kafka.Topic, "KAFKA_TOPIC")
	setString(&cfg.Kafka.GroupID, "KAFKA_GROUP_ID")

	// Database DSN
	setString(&cfg.DB.DSN, "DB_DSN")

	// Agenda server settings
	setString(&cfg.Agenda.Port, "API_PORT")
	setString(&cfg.Agenda.BasePath, "API_BASE_PATH")

	applyDefaults(&cfg)
	cfg.API.BaseURL = ResolveBaseURL(cfg.API.URL, cfg.API.Host)

	return cfg, nil
}

// ResolveBaseURL picks the backend base URL: an explicit override wins,
// then the hosted deployment when host is a vercel.app domain, then
// the local development backend.
func ResolveBaseURL(override, host string) string {
	if override != "" {
		return strings.TrimRight(override, "/") + apiPrefix
	}
	if strings.Contains(host, "vercel.app") {
		return hostedBackend
	}
	return localBackend
}

// Timeout is the per-request client timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

func (c Config) CheckInterval() time.Duration {
	return time.Duration(c.Reminders.CheckIntervalMinutes) * time.Minute
}

func (c Config) HearingWindow() time.Duration {
	return time.Duration(c.Reminders.HearingWindowMinutes) * time.Minute
}

func (c Config) DedupWindow() time.Duration {
	return time.Duration(c.Reminders.DedupWindowMinutes) * time.Minute
}

// Channels lists the reminder delivery channels that have enough
// configuration to be used.
func (c Config) Channels() []string {
	var channels []string
	if c.Email.SMTPServer != "" && len(c.Email.Recipients) > 0 {
		channels = append(channels, "email")
	}
	if c.Telegram.BotToken != "" && len(c.Telegram.ChatIDs) > 0 {
		channels = append(channels, "telegram")
	}
	if c.SMS.AccountSID != "" && len(c.SMS.Recipients) > 0 {
		channels = append(channels, "sms")
	}
	if c.Kafka.Broker != "" {
		channels = append(channels, "kafka")
	}
	return channels
}

// ValidateReminders checks the settings the reminder daemon needs.
func (c Config) ValidateReminders() error {
	missing := []string{}
	if c.Email.SMTPServer != "" {
		if c.Email.SMTPPort == 0 {
			missing = append(missing, "EMAIL_SMTP_PORT")
		}
		if c.Email.Username == "" {
			missing = append(missing, "EMAIL_USERNAME")
		}
		if c.Email.Password == "" {
			missing = append(missing, "EMAIL_PASSWORD")
		}
	}
	if c.SMS.AccountSID != "" {
		if c.SMS.AuthToken == "" {
			missing = append(missing, "TWILIO_AUTH_TOKEN")
		}
		if c.SMS.FromNumber == "" {
			missing = append(missing, "TWILIO_FROM_NUMBER")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configurations: %v", missing)
	}
	for _, h := range c.Reminders.HearingHours {
		if h <= 0 {
			return fmt.Errorf("invalid hearing reminder hour %d", h)
		}
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.API.TimeoutSeconds == 0 {
		cfg.API.TimeoutSeconds = 15
	}
	if cfg.Session.TokenFile == "" {
		cfg.Session.TokenFile = defaultTokenFile()
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = "logs"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Reminders.CheckIntervalMinutes == 0 {
		cfg.Reminders.CheckIntervalMinutes = 60
	}
	if len(cfg.Reminders.HearingHours) == 0 {
		cfg.Reminders.HearingHours = []int{24, 12}
	}
	if cfg.Reminders.HearingWindowMinutes == 0 {
		cfg.Reminders.HearingWindowMinutes = 60
	}
	if cfg.Reminders.DiligenciaHours == 0 {
		cfg.Reminders.DiligenciaHours = 24
	}
	if cfg.Reminders.ReviewDays == 0 {
		cfg.Reminders.ReviewDays = 7
	}
	if cfg.Reminders.DedupWindowMinutes == 0 {
		cfg.Reminders.DedupWindowMinutes = 120
	}
	if cfg.Notification.QueueSize == 0 {
		cfg.Notification.QueueSize = 500
	}
	if cfg.Notification.MaxWorkers == 0 {
		cfg.Notification.MaxWorkers = 10
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "SGPJ"
	}
	if cfg.Telegram.RateLimit == 0 {
		cfg.Telegram.RateLimit = 1
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "sgpj.reminders"
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = "sgpj-reminders"
	}
	if cfg.Agenda.Port == "" {
		cfg.Agenda.Port = ":9191"
	}
	if cfg.Agenda.BasePath == "" {
		cfg.Agenda.BasePath = "/api/v0"
	}
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sgpj_session.toml"
	}
	return filepath.Join(home, ".sgpj", "session.toml")
}

func lookup(keys ...string) (string, bool) {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v, true
		}
	}
	return "", false
}

func setString(dst *string, keys ...string) {
	if v, ok := lookup(keys...); ok {
		*dst = v
	}
}

func setInt(dst *int, keys ...string) {
	if v, ok := lookup(keys...); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseInts(v string) ([]int, error) {
	var out []int
	for _, part := range splitList(v) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func parseInt64s(v string) ([]int64, error) {
	var out []int64
	for _, part := range splitList(v) {
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
