package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Config собирается один раз при старте и передаётся в каждый этап
type Config struct {
	Sheet     SheetConfig
	Mail      MailConfig
	Reference string
	DBPath    string
	ReportDir string
	Telegram  TelegramConfig
	Location  *time.Location
	LogLevel  string
	AppEnv    string
}

// SheetConfig описывает, где лежат исходные строки посещаемости
type SheetConfig struct {
	SpreadsheetID   string
	DataTab         string
	OutputTab       string
	CredentialsFile string
}

type MailConfig struct {
	From     string
	Password string
	Host     string
	Port     int
}

type TelegramConfig struct {
	Token  string
	ChatID int64
}

// Enabled сообщает, нужно ли отправлять итог запуска в Telegram
func (t TelegramConfig) Enabled() bool {
	return t.Token != "" && t.ChatID != 0
}

func Load() (*Config, error) {
	// Загружаем .env файл (если существует)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	port, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil || port <= 0 {
		return nil, fmt.Errorf("config: SMTP_PORT must be a positive integer, got %q", os.Getenv("SMTP_PORT"))
	}

	chatID, err := parseChatID(os.Getenv("TELEGRAM_CHAT_ID"))
	if err != nil {
		return nil, err
	}

	loc, err := loadLocation(os.Getenv("APP_TIMEZONE"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Sheet: SheetConfig{
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_ID"),
			DataTab:         os.Getenv("GOOGLE_SHEET_DATA_TAB"),
			OutputTab:       os.Getenv("GOOGLE_SHEET_OUTPUT_TAB"),
			CredentialsFile: os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"),
		},
		Mail: MailConfig{
			From:     os.Getenv("HR_EMAIL"),
			Password: os.Getenv("HR_EMAIL_PASSWORD"),
			Host:     os.Getenv("SMTP_SERVER"),
			Port:     port,
		},
		Reference: getEnv("EMPLOYEE_REFERENCE", "employee_details.csv"),
		DBPath:    getEnv("DB_PATH", ":memory:"),
		ReportDir: os.Getenv("REPORT_DIR"),
		Telegram: TelegramConfig{
			Token:  os.Getenv("TELEGRAM_TOKEN"),
			ChatID: chatID,
		},
		Location: loc,
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		AppEnv:   strings.ToLower(getEnv("APP_ENV", "production")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"GOOGLE_SHEET_ID", c.Sheet.SpreadsheetID},
		{"GOOGLE_SHEET_DATA_TAB", c.Sheet.DataTab},
		{"GOOGLE_SERVICE_ACCOUNT_JSON", c.Sheet.CredentialsFile},
		{"HR_EMAIL", c.Mail.From},
		{"HR_EMAIL_PASSWORD", c.Mail.Password},
		{"SMTP_SERVER", c.Mail.Host},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func parseChatID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: TELEGRAM_CHAT_ID: %w", err)
	}
	return id, nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("config: APP_TIMEZONE: %w", err)
	}
	return loc, nil
}
