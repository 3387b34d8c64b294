package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"tgcatalog/models"
)

// Config — вся конфигурация сервиса.
type Config struct {
	Server   Server   `mapstructure:"server"`
	Database Database `mapstructure:"database"`
	Auth     Auth     `mapstructure:"auth"`
	Telegram Telegram `mapstructure:"telegram"`
	Parser   Parser   `mapstructure:"parser"`
	Logging  Logging  `mapstructure:"logging"`
}

// Server — параметры HTTP-сервера.
type Server struct {
	Port string `mapstructure:"port"` // по умолчанию 8080
}

// Database — подключение к PostgreSQL. Пустой DSN означает работу без БД
// на демонстрационном каталоге.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Auth — статичный Bearer-токен для закрытых маршрутов.
type Auth struct {
	Token string `mapstructure:"token"`
}

// Telegram — приложение Telegram API, от имени которого работает парсер.
type Telegram struct {
	APIID       int    `mapstructure:"api_id"`
	APIHash     string `mapstructure:"api_hash"`
	SessionName string `mapstructure:"session_name"` // ключ строки в telegram_session, по умолчанию "parser"
	Proxy       Proxy  `mapstructure:"proxy"`
}

// Proxy — необязательный SOCKS5-прокси.
type Proxy struct {
	IP       string `mapstructure:"ip"`
	Port     int    `mapstructure:"port"`
	Login    string `mapstructure:"login"`
	Password string `mapstructure:"password"`
}

// Parser — режим фонового парсинга каналов.
type Parser struct {
	Enabled  bool          `mapstructure:"enabled"`   // по умолчанию выключен
	Interval time.Duration `mapstructure:"interval"`  // пауза между полными проходами, 24h
	PauseMin time.Duration `mapstructure:"pause_min"` // пауза между каналами, 15s
	PauseMax time.Duration `mapstructure:"pause_max"` // 20s
	Limit    int           `mapstructure:"limit"`     // число последних постов, 10
}

// Logging — параметры журнала.
type Logging struct {
	Level       string `mapstructure:"level"`       // debug|info|warn|error, по умолчанию info
	Development bool   `mapstructure:"development"` // консольный формат вместо JSON
}

// Load читает .env (если есть), переменные окружения с префиксом TGCATALOG_
// и необязательный YAML-файл path.
func Load(path string) (*Config, error) {
	// .env необязателен, поэтому ошибку его отсутствия не возвращаем
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TGCATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("не удалось прочитать конфигурацию %s: %w", path, err)
			}
		}
	}

	// PORT оставлен для совместимости с окружениями, где порт задаёт платформа
	if err := v.BindEnv("server.port", "TGCATALOG_SERVER_PORT", "PORT"); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("не удалось разобрать конфигурацию: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("database.dsn", "")
	v.SetDefault("auth.token", "")
	v.SetDefault("telegram.api_id", 0)
	v.SetDefault("telegram.api_hash", "")
	v.SetDefault("telegram.session_name", "parser")
	v.SetDefault("telegram.proxy.ip", "")
	v.SetDefault("telegram.proxy.port", 0)
	v.SetDefault("telegram.proxy.login", "")
	v.SetDefault("telegram.proxy.password", "")
	v.SetDefault("parser.enabled", false)
	v.SetDefault("parser.interval", 24*time.Hour)
	v.SetDefault("parser.pause_min", 15*time.Second)
	v.SetDefault("parser.pause_max", 20*time.Second)
	v.SetDefault("parser.limit", 10)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.development", false)
}

// Validate проверяет согласованность значений.
func (c *Config) Validate() error {
	if c.Parser.PauseMax < c.Parser.PauseMin {
		return fmt.Errorf("parser.pause_max (%s) меньше parser.pause_min (%s)", c.Parser.PauseMax, c.Parser.PauseMin)
	}
	if c.Parser.Limit <= 0 {
		return fmt.Errorf("parser.limit должен быть положительным, получено %d", c.Parser.Limit)
	}
	if c.Parser.Enabled && !c.Telegram.Configured() {
		return errors.New("для фонового парсинга нужны telegram.api_id и telegram.api_hash")
	}
	return nil
}

// Configured сообщает, заданы ли ключи Telegram API.
func (t Telegram) Configured() bool {
	return t.APIID != 0 && t.APIHash != ""
}

// ProxyModel возвращает прокси для клиента Telegram или nil, если он не задан.
func (t Telegram) ProxyModel() *models.Proxy {
	if t.Proxy.IP == "" {
		return nil
	}
	return &models.Proxy{
		IP:       t.Proxy.IP,
		Port:     t.Proxy.Port,
		Login:    t.Proxy.Login,
		Password: t.Proxy.Password,
	}
}
