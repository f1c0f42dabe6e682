package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Источники каталога
const (
	CatalogSourceStatic   = "static"
	CatalogSourcePostgres = "postgres"
)

// Config содержит все настройки Shop Service
type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Database DatabaseConfig
	Shop     ShopConfig
}

// ServerConfig - настройки HTTP-сервера
type ServerConfig struct {
	Port     string
	LogLevel string
}

// RedisConfig - настройки подключения к Redis
// Хранит персистентное состояние сессий: фильтры, режим отображения, корзину
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration // TTL ключей состояния сессии
}

// KafkaConfig - настройки Kafka для публикации событий корзины
type KafkaConfig struct {
	Brokers []string
	Topic   string
	Enabled bool // Выключение отключает публикацию целиком
}

// DatabaseConfig - настройки PostgreSQL для загрузки каталога
// Используется только при CATALOG_SOURCE=postgres
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// ShopConfig - параметры поведения витрины
type ShopConfig struct {
	CatalogSource  string        // static либо postgres
	SearchDebounce time.Duration // Задержка пересчета результатов после ввода
	LoadingDelay   time.Duration // Длительность импульса индикатора загрузки
	SessionTTL     time.Duration // Простой, после которого сессия выметается
	SweepSchedule  string        // Cron-расписание уборки сессий
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	ttlHours := getEnvInt("REDIS_STATE_TTL_HOURS", 24)
	sessionTTLMinutes := getEnvInt("SESSION_TTL_MINUTES", 30)

	source := getEnv("CATALOG_SOURCE", CatalogSourceStatic)
	if source != CatalogSourceStatic && source != CatalogSourcePostgres {
		return nil, fmt.Errorf("invalid CATALOG_SOURCE %q: must be %s or %s", source, CatalogSourceStatic, CatalogSourcePostgres)
	}

	return &Config{
		Server: ServerConfig{
			Port:     getEnv("SERVER_PORT", "8085"),
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(ttlHours) * time.Hour,
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "cart_events"),
			Enabled: getEnvBool("KAFKA_ENABLED", true),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "shop_service"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Shop: ShopConfig{
			CatalogSource:  source,
			SearchDebounce: time.Duration(getEnvInt("SEARCH_DEBOUNCE_MS", 250)) * time.Millisecond,
			LoadingDelay:   time.Duration(getEnvInt("LOADING_DELAY_MS", 350)) * time.Millisecond,
			SessionTTL:     time.Duration(sessionTTLMinutes) * time.Minute,
			// По умолчанию уборка каждые 5 минут
			SweepSchedule: getEnv("CRON_SWEEP_SESSIONS", "0 */5 * * * *"),
		},
	}, nil
}

// DSN возвращает строку подключения к PostgreSQL в формате libpq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает значение переменной окружения как int
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool получает значение переменной окружения как bool
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
