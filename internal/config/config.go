package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Cache
	Workers
	Server
	Gateway
	Consumers
}

type Cache struct {
	Host     string
	Port     string
	Password string
}

type Workers struct {
	EventCount      int
	EventBufferSize int
}

type Server struct {
	Port       string
	SiteURL    string
	LogLevel   string
	AdminToken string
	SessionTTL time.Duration
}

type Gateway struct {
	WalletCurrency string
	GuestUserID    int64
}

// Consumers lists the components that can be paid for with the wallet.
// Webhook entries have the form component=baseURL.
type Consumers struct {
	Local          []string
	Webhook        map[string]string
	WalletGranting []string
	RequestTimeout time.Duration
}

func NewConfig() *Config {
	return &Config{
		Cache: Cache{
			Host:     getEnvString("CACHE_HOST", "localhost"),
			Port:     getEnvString("CACHE_PORT", "6379"),
			Password: getEnvString("CACHE_PASSWORD", ""),
		},
		Workers: Workers{
			EventCount:      getEnvInt("EVENT_WORKERS_COUNT", 2),
			EventBufferSize: getEnvInt("EVENT_WORKERS_BUFFER_SIZE", 100),
		},
		Server: Server{
			Port:       getEnvString("SERVER_PORT", "8080"),
			SiteURL:    strings.TrimRight(getEnvString("SITE_URL", "http://localhost:8080"), "/"),
			LogLevel:   getEnvString("LOG_LEVEL", "info"),
			AdminToken: getEnvString("ADMIN_TOKEN", ""),
			SessionTTL: time.Duration(getEnvInt("SESSION_TTL_MINUTES", 120)) * time.Minute,
		},
		Gateway: Gateway{
			WalletCurrency: getEnvString("WALLET_CURRENCY", ""),
			GuestUserID:    int64(getEnvInt("GUEST_USER_ID", 1)),
		},
		Consumers: Consumers{
			Local:          getEnvList("LOCAL_CONSUMERS", nil),
			Webhook:        getEnvPairs("WEBHOOK_CONSUMERS"),
			WalletGranting: getEnvList("WALLET_GRANTING_COMPONENTS", []string{"enrol_wallet", "auth_wallet", "availability_wallet"}),
			RequestTimeout: time.Duration(getEnvInt("CONSUMER_TIMEOUT_MS", 5000)) * time.Millisecond,
		},
	}
}

func getEnvString(key string, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func getEnvList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}

func getEnvPairs(key string) map[string]string {
	pairs := make(map[string]string)
	for _, item := range getEnvList(key, nil) {
		name, value, ok := strings.Cut(item, "=")
		if !ok {
			continue
		}
		pairs[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}

	return pairs
}
