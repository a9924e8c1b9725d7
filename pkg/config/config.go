package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la oficina (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App   AppConfig
	JWT   JWTConfig
	HTTP  HTTPConfig
	Rules RulesConfig
	Docs  DocsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// JWTConfig configuración de JWT para ambos portales.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RulesConfig parámetros de negocio ajustables.
type RulesConfig struct {
	TrialDays          int
	NotificationTTL    time.Duration
	BudgetDeliveryDays int
	BudgetExitDays     int
}

// DocsConfig ubicación del swagger.json servido en /docs.
type DocsConfig struct {
	SwaggerFile string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde .env / config.env).
// Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "oficina-manager"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "oficina-manager"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Rules: RulesConfig{
			TrialDays:          getInt(v, "TRIAL_DAYS", 14),
			NotificationTTL:    time.Duration(getInt(v, "NOTIFICATION_TTL_SECONDS", 5)) * time.Second,
			BudgetDeliveryDays: getInt(v, "BUDGET_DELIVERY_DAYS", 7),
			BudgetExitDays:     getInt(v, "BUDGET_EXIT_DAYS", 14),
		},
		Docs: DocsConfig{
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio")
	}
	if cfg.Rules.BudgetExitDays < cfg.Rules.BudgetDeliveryDays {
		return nil, fmt.Errorf("config: BUDGET_EXIT_DAYS (%d) menor que BUDGET_DELIVERY_DAYS (%d)",
			cfg.Rules.BudgetExitDays, cfg.Rules.BudgetDeliveryDays)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
