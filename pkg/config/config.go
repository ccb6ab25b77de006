package config

import (
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la herramienta de pricing (lectura
// vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Pricing PricingConfig
}

// AppConfig configuración general.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// PricingConfig valores por defecto de un build cuando el request no
// los trae: moneda, precisión, locale y política de orden
// descuento/impuesto. El núcleo no lee esta configuración: se convierte
// en el Settings que se inyecta en cada build.
type PricingConfig struct {
	Currency          string // ISO-4217 (ej: COP, USD)
	CurrencyPrecision int    // dígitos decimales de la moneda
	Locale            string // BCP-47 para descripciones (es, en)
	DiscountBeforeTax bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente
// desde archivo). Las env vars tienen prioridad. Nombres esperados:
// APP_ENV, PRICING_CURRENCY, PRICING_LOCALE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "billing-pro"),
			LogLevel: getString(v, "APP_LOG_LEVEL", "info"),
		},
		Pricing: PricingConfig{
			Currency:          getString(v, "PRICING_CURRENCY", "COP"),
			CurrencyPrecision: getInt(v, "PRICING_CURRENCY_PRECISION", 2),
			Locale:            getString(v, "PRICING_LOCALE", "es"),
			DiscountBeforeTax: getBool(v, "PRICING_DISCOUNT_BEFORE_TAX", true),
		},
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
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
