package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Endpoints billService publicados por SUNAT.
const (
	SunatURLBeta = "https://e-beta.sunat.gob.pe/ol-ti-itcpfegem-beta/billService"
	SunatURLProd = "https://e-factura.sunat.gob.pe/ol-ti-itcpfegem/billService"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	SUNAT   SUNATConfig
	Empresa EmpresaConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// JWTConfig configuración de JWT. Secret vacío deja la API sin autenticación.
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

// SUNATConfig configuración del servicio billService.
type SUNATConfig struct {
	Environment    string // "beta" o "prod"
	URL            string // override explícito del endpoint (tiene prioridad sobre Environment)
	MaxAttempts    int
	RetryDelay     time.Duration
	TimeoutSeconds int // presupuesto total del envío, reintentos incluidos
}

// Endpoint devuelve la URL efectiva del billService.
func (c SUNATConfig) Endpoint() string {
	if c.URL != "" {
		return c.URL
	}
	if strings.EqualFold(c.Environment, "prod") {
		return SunatURLProd
	}
	return SunatURLBeta
}

// Timeout devuelve el presupuesto total del envío.
func (c SUNATConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// EmpresaConfig datos del emisor usados cuando la petición no los trae.
type EmpresaConfig struct {
	RUC             string
	RazonSocial     string
	NombreComercial string
	Direccion       string
	Ubigeo          string
	Departamento    string
	Provincia       string
	Distrito        string
	UsuarioSOL      string
	ClaveSOL        string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, SUNAT_ENV, EMPRESA_RUC, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "facturacion-sunat"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "facturacion-sunat"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		SUNAT: SUNATConfig{
			Environment:    strings.ToLower(getString(v, "SUNAT_ENV", "beta")),
			URL:            getString(v, "SUNAT_URL", ""),
			MaxAttempts:    getInt(v, "SUNAT_MAX_ATTEMPTS", 3),
			RetryDelay:     time.Duration(getInt(v, "SUNAT_RETRY_DELAY_MS", 2000)) * time.Millisecond,
			TimeoutSeconds: getInt(v, "SUNAT_TIMEOUT_SECONDS", 120),
		},
		Empresa: EmpresaConfig{
			RUC:             getString(v, "EMPRESA_RUC", ""),
			RazonSocial:     getString(v, "EMPRESA_RAZON_SOCIAL", ""),
			NombreComercial: getString(v, "EMPRESA_NOMBRE_COMERCIAL", ""),
			Direccion:       getString(v, "EMPRESA_DIRECCION", ""),
			Ubigeo:          getString(v, "EMPRESA_UBIGEO", ""),
			Departamento:    getString(v, "EMPRESA_DEPARTAMENTO", ""),
			Provincia:       getString(v, "EMPRESA_PROVINCIA", ""),
			Distrito:        getString(v, "EMPRESA_DISTRITO", ""),
			UsuarioSOL:      getString(v, "EMPRESA_USUARIO_SOL", ""),
			ClaveSOL:        getString(v, "EMPRESA_CLAVE_SOL", ""),
		},
	}

	if cfg.SUNAT.Environment != "beta" && cfg.SUNAT.Environment != "prod" {
		return nil, fmt.Errorf("config: SUNAT_ENV %q no válido (usar 'beta' o 'prod')", cfg.SUNAT.Environment)
	}
	if cfg.SUNAT.MaxAttempts < 1 {
		return nil, fmt.Errorf("config: SUNAT_MAX_ATTEMPTS debe ser mayor que cero")
	}
	if cfg.SUNAT.TimeoutSeconds < 1 {
		return nil, fmt.Errorf("config: SUNAT_TIMEOUT_SECONDS debe ser mayor que cero")
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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
