package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App        AppConfig
	DB         DBConfig
	JWT        JWTConfig
	HTTP       HTTPConfig
	Backup     BackupConfig
	Inventory  InventoryConfig
	Membership MembershipConfig
	Payroll    PayrollConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	Timezone string // zona horaria del negocio para fechas calendario
	LogLevel string
}

// Location devuelve la zona horaria configurada; UTC si no se puede cargar.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DBConfig configuración de la base de datos SQLite (un único archivo).
type DBConfig struct {
	Path          string
	BusyTimeoutMS int
}

// DSN devuelve la cadena de conexión para modernc.org/sqlite.
// _txlock=immediate hace que BEGIN tome el lock de escritura de inmediato.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_txlock=immediate&_time_format=sqlite",
		filepath.ToSlash(c.Path), c.BusyTimeoutMS,
	)
}

// JWTConfig configuración de JWT.
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

// BackupConfig respaldo del archivo de base de datos.
type BackupConfig struct {
	Dir           string
	Keep          int
	IntervalHours int // 0 = respaldo automático desactivado
}

// Interval devuelve el intervalo del respaldo automático.
func (c BackupConfig) Interval() time.Duration {
	return time.Duration(c.IntervalHours) * time.Hour
}

// InventoryConfig reglas de inventario.
type InventoryConfig struct {
	Markup          decimal.Decimal // margen sobre costo promedio (0.30 = 30%)
	LowStockDefault decimal.Decimal
}

// MembershipConfig reglas de membresías.
type MembershipConfig struct {
	ExpiringDays int
}

// PayrollConfig porcentajes y días de la nómina (LOTTT / leyes de seguridad social).
type PayrollConfig struct {
	SSORate               decimal.Decimal
	LPHRate               decimal.Decimal
	RPERate               decimal.Decimal
	SeveranceDaysPerMonth decimal.Decimal
	VacationBaseDays      int
	UtilidadesDays        decimal.Decimal
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_PATH, JWT_SECRET, etc.
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

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "gimnasio-api"),
			Timezone: getString(v, "APP_TIMEZONE", "America/Caracas"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Path:          getString(v, "DB_PATH", "gimnasio.db"),
			BusyTimeoutMS: getInt(v, "DB_BUSY_TIMEOUT_MS", 5000),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "gimnasio-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Backup: BackupConfig{
			Dir:           getString(v, "BACKUP_DIR", defaultBackupDir()),
			Keep:          getInt(v, "BACKUP_KEEP", 10),
			IntervalHours: getInt(v, "BACKUP_INTERVAL_HOURS", 0),
		},
		Inventory: InventoryConfig{
			Markup:          getDecimal(v, "INVENTORY_MARKUP", "0.30"),
			LowStockDefault: getDecimal(v, "LOW_STOCK_DEFAULT", "5"),
		},
		Membership: MembershipConfig{
			ExpiringDays: getInt(v, "MEMBERSHIP_EXPIRING_DAYS", 5),
		},
		Payroll: PayrollConfig{
			SSORate:               getDecimal(v, "PAYROLL_SSO_RATE", "0.04"),
			LPHRate:               getDecimal(v, "PAYROLL_LPH_RATE", "0.01"),
			RPERate:               getDecimal(v, "PAYROLL_RPE_RATE", "0.005"),
			SeveranceDaysPerMonth: getDecimal(v, "PAYROLL_SEVERANCE_DAYS_PER_MONTH", "5"),
			VacationBaseDays:      getInt(v, "PAYROLL_VACATION_BASE_DAYS", 15),
			UtilidadesDays:        getDecimal(v, "PAYROLL_UTILIDADES_DAYS", "30"),
		},
	}

	if cfg.Backup.Keep <= 0 {
		return nil, fmt.Errorf("BACKUP_KEEP debe ser mayor que cero")
	}
	return cfg, nil
}

// defaultBackupDir: carpeta fija dentro de Documentos del usuario.
func defaultBackupDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "backups"
	}
	return filepath.Join(home, "Documents", "GimnasioBackups")
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

func getDecimal(v *viper.Viper, key, def string) decimal.Decimal {
	raw := def
	if v.IsSet(key) {
		raw = v.GetString(key)
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.RequireFromString(def)
	}
	return d
}
