package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Warehouse    Warehouse    `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	Rotation     Rotation     `mapstructure:",squash"`
	RegistrySync RegistrySync `mapstructure:",squash"`
}

type Server struct {
	Host              string   `mapstructure:"host"`
	Port              string   `mapstructure:"port"`
	AllowedOrigins    []string `mapstructure:"-"`
	AllowedOriginsRaw string   `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	Path     string `mapstructure:"database_path"` // usado apenas com sqlite3
}

type Warehouse struct {
	DSN      string `mapstructure:"-"`
	Server   string `mapstructure:"warehouse_server"`
	Name     string `mapstructure:"warehouse_name"`
	User     string `mapstructure:"warehouse_user"`
	Password string `mapstructure:"warehouse_password"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret               string        `mapstructure:"auth_secret"`
	OperatorUser         string        `mapstructure:"auth_operator_user"`
	OperatorPasswordHash string        `mapstructure:"auth_operator_password_hash"`
	ViewerUser           string        `mapstructure:"auth_viewer_user"` // opcional, acesso somente leitura
	ViewerPasswordHash   string        `mapstructure:"auth_viewer_password_hash"`
	TokenTTL             time.Duration `mapstructure:"auth_token_ttl"`
}

type Rotation struct {
	PerPersonCap              int       `mapstructure:"rotation_per_person_cap"`
	CutoffDays                int       `mapstructure:"rotation_cutoff_days"`
	DistributionCodes         []int     `mapstructure:"-"`
	DistributionCodesRaw      string    `mapstructure:"rotation_distribution_codes"`
	DefaultTransferDate       time.Time `mapstructure:"-"`
	DefaultTransferDateRaw    string    `mapstructure:"rotation_default_transfer_date"`
	OutputDir                 string    `mapstructure:"rotation_output_dir"`
	RandomSeed                int64     `mapstructure:"rotation_random_seed"`
	CumulativeLogFile         string    `mapstructure:"rotation_cumulative_log_file"`
	ReferenceSheetName        string    `mapstructure:"rotation_reference_sheet"`
	MaxReferenceUploadSizeMiB int64     `mapstructure:"rotation_max_reference_upload_mib"`
}

type RegistrySync struct {
	CronSchedule string `mapstructure:"registry_sync_cron"`
	Enabled      bool   `mapstructure:"registry_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8501")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/rotation?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_PATH", "rotation.db")

	viper.SetDefault("WAREHOUSE_SERVER", "localhost")
	viper.SetDefault("WAREHOUSE_NAME", "grupofort")
	viper.SetDefault("WAREHOUSE_USER", "sa")
	viper.SetDefault("WAREHOUSE_PASSWORD", "")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_OPERATOR_USER", "operador")
	viper.SetDefault("AUTH_OPERATOR_PASSWORD_HASH", "")
	viper.SetDefault("AUTH_VIEWER_USER", "")
	viper.SetDefault("AUTH_VIEWER_PASSWORD_HASH", "")
	viper.SetDefault("AUTH_TOKEN_TTL", "12h")

	// Defaults da rotação de carteiras
	viper.SetDefault("ROTATION_PER_PERSON_CAP", 50)                 // Máximo de contas por vendedor em cada rodada
	viper.SetDefault("ROTATION_CUTOFF_DAYS", 180)                   // 6 meses de 30 dias
	viper.SetDefault("ROTATION_DISTRIBUTION_CODES", "5,7")          // Classificações roteadas para Distribuição
	viper.SetDefault("ROTATION_DEFAULT_TRANSFER_DATE", "2025-03-20") // Data de entrada quando a referência não informa
	viper.SetDefault("ROTATION_OUTPUT_DIR", "Relatorio_Rotacao")
	viper.SetDefault("ROTATION_RANDOM_SEED", 0) // 0 = semente baseada no relógio
	viper.SetDefault("ROTATION_CUMULATIVE_LOG_FILE", "historico_rotacoes_completo.xlsx")
	viper.SetDefault("ROTATION_REFERENCE_SHEET", "Planilha1")
	viper.SetDefault("ROTATION_MAX_REFERENCE_UPLOAD_MIB", 20)

	viper.SetDefault("REGISTRY_SYNC_CRON", "0 7 * * *") // Todos os dias às 7h da manhã
	viper.SetDefault("REGISTRY_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.resolve(); err != nil {
		return nil, err
	}

	return config, nil
}

// resolve preenche os campos derivados a partir dos valores brutos
func (c *Config) resolve() error {
	switch c.Database.Driver {
	case "sqlite3":
		c.Database.DSN = c.Database.Path
	default:
		c.Database.DSN = fmt.Sprintf(
			"%s://%s:%s@%s",
			c.Database.Driver,
			c.Database.User,
			c.Database.Password,
			c.Database.URL,
		)
	}

	c.Warehouse.DSN = fmt.Sprintf(
		"sqlserver://%s:%s@%s?database=%s",
		c.Warehouse.User,
		c.Warehouse.Password,
		c.Warehouse.Server,
		c.Warehouse.Name,
	)

	c.Server.AllowedOrigins = make([]string, 0)
	for _, origin := range strings.Split(c.Server.AllowedOriginsRaw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			c.Server.AllowedOrigins = append(c.Server.AllowedOrigins, origin)
		}
	}

	codes, err := ParseCodes(c.Rotation.DistributionCodesRaw)
	if err != nil {
		return fmt.Errorf("ROTATION_DISTRIBUTION_CODES inválido: %w", err)
	}
	c.Rotation.DistributionCodes = codes

	if c.Rotation.DefaultTransferDateRaw != "" {
		date, err := time.ParseInLocation(time.DateOnly, c.Rotation.DefaultTransferDateRaw, time.Local)
		if err != nil {
			return fmt.Errorf("ROTATION_DEFAULT_TRANSFER_DATE inválido: %w", err)
		}
		c.Rotation.DefaultTransferDate = date
	}

	if c.Rotation.PerPersonCap < 0 {
		return fmt.Errorf("ROTATION_PER_PERSON_CAP não pode ser negativo: %d", c.Rotation.PerPersonCap)
	}

	return nil
}

// ParseCodes converte uma lista separada por vírgula ("5,7") em inteiros
func ParseCodes(raw string) ([]int, error) {
	codes := make([]int, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		code, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}

	return codes, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
