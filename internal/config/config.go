package config

import (
	"fmt"
	"os"
	"path/filepath"
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
	ERP          ERP          `mapstructure:",squash"`
	Workboard    Workboard    `mapstructure:",squash"`
	Aggregation  Aggregation  `mapstructure:",squash"`
	SnapshotSync SnapshotSync `mapstructure:",squash"`
	Cache        Cache        `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN          string `mapstructure:"-"`
	Driver       string `mapstructure:"database_driver"`
	Password     string `mapstructure:"database_password"`
	URL          string `mapstructure:"database_url"`
	User         string `mapstructure:"database_user"`
	MaxOpenConns int    `mapstructure:"database_max_open_conns"`
}

// ERP é a API financeira de onde vêm as contas a receber e a pagar
type ERP struct {
	URL        string        `mapstructure:"erp_url"`
	AppKey     string        `mapstructure:"erp_app_key"`
	AppSecret  string        `mapstructure:"erp_app_secret"`
	PageSize   int           `mapstructure:"erp_page_size"`
	MaxPages   int           `mapstructure:"erp_max_pages"`
	Timeout    time.Duration `mapstructure:"erp_timeout"`
	MaxRetries int           `mapstructure:"erp_max_retries"`
	RetryDelay time.Duration `mapstructure:"erp_retry_delay"`
}

// Workboard é o quadro de acompanhamento de onde vêm os snapshots mensais de indicadores
type Workboard struct {
	URL     string        `mapstructure:"workboard_url"`
	Token   string        `mapstructure:"workboard_token"`
	Timeout time.Duration `mapstructure:"workboard_timeout"`
}

type Aggregation struct {
	MaxConcurrency    int           `mapstructure:"aggregation_max_concurrency"`
	MaxRetries        int           `mapstructure:"aggregation_max_retries"`
	RetryDelay        time.Duration `mapstructure:"aggregation_retry_delay"`
	DedupWindow       time.Duration `mapstructure:"aggregation_dedup_window"`
	SessionTTL        time.Duration `mapstructure:"session_ttl"`
	SessionMaxEntries int           `mapstructure:"session_max_entries"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type SnapshotSync struct {
	CronSchedule        string `mapstructure:"snapshot_sync_cron"`
	Enabled             bool   `mapstructure:"snapshot_sync_enabled"`
	MonthLookBack       int    `mapstructure:"snapshot_sync_month_lookback"`
	RequestDelaySeconds int    `mapstructure:"snapshot_sync_request_delay_seconds"`
	RetentionMonths     int    `mapstructure:"snapshot_sync_retention_months"`
}

type Cache struct {
	SnapshotCacheEnabled bool `mapstructure:"snapshot_cache_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/indicadores?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)

	viper.SetDefault("ERP_URL", "https://app.omie.com.br/api/v1")
	viper.SetDefault("ERP_APP_KEY", "your_app_key")
	viper.SetDefault("ERP_APP_SECRET", "your_app_secret")
	viper.SetDefault("ERP_PAGE_SIZE", 500)
	viper.SetDefault("ERP_MAX_PAGES", 20)
	viper.SetDefault("ERP_TIMEOUT", "30s")
	viper.SetDefault("ERP_MAX_RETRIES", 2)       // 2 novas tentativas por página
	viper.SetDefault("ERP_RETRY_DELAY", "500ms") // espera linear entre tentativas

	viper.SetDefault("WORKBOARD_URL", "http://localhost:8081/api")
	viper.SetDefault("WORKBOARD_TOKEN", "your_token")
	viper.SetDefault("WORKBOARD_TIMEOUT", "15s")

	// Defaults para a agregação de indicadores
	viper.SetDefault("AGGREGATION_MAX_CONCURRENCY", 4)   // 4 meses buscados ao mesmo tempo
	viper.SetDefault("AGGREGATION_MAX_RETRIES", 2)       // 2 novas tentativas por mês
	viper.SetDefault("AGGREGATION_RETRY_DELAY", "500ms") // espera linear entre tentativas
	viper.SetDefault("AGGREGATION_DEDUP_WINDOW", "5s")   // mesma consulta em até 5s reaproveita o resultado
	viper.SetDefault("SESSION_TTL", "30m")               // sessão expira após 30 minutos sem uso
	viper.SetDefault("SESSION_MAX_ENTRIES", 1000)        // máximo de sessões em memória

	// Defaults para pré-carga de snapshots
	viper.SetDefault("SNAPSHOT_SYNC_CRON", "0 5 * * *")        // Todos os dias às 5h da manhã
	viper.SetDefault("SNAPSHOT_SYNC_ENABLED", false)           // Habilitar pré-carga de snapshots
	viper.SetDefault("SNAPSHOT_SYNC_MONTH_LOOKBACK", 12)       // 12 meses fechados
	viper.SetDefault("SNAPSHOT_SYNC_REQUEST_DELAY_SECONDS", 1) // 1 segundo entre requisições
	viper.SetDefault("SNAPSHOT_SYNC_RETENTION_MONTHS", 36)     // snapshots mais antigos são removidos

	viper.SetDefault("SNAPSHOT_CACHE_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
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
