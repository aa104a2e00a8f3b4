package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del sniper.
type Config struct {
	Sniper    SniperConfig    `yaml:"sniper"`
	Providers ProvidersConfig `yaml:"providers"`
	Venue     VenueConfig     `yaml:"venue"`
	Journal   JournalConfig   `yaml:"journal"`
	Log       LogConfig       `yaml:"log"`
}

// SniperConfig controla el comportamiento del pipeline y la política de trading.
type SniperConfig struct {
	IntervalSeconds      int      `yaml:"interval_seconds"`
	Accounts             []string `yaml:"accounts"`
	TweetsCount          int      `yaml:"tweets_count"`
	Workers              int      `yaml:"workers"`
	MinScore             float64  `yaml:"min_score"`
	BuyAmount            float64  `yaml:"buy_amount"`             // SOL por posición
	Slippage             float64  `yaml:"slippage"`               // fracción sobre el precio de compra
	TakeProfitMultiplier float64  `yaml:"take_profit_multiplier"` // múltiplo del precio de entrada
	MoonbagFraction      float64  `yaml:"moonbag_fraction"`       // fracción que NO se vende en el take-profit
	ConfirmFills         bool     `yaml:"confirm_fills"`          // esperar fill del buy antes de mandar el sell
}

// ProvidersConfig contiene los base URLs y credenciales de los providers externos.
// Las API keys solo se cargan desde el entorno (.env o variables), nunca del YAML.
type ProvidersConfig struct {
	SolSnifferBase string `yaml:"solsniffer_base"`
	TweetScoutBase string `yaml:"tweetscout_base"`
	TwitterBase    string `yaml:"twitter_base"`

	SolSnifferKey string `yaml:"-"`
	TweetScoutKey string `yaml:"-"`
	TwitterToken  string `yaml:"-"`
}

// VenueConfig identifica el mercado contra el que se opera.
type VenueConfig struct {
	GatewayBase   string `yaml:"gateway_base"`
	MarketAddress string `yaml:"market_address"`
	Owner         string `yaml:"owner"`
}

// JournalConfig controla dónde se registra la actividad del run.
// El default ":memory:" mantiene el journal en el scope del proceso.
type JournalConfig struct {
	DSN string `yaml:"dsn"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del entorno sobreescriben los del YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return &cfg, nil
}

// ScanInterval devuelve el intervalo entre ciclos como time.Duration.
func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.Sniper.IntervalSeconds) * time.Second
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SOLSNIFFER_API_KEY"); v != "" {
		cfg.Providers.SolSnifferKey = v
	}
	if v := os.Getenv("TWEETSCOUT_API_KEY"); v != "" {
		cfg.Providers.TweetScoutKey = v
	}
	if v := os.Getenv("TWITTER_BEARER_TOKEN"); v != "" {
		cfg.Providers.TwitterToken = v
	}
	if v := os.Getenv("MARKET_ADDRESS"); v != "" {
		cfg.Venue.MarketAddress = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Sniper.IntervalSeconds <= 0 {
		cfg.Sniper.IntervalSeconds = 60
	}
	if cfg.Sniper.TweetsCount <= 0 {
		cfg.Sniper.TweetsCount = 10
	}
	if cfg.Sniper.Workers <= 0 {
		cfg.Sniper.Workers = 4
	}
	if cfg.Sniper.MinScore <= 0 {
		cfg.Sniper.MinScore = 85
	}
	if cfg.Sniper.BuyAmount <= 0 {
		cfg.Sniper.BuyAmount = 1
	}
	if cfg.Sniper.Slippage <= 0 {
		cfg.Sniper.Slippage = 0.15
	}
	if cfg.Sniper.TakeProfitMultiplier <= 0 {
		cfg.Sniper.TakeProfitMultiplier = 3
	}
	if cfg.Sniper.MoonbagFraction <= 0 {
		cfg.Sniper.MoonbagFraction = 0.15
	}
	if cfg.Providers.SolSnifferBase == "" {
		cfg.Providers.SolSnifferBase = "https://solsniffer.com"
	}
	if cfg.Providers.TweetScoutBase == "" {
		cfg.Providers.TweetScoutBase = "https://app.tweetscout.io"
	}
	if cfg.Providers.TwitterBase == "" {
		cfg.Providers.TwitterBase = "https://api.twitter.com"
	}
	if cfg.Journal.DSN == "" {
		cfg.Journal.DSN = ":memory:"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// validate rechaza configuraciones que romperían los invariantes de trading.
func validate(cfg *Config) error {
	if cfg.Sniper.MoonbagFraction < 0 || cfg.Sniper.MoonbagFraction >= 1 {
		return fmt.Errorf("moonbag_fraction %.2f fuera de rango [0, 1)", cfg.Sniper.MoonbagFraction)
	}
	if cfg.Sniper.TakeProfitMultiplier <= 1 {
		return fmt.Errorf("take_profit_multiplier %.2f debe ser > 1", cfg.Sniper.TakeProfitMultiplier)
	}
	if cfg.Sniper.Slippage < 0 {
		return fmt.Errorf("slippage %.2f debe ser >= 0", cfg.Sniper.Slippage)
	}
	return nil
}
