package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Chain      ChainConfig      `mapstructure:"chain"`
	Withdrawal WithdrawalConfig `mapstructure:"withdrawal"`
	Admin      AdminConfig      `mapstructure:"admin"`
	Log        LogConfig        `mapstructure:"log"`
}

type TelegramConfig struct {
	Token         string `mapstructure:"token"`
	UpdateTimeout int    `mapstructure:"update_timeout"` // long-poll timeout, seconds
	Debug         bool   `mapstructure:"debug"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type ChainConfig struct {
	RPCURL          string        `mapstructure:"rpc_url"`
	ChainID         int64         `mapstructure:"chain_id"`
	TokenAddress    string        `mapstructure:"token_address"`
	WalletKey       string        `mapstructure:"wallet_key"` // hot wallet private key, hex without 0x
	ExplorerBaseURL string        `mapstructure:"explorer_base_url"`
	GasLimit        uint64        `mapstructure:"gas_limit"`
	MaxFeeWei       int64         `mapstructure:"max_fee_wei"`           // cap for maxFeePerGas
	MaxPriorityWei  int64         `mapstructure:"max_priority_fee_wei"`  // cap for maxPriorityFeePerGas
	MinGasWei       int64         `mapstructure:"min_gas_balance_wei"`   // native balance floor before attempting a transfer
	RetryAttempts   int           `mapstructure:"retry_attempts"`
	RetryBaseDelay  time.Duration `mapstructure:"retry_base_delay"`
	ConfirmTimeout  time.Duration `mapstructure:"confirm_timeout"` // max wait for the receipt
}

type WithdrawalConfig struct {
	Minimum       int64         `mapstructure:"minimum"`  // smallest display unit
	Currency      string        `mapstructure:"currency"` // token symbol shown to users
	TokenPriceUSD float64       `mapstructure:"token_price_usd"`
	PendingTTL    time.Duration `mapstructure:"pending_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	NetworkFeeWei int64         `mapstructure:"network_fee_wei"` // flat fee recorded on completed withdrawals
	ClaimTTL      time.Duration `mapstructure:"claim_ttl"`       // confirm idempotency claim lifetime
}

type AdminConfig struct {
	Host  string `mapstructure:"host"`
	Port  int    `mapstructure:"port"`
	Mode  string `mapstructure:"mode"`  // debug, release, test
	Token string `mapstructure:"token"` // static bearer token for /admin routes
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: TEB_ (Token Earn Bot).
// Nested keys use underscore: TEB_TELEGRAM_TOKEN, TEB_CHAIN_RPC_URL, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.update_timeout", 30)
	v.SetDefault("telegram.debug", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "token_earn_bot")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("chain.rpc_url", "https://mainnet.base.org")
	v.SetDefault("chain.chain_id", 8453)
	v.SetDefault("chain.token_address", "")
	v.SetDefault("chain.wallet_key", "")
	v.SetDefault("chain.explorer_base_url", "https://basescan.org")
	v.SetDefault("chain.gas_limit", 65000)
	v.SetDefault("chain.max_fee_wei", 100000000)         // 0.1 gwei
	v.SetDefault("chain.max_priority_fee_wei", 10000000) // 0.01 gwei
	v.SetDefault("chain.min_gas_balance_wei", 2500000000000)
	v.SetDefault("chain.retry_attempts", 2)
	v.SetDefault("chain.retry_base_delay", "2s")
	v.SetDefault("chain.confirm_timeout", "2m")
	v.SetDefault("withdrawal.minimum", 1000)
	v.SetDefault("withdrawal.currency", "TKN")
	v.SetDefault("withdrawal.token_price_usd", 0.001)
	v.SetDefault("withdrawal.pending_ttl", "30m")
	v.SetDefault("withdrawal.sweep_interval", "10m")
	v.SetDefault("withdrawal.network_fee_wei", 1000000000000000)
	v.SetDefault("withdrawal.claim_ttl", "10m")
	v.SetDefault("admin.host", "0.0.0.0")
	v.SetDefault("admin.port", 8080)
	v.SetDefault("admin.mode", "release")
	v.SetDefault("admin.token", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: TEB_DATABASE_HOST -> database.host
	v.SetEnvPrefix("TEB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
