package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`   // 服务器配置
	Postgres PostgresConfig `mapstructure:"postgres"` // PostgreSQL配置
	Sync     SyncConfig     `mapstructure:"sync"`     // 结果同步调度配置
	Provider ProviderConfig `mapstructure:"provider"` // 上游数据源配置
	Cache    CacheConfig    `mapstructure:"cache"`    // 缓存配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// PostgresConfig PostgreSQL数据库配置
type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// SyncConfig 结果同步调度配置
type SyncConfig struct {
	Cron     string `mapstructure:"cron"`      // 同步周期Cron表达式（默认 @every 60s）
	PageSize int    `mapstructure:"page_size"` // 每个游戏单次拉取的结果条数
	Sort     string `mapstructure:"sort"`      // 上游排序参数
	Enabled  bool   `mapstructure:"enabled"`   // 是否启用定时同步
}

// ProviderConfig 上游数据源（casinoscores）配置
type ProviderConfig struct {
	BaseURL   string `mapstructure:"base_url"`   // API基础地址
	Timeout   int    `mapstructure:"timeout"`    // 请求超时（秒）
	Proxy     string `mapstructure:"proxy"`      // 代理地址
	UserAgent string `mapstructure:"user_agent"` // User-Agent请求头
}

// CacheConfig 缓存配置（memory / redis）
type CacheConfig struct {
	Provider       string `mapstructure:"provider"`         // 缓存提供者：memory/redis
	RedisURL       string `mapstructure:"redis_url"`        // Redis连接地址
	GameResultsTTL int    `mapstructure:"game_results_ttl"` // 结果与统计缓存秒数
	BiggestWinsTTL int    `mapstructure:"biggest_wins_ttl"` // 大奖榜缓存秒数
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.RedisURL = v
	}
	if v := os.Getenv("PROVIDER_PROXY"); v != "" {
		cfg.Provider.Proxy = v
	}
}

// applyDefaults 关键字段缺省值兜底，保证最小配置也能启动
func applyDefaults(cfg *Config) {
	if cfg.Sync.Cron == "" {
		cfg.Sync.Cron = "@every 60s" // 每分钟一轮同步
	}
	if cfg.Sync.PageSize <= 0 {
		cfg.Sync.PageSize = 25
	}
	if cfg.Sync.Sort == "" {
		cfg.Sync.Sort = "data.settledAt,desc"
	}
	if cfg.Provider.Timeout <= 0 {
		cfg.Provider.Timeout = 15
	}
	if cfg.Provider.UserAgent == "" {
		cfg.Provider.UserAgent = "casino-tracker/1.0"
	}
	if cfg.Cache.Provider == "" {
		cfg.Cache.Provider = "memory"
	}
	if cfg.Cache.GameResultsTTL <= 0 {
		cfg.Cache.GameResultsTTL = 30
	}
	if cfg.Cache.BiggestWinsTTL <= 0 {
		cfg.Cache.BiggestWinsTTL = 30
	}
}
