package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Game   GameConfig   `yaml:"game"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig 游戏配置
type GameConfig struct {
	BidTimeout   int `yaml:"bid_timeout"`   // 叫牌超时（秒）
	MoveTimeout  int `yaml:"move_timeout"`  // 出牌超时（秒）
	TableTimeout int `yaml:"table_timeout"` // 牌桌等待超时（分钟）
}

// BidTimeoutDuration 返回叫牌超时时长
func (c *GameConfig) BidTimeoutDuration() time.Duration {
	return time.Duration(c.BidTimeout) * time.Second
}

// MoveTimeoutDuration 返回出牌超时时长
func (c *GameConfig) MoveTimeoutDuration() time.Duration {
	return time.Duration(c.MoveTimeout) * time.Second
}

// TableTimeoutDuration 返回牌桌等待超时时长
func (c *GameConfig) TableTimeoutDuration() time.Duration {
	return time.Duration(c.TableTimeout) * time.Minute
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// 设置默认值
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 7000
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Game.BidTimeout == 0 {
		cfg.Game.BidTimeout = 20
	}
	if cfg.Game.MoveTimeout == 0 {
		cfg.Game.MoveTimeout = 30
	}
	if cfg.Game.TableTimeout == 0 {
		cfg.Game.TableTimeout = 10
	}

	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 7000,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Game: GameConfig{
			BidTimeout:   20,
			MoveTimeout:  30,
			TableTimeout: 10,
		},
	}
}
