package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
}

type ServerConfig struct {
	HTTPAddress    string `mapstructure:"http_address"`
	RPCAddress     string `mapstructure:"rpc_address"`
	MetricsAddress string `mapstructure:"metrics_address"`
	// PublicURL is the externally reachable base URL used for
	// join links and QR codes.
	PublicURL   string `mapstructure:"public_url"`
	Development bool   `mapstructure:"development"`
}

type DatabaseConfig struct {
	// Driver selects the persistence implementation: "gorm" or "pq".
	Driver   string         `mapstructure:"driver"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// GameConfig carries the rule knobs that are deliberately configurable
// rather than hard-coded: guess caps and the elimination auto-win are
// both settings, not constants.
type GameConfig struct {
	PoolSize             int  `mapstructure:"pool_size"`
	MaxGuesses           int  `mapstructure:"max_guesses"` // 0 = unlimited
	AutoWinByElimination bool `mapstructure:"auto_win_by_elimination"`
	TurnTimeLimitSec     int  `mapstructure:"turn_time_limit_sec"` // 0 = no limit
	RoomTTLMin           int  `mapstructure:"room_ttl_min"`
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.http_address", ":8080")
	viper.SetDefault("server.rpc_address", ":8081")
	viper.SetDefault("server.metrics_address", ":9100")
	viper.SetDefault("server.public_url", "http://localhost:8080")
	viper.SetDefault("database.driver", "gorm")
	viper.SetDefault("game.pool_size", 24)
	viper.SetDefault("game.max_guesses", 3)
	viper.SetDefault("game.auto_win_by_elimination", true)
	viper.SetDefault("game.turn_time_limit_sec", 0)
	viper.SetDefault("game.room_ttl_min", 60)

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
