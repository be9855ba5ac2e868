package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type api struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type telegram struct {
	APIURL   string        `mapstructure:"api_url"`
	BotToken string        `mapstructure:"bot_token"`
	ChatID   string        `mapstructure:"chat_id"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type Config struct {
	LogLevel         slog.Level `mapstructure:"log_level"`
	StatePath        string     `mapstructure:"state_path"`
	PlaceholderImage string     `mapstructure:"placeholder_image"`
	API              api        `mapstructure:"api"`
	Telegram         telegram   `mapstructure:"telegram"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q
	StatePath=%q
	PlaceholderImage=%q

	API:
	BaseURL=%q
	Timeout=%q

	Telegram:
	APIURL=%q
	ChatID=%q
	Timeout=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.StatePath,
		c.PlaceholderImage,
		c.API.BaseURL,
		c.API.Timeout,
		c.Telegram.APIURL,
		c.Telegram.ChatID,
		c.Telegram.Timeout,
	)
}
