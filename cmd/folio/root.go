package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/folio"
)

const envPrefix = "FOLIO"

type rootFlags struct {
	configFile string
	envFile    string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "folio",
		Short:         "folio serves a personal portfolio site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "config file (default is ./folio.yaml or ./config/folio.yaml)")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newCheckCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("name", "")
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("description", "")
	v.SetDefault("author", "")
	v.SetDefault("addr", ":3000")
	v.SetDefault("database_path", "data/folio.db")
	v.SetDefault("content_dir", "")
	v.SetDefault("watch_content", false)
	v.SetDefault("image_dir", "")
	v.SetDefault("sections", []string{})
	v.SetDefault("theme_storage", folio.StorageCookie)
	v.SetDefault("default_theme", "dark")
	v.SetDefault("session_secret", "")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("toggle_limit", 30)
	v.SetDefault("toggle_window", time.Minute)
	v.SetDefault("preference_retention", 180*24*time.Hour)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

// loadConfig layers defaults, the config file, the dotenv file and the
// environment, in increasing precedence.
func loadConfig(flags *rootFlags) (folio.SiteConfig, error) {
	if flags.envFile != "" {
		if err := godotenv.Load(flags.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return folio.SiteConfig{}, fmt.Errorf("load %s: %w", flags.envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags.configFile != "" {
		v.SetConfigFile(flags.configFile)
	} else {
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if flags.configFile != "" || !errors.As(err, &notFound) {
			return folio.SiteConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg folio.SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return folio.SiteConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
