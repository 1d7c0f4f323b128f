/*
Copyright © 2026 The findcoffee Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/findcoffee/findcoffee/internal/iofs"
	"github.com/findcoffee/findcoffee/internal/iologger"
	app "github.com/findcoffee/findcoffee/pkg"
	"github.com/findcoffee/findcoffee/pkg/config"
	"github.com/gnames/gn"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
	logger  *slog.Logger
)

// getRootCmd builds the root command with all subcommands.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "findcoffee",
		Short:   "findcoffee browses coffee recipes from a recipe server",
		Long: `findcoffee downloads the coffee recipe catalog of a recipe server,
keeps it in a local cache and lets you browse coffees, sizes, ingredients
and preparation steps offline.

Commands:
  sync     check the server and rebuild the local cache from its catalog
  list     list cached coffees, optionally filtered by a query
  show     show sizes, ingredients and steps of a coffee
  monitor  watch internet and recipe server reachability
  status   probe internet and server once and show the last sync

Configuration precedence (highest to lowest):
  1. CLI flags (--host, --port, ...)
  2. Environment variables (FINDCOFFEE_*), also read from a .env file
  3. Config file (~/.config/findcoffee/config.yaml)
  4. Built-in defaults

Environment variables use underscores for nested fields
(server.host -> FINDCOFFEE_SERVER_HOST).`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "findcoffee version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for findcoffee")

	rootCmd.PersistentFlags().StringP("host", "H", "",
		"recipe server host (default from config)")
	rootCmd.PersistentFlags().StringP("port", "p", "",
		"recipe server port (default from config)")

	rootCmd.AddCommand(
		getSyncCmd(),
		getListCmd(),
		getShowCmd(),
		getMonitorCmd(),
		getStatusCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error

	// .env is optional
	_ = godotenv.Load()

	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if logger, err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})
	cfg.Update(serverFlags(cmd))

	// Reconfigure logging with user's settings, keeping earlier records
	if logger, err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"server", cfg.Server.Host+":"+cfg.Server.Port,
		"cache", cfg.Cache.Backend,
	)

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	// a config file from an older version might miss it, and zero
	// is a valid value
	v.SetDefault("sync.min_duration", config.New().Sync.MinDuration)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Keys are bound one by one so it is clear which env variables are
	// allowed. They match the fields of config.ToOptions(), for example
	// server.host is FINDCOFFEE_SERVER_HOST.
	v.SetEnvPrefix("FINDCOFFEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	keys := []string{
		// Server configuration
		"server.host",
		"server.port",

		// Cache configuration
		"cache.backend",
		"cache.sqlite_file",
		"cache.postgres.host",
		"cache.postgres.port",
		"cache.postgres.user",
		"cache.postgres.password",
		"cache.postgres.database",
		"cache.postgres.ssl_mode",

		// Sync configuration
		"sync.probe_timeout",
		"sync.fetch_timeout",
		"sync.min_duration",

		// Monitor configuration
		"monitor.internet_url",
		"monitor.internet_interval",
		"monitor.internet_timeout",
		"monitor.server_interval",
		"monitor.server_timeout",
		"monitor.dismiss_after",

		// Log configuration
		"log.level",
		"log.format",
		"log.destination",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	v.AutomaticEnv()
}
