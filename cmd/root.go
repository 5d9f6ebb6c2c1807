/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/valpere/tlpad/internal/config"
	"github.com/valpere/tlpad/internal/logging"
)

var version = "0.3.0"

var (
	cfgFile string

	appCfg *config.Config
	logger = zap.NewNop().Sugar()
)

var rootCmd = &cobra.Command{
	Use:   "tlpad",
	Short: "Terminal translation pad",
	Long: `A terminal translation pad: type text, translate it through MyMemory or
Google Translate, watch the result appear, then copy it or hear it spoken.

Settings come from flags, TLPAD_* environment variables, a .env file and
$HOME/.tlpad.yaml (or ./tlpad.yaml).

Use "tlpad session" for the interactive pad and "tlpad translate --help"
for one-shot translation.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()

	// Language flags live on several subcommands; bind the running one's.
	for key, name := range map[string]string{"source_lang": "source", "target_lang": "target"} {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	if err := config.Init(v, cfgFile); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	appCfg = cfg

	l, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	logger = l

	if used := v.ConfigFileUsed(); used != "" {
		logger.Debugw("config loaded", "file", used)
	}
	return nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default $HOME/.tlpad.yaml)")
	pf.String("service", "mymemory", "Translation service: mymemory or google")
	pf.String("locale", "en", "Locale of status messages (en, uk)")
	pf.String("log-level", "warn", "Log level: debug, info, warn, error")
	pf.String("cache", "none", "Translation cache: none, memory or redis")
	pf.Bool("no-history", false, "Do not record translations in history")

	_ = viper.BindPFlag("service", pf.Lookup("service"))
	_ = viper.BindPFlag("locale", pf.Lookup("locale"))
	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("cache.backend", pf.Lookup("cache"))
}
