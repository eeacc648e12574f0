/*
 * Copyright 2021 National Library of Norway.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *       http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmd

import (
	"errors"
	"fmt"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/nlnwa/warcframe/cmd/warc/cmd/cat"
	"github.com/nlnwa/warcframe/cmd/warc/cmd/ls"
	"github.com/nlnwa/warcframe/cmd/warc/cmd/pack"
	"github.com/nlnwa/warcframe/cmd/warc/cmd/validate"
	"github.com/nlnwa/warcframe/cmd/warc/cmd/watch"
	"github.com/nlnwa/warcframe/cmd/warc/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewCommand returns a new cobra.Command implementing the root command for warc
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "warc",
		Short: "Read, write and validate the record framing of WARC files",
		Long: `warc lists, prints, packs and validates uncompressed WARC files.

Settings are read from flags, from environment variables prefixed with WARC_
(e.g. WARC_MAX_CONTENT_LENGTH) and from the config file $HOME/.warc.yaml.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}
			return initLog(viper.GetString(config.LogLevel), viper.GetString(config.LogFormatter))
		},
	}

	// Flags
	cmd.PersistentFlags().String(config.ConfigFile, "", "config file (default is $HOME/.warc.yaml)")
	cmd.PersistentFlags().String(config.LogLevel, "info", "log level, available levels are panic, fatal, error, warn, info, debug and trace")
	cmd.PersistentFlags().String(config.LogFormatter, "text", "log formatter, available values are text and json")
	cmd.PersistentFlags().Int64(config.MaxContentLength, 0, "largest accepted Content-Length in bytes, 0 means no limit")
	cmd.PersistentFlags().Int(config.BufferSize, 0, "size of the read buffer in bytes, 0 means the default")
	if err := viper.BindPFlags(cmd.PersistentFlags()); err != nil {
		log.Fatalf("Failed to bind root flags: %v", err)
	}

	// Subcommands
	cmd.AddCommand(ls.NewCommand())
	cmd.AddCommand(cat.NewCommand())
	cmd.AddCommand(pack.NewCommand())
	cmd.AddCommand(validate.NewCommand())
	cmd.AddCommand(watch.NewCommand())

	return cmd
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	viper.SetEnvPrefix("WARC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	if cfgFile := viper.GetString(config.ConfigFile); cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			return err
		}

		// Search config in home directory with name ".warc" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".warc")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	return nil
}

func initLog(level, formatter string) error {
	l, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(l)

	switch formatter {
	case "text":
		log.SetFormatter(&log.TextFormatter{})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log formatter: %s", formatter)
	}
	return nil
}
