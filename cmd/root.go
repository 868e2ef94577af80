// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/rubynodes/blobstress/cfg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd builds the root command. run is called with the merged,
// rationalized and validated config.
func NewRootCmd(run func(cfg.Config) error) (*cobra.Command, error) {
	var configFile string
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "blobstress [flags]",
		Short: "Stress test the publisher and aggregator of a blob store",
		Long: `blobstress uploads randomly generated blobs to a publisher with bounded
concurrency, then downloads each uploaded blob twice from an aggregator to
measure cold and cached read latency. A summary is printed at the end and
optionally exported as JSON.`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(v, configFile)
			if err != nil {
				return err
			}
			return run(c)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "", "Path of a YAML config file. Flags take precedence over it.")
	if err := cfg.BindFlags(v, rootCmd.PersistentFlags()); err != nil {
		return nil, fmt.Errorf("error while binding flags: %w", err)
	}
	return rootCmd, nil
}

// loadConfig merges flags, BLOBSTRESS_* environment variables and the
// optional config file, in that order of precedence.
func loadConfig(v *viper.Viper, configFile string) (cfg.Config, error) {
	var c cfg.Config

	v.SetEnvPrefix(cfg.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return c, fmt.Errorf("error while reading the config file: %w", err)
		}
	}

	err := v.Unmarshal(&c, viper.DecodeHook(cfg.DecodeHook()), func(decoderConfig *mapstructure.DecoderConfig) {
		decoderConfig.TagName = "yaml"
	})
	if err != nil {
		return c, fmt.Errorf("error while unmarshaling the config: %w", err)
	}
	if err = cfg.Rationalize(&c); err != nil {
		return c, fmt.Errorf("error while rationalizing the config: %w", err)
	}
	if err = cfg.ValidateConfig(&c); err != nil {
		return c, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

func Execute() {
	rootCmd, err := NewRootCmd(runStressTest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "blobstress: %v\n", err)
		os.Exit(1)
	}
	if err = rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "blobstress: %v\n", err)
		os.Exit(1)
	}
}
