/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

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
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string
var profileMode string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fvpiso [case directory]",
	Short: "Unstructured finite-volume PISO solver for incompressible flow and scalar transport",
	Long: `
fvpiso loads a case directory (a mesh, a configuration file, and initial
field files), resolves the solver named in its general block, and runs the
matching PISO-family driver to the configured end step.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if profileMode != "" {
			stop := startProfile(profileMode)
			defer stop()
		}
		return runCase(args[0])
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fvpiso.yaml)")
	rootCmd.Flags().StringVar(&profileMode, "profile", "", "enable profiling: cpu, mem, or empty to disable")
	rootCmd.Flags().String("mesh", "", "override the case's general.mesh path")
	rootCmd.Flags().Int("start", -1, "override the case's controls.start_step")
	rootCmd.Flags().Int("end", -1, "override the case's controls.end_step")

	viper.BindPFlag("mesh", rootCmd.Flags().Lookup("mesh"))
	viper.BindPFlag("start", rootCmd.Flags().Lookup("start"))
	viper.BindPFlag("end", rootCmd.Flags().Lookup("end"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)
		viper.SetConfigName(".fvpiso")
	}

	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

func startProfile(mode string) func() {
	switch mode {
	case "cpu":
		return profile.Start(profile.CPUProfile).Stop
	case "mem":
		return profile.Start(profile.MemProfile).Stop
	default:
		return func() {}
	}
}
