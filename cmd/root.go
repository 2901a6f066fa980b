/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

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
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bgallie/enigma/enigma"
	"github.com/bgallie/enigma/internal/logger"
	"github.com/bgallie/enigma/rejewski"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile        string
	verbose        bool
	debug          bool
	jsonLog        bool
	inputFileName  string
	outputFileName string
	GitCommit      string = "not set"
	GitBranch      string = "not set"
	GitState       string = "not set"
	GitSummary     string = "not set"
	BuildDate      string = "not set"
	Version        string = "dev"
)

const (
	dictionaryFile = ".enigma-chains"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "enigma",
	Short: "An Enigma I simulator and Rejewski chain attack",
	Long: `enigma simulates the three rotor Enigma I with reflector B and a plugboard,
and recovers rotor orders and day keys from intercepted message key indicators
with Marian Rejewski's characteristic (chain) method.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SetVersionTemplate(fmt.Sprintf("enigma {{.Version}}\n  branch: %s\n  commit: %s (%s)\n  state:  %s\n  built:  %s\n",
		GitBranch, GitCommit, GitSummary, GitState, BuildDate))
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.enigma.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "include debug messages in the log")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "log as JSON instead of text")
	rootCmd.PersistentFlags().StringP("key", "k", enigma.DefaultKey, "the day key (rotor start position), left to right")
	rootCmd.PersistentFlags().StringP("rotors", "r", strings.Join(enigma.DefaultRotorOrder, ","), "the rotor order, left to right")
	rootCmd.PersistentFlags().StringP("plugs", "s", "", "plugboard swaps, e.g. \"AB CD EF\"")
	rootCmd.PersistentFlags().StringP("dictionary", "d", "", "the chain dictionary file (default is $HOME/"+dictionaryFile+")")
	rootCmd.PersistentFlags().StringVarP(&inputFileName, "inputFile", "i", "-", "Name of the file to read.")
	rootCmd.PersistentFlags().StringVarP(&outputFileName, "outputFile", "o", "", "Name of the file to write.")
	for _, name := range []string{"key", "rotors", "plugs", "dictionary"} {
		cobra.CheckErr(viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search config in home directory with name ".enigma" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".enigma")
	}

	viper.SetDefault("dictionary", filepath.Join(home, dictionaryFile))
	viper.SetDefault("workers", runtime.NumCPU())
	viper.SetDefault("budget", rejewski.DefaultBudget)
	viper.SetEnvPrefix("ENIGMA")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func initLogger() {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger.Init(logger.Options{Enabled: verbose, Level: level, JSON: jsonLog})
}

// splitList splits a flag or config value on commas and white space.
func splitList(s string) []string {
	return strings.FieldsFunc(strings.ToUpper(s), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

func rotorOrder() []string {
	return splitList(viper.GetString("rotors"))
}

func plugs() []string {
	return splitList(viper.GetString("plugs"))
}

// newMachine builds the machine described by the flags, the environment and
// the config file, in that order of precedence.
func newMachine(key string) *enigma.Machine {
	m, err := enigma.New(key, rotorOrder(), plugs())
	cobra.CheckErr(err)
	logger.Debug("machine", "config", m.String())
	return m
}

/*
	getInputAndOutputFiles will return the input and output files to use.  If
	input and/or output files names were given, then those files will be
	opened.  Otherwise stdin and stdout are used.
*/
func getInputAndOutputFiles() (*os.File, *os.File) {
	var fin *os.File
	var err error

	if len(inputFileName) > 0 && inputFileName != "-" {
		fin, err = os.Open(inputFileName)
		cobra.CheckErr(err)
	} else {
		fin = os.Stdin
	}

	var fout *os.File

	if len(outputFileName) > 0 && outputFileName != "-" {
		fout, err = os.Create(outputFileName)
		cobra.CheckErr(err)
	} else {
		fout = os.Stdout
	}
	return fin, fout
}

// checkError checks for error that are not io.EOF and io.ErrUnexpectedEOF and reports them.
func checkError(e error) {
	if e != nil && e != io.EOF && e != io.ErrUnexpectedEOF {
		cobra.CheckErr(e)
	}
}
