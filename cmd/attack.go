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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bgallie/enigma/internal/logger"
	"github.com/bgallie/enigma/rejewski"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// attackCmd represents the attack command
var attackCmd = &cobra.Command{
	Use:   "attack [indicator ...]",
	Short: "Recover the rotor order and day key from intercepted indicators",
	Long: `Recover the rotor order and day key from a day's intercepted message key
indicators.  The indicators are taken from the arguments or read, separated by
white space, from the input file.  Their chain index is looked up in the chain
dictionary written by "build" and every matching setting is listed.`,
	Run: func(cmd *cobra.Command, args []string) {
		attack(args)
	},
}

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Show the chain index of the configured day key and rotor order",
	Long: `Show the chain index produced by the configured day key and rotor order, and
the settings in the chain dictionary that share it.`,
	Run: func(cmd *cobra.Command, args []string) {
		lookup()
	},
}

func init() {
	rootCmd.AddCommand(attackCmd)
	rootCmd.AddCommand(lookupCmd)
}

// loadDictionary reads the chain dictionary named by the configuration.
func loadDictionary() *rejewski.Table {
	name := viper.GetString("dictionary")
	fin, err := os.Open(name)
	cobra.CheckErr(err)
	defer fin.Close()
	table, err := rejewski.Load(fin)
	cobra.CheckErr(err)
	logger.Info("table.load", "file", name, "indices", table.Len(), "settings", table.Settings())
	return table
}

func readIndicators(rdr io.Reader) []string {
	var indicators []string
	scanner := bufio.NewScanner(rdr)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		indicators = append(indicators, strings.ToUpper(scanner.Text()))
	}
	checkError(scanner.Err())
	return indicators
}

func showCandidates(index string, candidates []rejewski.Setting) {
	lines := []string{titleStyle.Render("chain index ") + indexStyle.Render(index)}
	if len(candidates) == 0 {
		lines = append(lines, warningStyle.Render("no setting in the dictionary produces this index"))
	} else {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("%d candidate settings (day key, rotor order):", len(candidates))))
	}
	for _, s := range candidates {
		lines = append(lines, candidateStyle.Render(s.String()))
	}
	fmt.Println(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func attack(args []string) {
	var indicators []string
	if len(args) > 0 {
		for _, a := range args {
			indicators = append(indicators, strings.ToUpper(a))
		}
	} else {
		fin, _ := getInputAndOutputFiles()
		indicators = readIndicators(fin)
	}
	table := loadDictionary()
	index, candidates, err := rejewski.Recover(table, indicators)
	cobra.CheckErr(err)
	showCandidates(index, candidates)
}

func lookup() {
	key := viper.GetString("key")
	index, err := rejewski.IndexFor(key, rotorOrder(), plugs(), rejewski.NewRandomSource(1), viper.GetInt("budget"))
	cobra.CheckErr(err)
	if _, err := os.Stat(viper.GetString("dictionary")); err != nil {
		fmt.Println(titleStyle.Render("chain index ") + indexStyle.Render(index))
		return
	}
	showCandidates(index, loadDictionary().Lookup(index))
}
