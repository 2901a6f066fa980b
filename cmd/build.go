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
	"os"
	"strings"

	"github.com/bgallie/enigma/cryptors/rotor"
	"github.com/bgallie/enigma/internal/logger"
	"github.com/bgallie/enigma/rejewski"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	useASCII85  bool
	usePem      bool
	compression bool
	withV       bool
	buildSeed   int64
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the chain dictionary",
	Long: `Build the chain dictionary: run every day key AAA-ZZZ with every rotor order
through the Enigma, derive the AD, BE and CF permutations from doubly enciphered
message keys and record the setting under the chain index of those permutations.`,
	Run: func(cmd *cobra.Command, args []string) {
		build()
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolVarP(&useASCII85, "useASCII85", "a", false, "use ASCII85 encoding")
	buildCmd.Flags().BoolVarP(&usePem, "usePem", "p", false, "use PEM encoding.")
	buildCmd.Flags().BoolVarP(&compression, "compress", "c", false, "compress the dictionary using flate")
	buildCmd.Flags().BoolVar(&withV, "with-v", false, "include rotor V in the rotor orders")
	buildCmd.Flags().Int64Var(&buildSeed, "seed", 1, "seed for the message keys")
	buildCmd.Flags().IntP("workers", "w", 0, "number of worker goroutines (default is the number of CPUs)")
	buildCmd.Flags().IntP("budget", "b", rejewski.DefaultBudget, "message keys to try per setting before giving up")
	cobra.CheckErr(viper.BindPFlag("workers", buildCmd.Flags().Lookup("workers")))
	cobra.CheckErr(viper.BindPFlag("budget", buildCmd.Flags().Lookup("budget")))
}

func build() {
	types := rejewski.DefaultRotorTypes
	if withV {
		types = rotor.Types()
	}
	b := &rejewski.Builder{
		Orders:  rejewski.RotorOrders(types),
		Workers: viper.GetInt("workers"),
		Budget:  viper.GetInt("budget"),
		Seed:    buildSeed,
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		b.Progress = progressLine
	}
	res, err := b.Build()
	if b.Progress != nil {
		fmt.Fprintln(os.Stderr)
	}
	cobra.CheckErr(err)

	for _, s := range res.Unresolved {
		fmt.Fprintln(os.Stderr, warningStyle.Render("unresolved: "+s.String()))
	}

	opts := rejewski.SaveOptions{Format: rejewski.Binary, Compress: compression}
	if usePem {
		opts.Format = rejewski.PEM
	} else if useASCII85 {
		opts.Format = rejewski.ASCII85
	}
	name := viper.GetString("dictionary")
	fout, err := os.Create(name)
	cobra.CheckErr(err)
	defer fout.Close()
	cobra.CheckErr(rejewski.Save(fout, res.Table, opts))
	logger.Info("table.save", "file", name, "indices", res.Table.Len())

	fmt.Fprintf(os.Stderr, "%s %d settings, %d chain indices, %d unresolved -> %s\n",
		titleStyle.Render("built"), res.Combinations, res.Table.Len(), len(res.Unresolved), name)
}

// progressLine redraws the build progress in place.
func progressLine(done, total int) {
	if done%100 != 0 && done != total {
		return
	}
	const width = 40
	filled := done * width / total
	bar := barStyle.Render(fmt.Sprintf("%-*s", width, strings.Repeat("#", filled)))
	fmt.Fprintf(os.Stderr, "\r%s %s %s", titleStyle.Render("building"), bar,
		mutedStyle.Render(fmt.Sprintf("%d/%d (%.1f%%)", done, total, float64(done)*100/float64(total))))
}
