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
	"time"

	"github.com/bgallie/enigma/rejewski"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	messageCount int
	seed         int64
)

// keysCmd represents the keys command
var keysCmd = &cobra.Command{
	Use:   "keys [secret day key]",
	Short: "Generate intercepted message key indicators",
	Long: `Generate the indicators a radio operator would have sent during one day: random
three letter message keys, each enciphered twice under the secret day key with the
configured rotor order and plugboard.  The output is suitable input for "attack".`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		keys(args)
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
	keysCmd.Flags().IntVarP(&messageCount, "count", "n", 100, "number of indicators to generate")
	keysCmd.Flags().Int64Var(&seed, "seed", 0, "seed for the message keys (default is the current time)")
}

// secretDayKey obtains the day key from either:
// 1. User input from the terminal (most secure)
// 2. The 'ENIGMA_SECRET' environment variable or config file (less secure)
// 3. Arguments from the entered command line (least secure)
func secretDayKey(args []string) string {
	var secret string
	if len(args) == 0 {
		if viper.IsSet("secret") {
			secret = viper.GetString("secret")
		} else if term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintf(os.Stderr, "Enter the day key: ")
			byteSecret, err := term.ReadPassword(int(os.Stdin.Fd()))
			cobra.CheckErr(err)
			fmt.Fprintln(os.Stderr, "")
			secret = string(byteSecret)
		}
	} else {
		secret = args[0]
	}

	if len(secret) == 0 {
		cobra.CheckErr("You must supply a day key.")
	}
	return secret
}

func keys(args []string) {
	m := newMachine(secretDayKey(args))
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	indicators, err := rejewski.MakeMessages(m, messageCount, rejewski.NewRandomSource(seed))
	cobra.CheckErr(err)

	_, fout := getInputAndOutputFiles()
	defer fout.Close()
	for _, ind := range indicators {
		fmt.Fprintln(fout, ind)
	}
}
