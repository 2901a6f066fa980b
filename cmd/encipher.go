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
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var groupSize int

// encipherCmd represents the encipher command
var encipherCmd = &cobra.Command{
	Use:   "encipher [message ...]",
	Short: "Encipher a message with the Enigma",
	Long: `Encipher a message with the Enigma set to the configured day key, rotor order
and plugboard.  The message is taken from the arguments, or read line by line
from the input file.  Only the letters a-z, A-Z and spaces are allowed.`,
	Run: func(cmd *cobra.Command, args []string) {
		encipher(args)
	},
}

// decipherCmd represents the decipher command
var decipherCmd = &cobra.Command{
	Use:   "decipher [message ...]",
	Short: "Decipher a message with the Enigma",
	Long: `Decipher a message with the Enigma.  The machine is its own inverse: set it to
the key the message was enciphered with and encipher the cipher text again.`,
	Run: func(cmd *cobra.Command, args []string) {
		encipher(args)
	},
}

func init() {
	rootCmd.AddCommand(encipherCmd)
	rootCmd.AddCommand(decipherCmd)
	encipherCmd.Flags().IntVarP(&groupSize, "groups", "g", 0, "write the output in groups of this many letters")
	decipherCmd.Flags().IntVarP(&groupSize, "groups", "g", 0, "write the output in groups of this many letters")
}

// group splits text into space separated groups of n letters.
func group(text string, n int) string {
	if n <= 0 || len(text) <= n {
		return text
	}
	var out strings.Builder
	for i := 0; i < len(text); i += n {
		if i > 0 {
			out.WriteByte(' ')
		}
		end := i + n
		if end > len(text) {
			end = len(text)
		}
		out.WriteString(text[i:end])
	}
	return out.String()
}

func encipher(args []string) {
	m := newMachine(viper.GetString("key"))
	if len(args) > 0 {
		out, err := m.Encipher(strings.Join(args, " "))
		cobra.CheckErr(err)
		fmt.Println(group(out, groupSize))
		return
	}

	fin, fout := getInputAndOutputFiles()
	defer fout.Close()
	if fin == os.Stdin && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "Enter the message, one line at a time (Ctrl-D to end):")
	}
	// The rotors keep turning from one line to the next.
	scanner := bufio.NewScanner(fin)
	for scanner.Scan() {
		out, err := m.Encipher(scanner.Text())
		cobra.CheckErr(err)
		fmt.Fprintln(fout, group(out, groupSize))
	}
	checkError(scanner.Err())
}
