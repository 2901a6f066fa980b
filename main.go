// This is free and unencumbered software released into the public domain.
// See the UNLICENSE file for details.

// Package main - enigma simulates the Wehrmacht Enigma I and recovers its
// daily settings from intercepted message keys with the characteristic
// method Marian Rejewski published in "How Polish Mathematicians Deciphered
// the Enigma" (Annals of the History of Computing, Volume 3, Number 3, 1981).
package main

import "github.com/bgallie/enigma/cmd"

func main() {
	cmd.Execute()
}
