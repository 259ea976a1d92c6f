// SPDX-License-Identifier: EPL-2.0

// Package main provides the audseq CLI.
//
// Usage:
//
//	audseq [flags] <command> [args]
//
// Commands:
//
//	normalize - decode, resample, fix duration and RMS-normalize a
//	            directory of audio files into 16-bit WAV
//	train     - build an MFCC corpus from a directory and train the
//	            sequence autoencoder
//	version   - print the build version
package main

import (
	"fmt"
	"os"

	"github.com/ik5/audseq/cmd/audseq/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
