package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/aretw0/attlookup/pkg/tokenizer"
	"github.com/spf13/cobra"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file> [word...]",
	Short: "Segment words into the symbols of a transducer's alphabet",
	Long: `Prints the longest-match segmentation of each word, one word per line with
symbols separated by spaces. Words are read from stdin when none are given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		automata, err := loadFiles(cfg, args[:1])
		if err != nil {
			return err
		}

		var tok tokenizer.Tokenizer = tokenizer.FromAutomaton(automata[0])
		if nfc, _ := cmd.Flags().GetBool("nfc"); nfc {
			tok = tokenizer.Normalizing(tok)
		}
		sep, _ := cmd.Flags().GetString("separator")

		out := cmd.OutOrStdout()
		emit := func(word string) {
			fmt.Fprintln(out, strings.Join(tok.Tokenize(word), sep))
		}

		if len(args) > 1 {
			for _, word := range args[1:] {
				emit(word)
			}
			return nil
		}
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			emit(strings.TrimSuffix(scanner.Text(), "\r"))
		}
		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	tokenizeCmd.Flags().Bool("nfc", false, "Normalize words to NFC before segmenting")
	tokenizeCmd.Flags().StringP("separator", "s", " ", "Separator between symbols")
}
