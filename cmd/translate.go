/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

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
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/tlpad/internal/terminal"
)

var (
	inputFile  string
	outputFile string
	copyResult bool
	speakAfter bool
	noReveal   bool
)

var translateCmd = &cobra.Command{
	Use:   "translate [text...]",
	Short: "Translate text once",
	Long: `Translate the given text, an input file or standard input.

On a terminal the result is revealed character by character. Use --copy to
put the result on the clipboard and --speak to read it aloud.

Examples:
  tlpad translate -t uk "Good morning"
  echo "Hello" | tlpad translate -s en -t es --copy
  tlpad translate -i notes.txt -o notes.fr.txt -t fr`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if inputFile != "" && inputFile == outputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		text, err := readInput(cmd.InOrStdin(), inputFile, args)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		out := cmd.OutOrStdout()
		reveal := !noReveal && outputFile == "" && isTerminal(out)

		view := terminal.New(out, cmd.ErrOrStderr(), isTerminal(cmd.ErrOrStderr()))
		opts := controllerOptions{display: view}
		if reveal {
			opts.view = view
			opts.revealInterval = appCfg.RevealInterval
		}

		ctrl, closeAll, err := newController(ctx, appCfg, opts)
		if err != nil {
			return err
		}
		defer closeAll()

		result, err := ctrl.Translate(ctx, text, appCfg.SourceLang, appCfg.TargetLang)
		if err != nil {
			return fmt.Errorf("translation failed: %w", err)
		}
		if err := ctrl.Wait(ctx); err != nil {
			return err
		}

		switch {
		case reveal:
			view.Finish()
		case outputFile != "":
			if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := os.WriteFile(outputFile, []byte(result), 0644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
		default:
			fmt.Fprintln(out, result)
		}

		if copyResult {
			if err := ctrl.Copy(ctx); err != nil {
				return err
			}
		}
		if speakAfter {
			if err := ctrl.Speak(ctx); err != nil {
				return err
			}
			if err := ctrl.Wait(ctx); err != nil {
				return err
			}
		}
		return nil
	},
}

// readInput takes text from the input file, the arguments or stdin, in that order.
func readInput(stdin io.Reader, path string, args []string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func init() {
	rootCmd.AddCommand(translateCmd)

	f := translateCmd.Flags()
	f.StringVarP(&inputFile, "input", "i", "", "Input file to translate")
	f.StringVarP(&outputFile, "output", "o", "", "Write the translation to this file")
	f.StringP("source", "s", "auto", "Source language code, or auto")
	f.StringP("target", "t", "es", "Target language code")
	f.BoolVar(&copyResult, "copy", false, "Copy the translation to the clipboard")
	f.BoolVar(&speakAfter, "speak", false, "Read the translation aloud")
	f.BoolVar(&noReveal, "no-reveal", false, "Print the result at once")
}
