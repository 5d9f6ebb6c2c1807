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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/tlpad/internal/language"
)

var remoteLanguages bool

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the language codes tlpad accepts",
	Long: `List the language codes offered for source and target selection.

With --remote the configured service is asked for its own list.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		codes := language.Supported

		if remoteLanguages {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			svc, closeSvc, err := buildService(ctx, appCfg)
			if err != nil {
				return err
			}
			defer closeSvc()

			codes, err = svc.SupportedLanguages(ctx)
			if err != nil {
				return fmt.Errorf("failed to list %s languages: %w", svc.Name(), err)
			}
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tLANGUAGE")
		fmt.Fprintf(w, "%s\t%s\n", language.Auto, language.DisplayName(language.Auto))
		for _, code := range codes {
			fmt.Fprintf(w, "%s\t%s\n", code, language.DisplayName(code))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)

	languagesCmd.Flags().BoolVar(&remoteLanguages, "remote", false, "Ask the configured service for its languages")
}
