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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/tlpad/internal/language"
	"github.com/valpere/tlpad/internal/session"
	"github.com/valpere/tlpad/internal/terminal"
)

const sessionHelp = `Type text and press Enter to translate it. End a line with \ to continue
the text on the next line.

Commands:
  :swap         swap source and target languages (and texts, after a translation)
  :copy         copy the translation to the clipboard
  :speak        read the translation aloud
  :from <code>  set the source language (auto to use the fallback)
  :to <code>    set the target language
  :count        show the character counter
  :show         show the current source text and translation
  :help         show this help
  :quit         leave the session`

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Start an interactive translation pad",
	Long:  "Start an interactive translation pad.\n\n" + sessionHelp,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		out := cmd.OutOrStdout()
		view := terminal.New(out, cmd.ErrOrStderr(), isTerminal(cmd.ErrOrStderr()))

		ctrl, closeAll, err := newController(ctx, appCfg, controllerOptions{
			view:           view,
			display:        view,
			revealInterval: appCfg.RevealInterval,
		})
		if err != nil {
			return err
		}
		defer closeAll()

		r := &repl{ctrl: ctrl, view: view, out: out}
		return r.run(ctx, cmd.InOrStdin())
	},
}

type repl struct {
	ctrl *session.Controller
	view *terminal.View
	out  io.Writer
}

func (r *repl) prompt() {
	st := r.ctrl.Snapshot()
	fmt.Fprintf(r.out, "%s → %s> ", st.SourceLang, st.TargetLang)
}

func (r *repl) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var pending []string
	r.prompt()
	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasSuffix(line, `\`) {
			pending = append(pending, strings.TrimSuffix(line, `\`))
			fmt.Fprint(r.out, "... ")
			continue
		}
		pending = append(pending, line)
		input := strings.Join(pending, "\n")
		pending = pending[:0]

		quit, err := r.handle(ctx, input)
		if err != nil {
			return err
		}
		if quit || ctx.Err() != nil {
			return nil
		}
		r.prompt()
	}
	return scanner.Err()
}

// handle runs one command or translation. Session errors are already on the
// status banner, so only errors that end the session are returned.
func (r *repl) handle(ctx context.Context, input string) (quit bool, err error) {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, ":") {
		r.translate(ctx, input)
		return false, nil
	}

	name, arg, _ := strings.Cut(strings.TrimPrefix(trimmed, ":"), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "q", "quit", "exit":
		return true, nil
	case "h", "help":
		fmt.Fprintln(r.out, sessionHelp)
	case "swap":
		if err := r.ctrl.Swap(); err == nil {
			r.view.Finish()
			r.show()
		}
	case "copy":
		_ = r.ctrl.Copy(ctx)
	case "speak":
		_ = r.ctrl.Speak(ctx)
	case "from":
		if err := r.ctrl.SetSourceLang(arg); err != nil {
			fmt.Fprintln(r.out, err)
		}
	case "to":
		if err := r.ctrl.SetTargetLang(arg); err != nil {
			fmt.Fprintln(r.out, err)
		}
	case "count":
		fmt.Fprintln(r.out, r.ctrl.Counter().Text)
	case "show":
		r.show()
	default:
		fmt.Fprintf(r.out, "unknown command :%s (try :help)\n", name)
	}
	return false, nil
}

func (r *repl) translate(ctx context.Context, text string) {
	r.ctrl.SetSourceText(text)

	_, err := r.ctrl.Submit(ctx)
	if waitErr := r.ctrl.Wait(ctx); waitErr != nil {
		logger.Debugw("wait interrupted", "error", waitErr)
	}
	r.view.Finish()

	if err != nil && !errors.Is(err, session.ErrEmptyInput) {
		logger.Debugw("translation failed", "error", err)
	}
}

func (r *repl) show() {
	st := r.ctrl.Snapshot()
	fmt.Fprintf(r.out, "%s: %s\n", language.DisplayName(st.SourceLang), st.SourceText)
	fmt.Fprintf(r.out, "%s: %s\n", language.DisplayName(st.TargetLang), st.Output)
}

func init() {
	rootCmd.AddCommand(sessionCmd)

	sessionCmd.Flags().StringP("source", "s", "auto", "Source language code, or auto")
	sessionCmd.Flags().StringP("target", "t", "es", "Target language code")
}
