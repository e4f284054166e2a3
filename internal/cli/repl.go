package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing REPL output.
var printlnFn = fmt.Println

// promptFn prints the prompt without a newline.
var promptFn = func(s string) { fmt.Fprint(os.Stdout, s) }

// execIface is the command surface the REPL drives. App implements it.
type execIface interface {
	Sites(ctx context.Context) error
	Select(ctx context.Context, id string) error
	Show(ctx context.Context) error
	Tools(ctx context.Context) error
	Use(ctx context.Context, tool string) error
	Flag(ctx context.Context) error
	Safe(ctx context.Context) error
	Dig(ctx context.Context) error
	Complete(ctx context.Context) error
	Log(ctx context.Context) error
	Artifacts(ctx context.Context) error
	Stats(ctx context.Context) error
	History(ctx context.Context) error
	Slots(ctx context.Context) error
	Guide(ctx context.Context) error
	Reset(ctx context.Context) error
	Wipe(ctx context.Context) error
}

const helpText = `Commands:
  sites              list excavation sites
  select <site-id>   start excavating a site
  show               show the email at the current layer
  tools              describe the forensics tools
  use <tool-id>      analyse the current email with a tool
  flag | safe        decide on the analysed email
  dig                go one layer deeper (documents findings at the last layer)
  complete           document findings now
  log                discoveries at this site
  artifacts          your artifact collection
  stats              experience and progress
  history            journal of completed excavations
  slots              saved games in this database
  guide              how to play
  reset              start a new game in this slot
  reset all          erase every saved game and the journal
  exit | quit        leave`

// runREPL reads one command per line and dispatches it to a. The loop ends
// on end of input, "exit"/"quit" or when ctx is cancelled. Handler errors
// are reported by the handlers themselves and do not stop the loop. The
// prompt is printed only when interactive is set.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, interactive bool) {
	lines := newLineReader(ctx, scanner)
	for {
		if interactive {
			status := statusFn()
			if status != "" {
				status = "(" + status + ") "
			}
			promptFn(fmt.Sprintf("dig %s> ", status))
		}
		line, err := lines.ReadLine(ctx)
		if err != nil {
			if ctx.Err() != nil {
				printlnFn()
				printlnFn("Interrupted. Happy digging!")
			}
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			printlnFn(helpText)

		case "sites":
			_ = a.Sites(ctx)

		case "select":
			if len(args) == 0 {
				printlnFn("Usage: select <site-id>")
				continue
			}
			_ = a.Select(ctx, args[0])

		case "show":
			_ = a.Show(ctx)

		case "tools":
			_ = a.Tools(ctx)

		case "use":
			if len(args) == 0 {
				printlnFn("Usage: use <tool-id>")
				continue
			}
			_ = a.Use(ctx, args[0])

		case "flag":
			_ = a.Flag(ctx)

		case "safe":
			_ = a.Safe(ctx)

		case "dig":
			_ = a.Dig(ctx)

		case "complete":
			_ = a.Complete(ctx)

		case "log":
			_ = a.Log(ctx)

		case "artifacts":
			_ = a.Artifacts(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "history":
			_ = a.History(ctx)

		case "slots":
			_ = a.Slots(ctx)

		case "guide":
			_ = a.Guide(ctx)

		case "reset":
			all := len(args) > 0 && strings.EqualFold(args[0], "all")
			prompt := "Erase the progress in this slot? Type 'yes' to confirm."
			if all {
				prompt = "Erase EVERY saved game and the excavation journal? Type 'yes' to confirm."
			}
			ok, err := Confirm(ctx, lines, prompt, printlnFn)
			if err != nil {
				return
			}
			if !ok {
				printlnFn("Reset cancelled.")
				continue
			}
			if all {
				_ = a.Wipe(ctx)
			} else {
				_ = a.Reset(ctx)
			}

		case "exit", "quit":
			printlnFn("Happy digging!")
			return

		default:
			printlnFn("Unknown command:", cmd, "(type 'help')")
		}
	}
}
