package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Upload(ctx context.Context, path string) error
	BackendUpload(ctx context.Context, path string) error
	List(ctx context.Context) error
	Download(ctx context.Context, n int) error
	Save(ctx context.Context, n int) error
	Preview(ctx context.Context, n int) error
	Select(ctx context.Context, partnerID string) error
	Whoami(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Health(ctx context.Context) error
}

const helpText = "Available commands: upload <path>, bupload <path>, list, " +
	"download <n>, save <n>, preview <n>, select <partner>, whoami, " +
	"delete <fileId>, health, exit"

// runREPL reads a line from the scanner, parses the first token as the
// command and dispatches to methods on 'a'. Unknown commands are reported
// back. The loop exits on scanner EOF or "exit"/"quit".
//
// Errors returned by command handlers are printed and swallowed; the loop
// itself never terminates on a command failure.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("cf %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error
		switch cmd {
		case "help":
			printlnFn(helpText)

		case "upload":
			if len(args) == 0 {
				printlnFn("Usage: upload <path>")
				continue
			}
			err = a.Upload(ctx, args[0])

		case "bupload":
			if len(args) == 0 {
				printlnFn("Usage: bupload <path>")
				continue
			}
			err = a.BackendUpload(ctx, args[0])

		case "l", "list":
			err = a.List(ctx)

		case "download", "save", "preview":
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <n>", cmd))
				continue
			}
			n, convErr := strconv.Atoi(args[0])
			if convErr != nil {
				printlnFn(fmt.Sprintf("Usage: %s <n>", cmd))
				continue
			}
			switch cmd {
			case "download":
				err = a.Download(ctx, n)
			case "save":
				err = a.Save(ctx, n)
			case "preview":
				err = a.Preview(ctx, n)
			}

		case "select":
			partner := ""
			if len(args) > 0 {
				partner = args[0]
			}
			err = a.Select(ctx, partner)

		case "whoami":
			err = a.Whoami(ctx)

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <fileId>")
				continue
			}
			err = a.Delete(ctx, args[0])

		case "health":
			err = a.Health(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
