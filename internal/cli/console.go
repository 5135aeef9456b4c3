package cli

import (
	"bufio"
	"context"
	"io"
	"strings"

	"healthbot/internal/dispatch"
	"healthbot/internal/event"
)

// runConsole reads lines until EOF or context cancellation and submits
// them as inbound events for the given account:
//
//	/name arg1 arg2   command
//	@data             callback event
//	anything else     free text
func runConsole(ctx context.Context, in io.Reader, accountID int64, d *dispatch.Dispatcher) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		d.Submit(parseConsoleLine(accountID, line))
		d.Flush()
	}
}

func parseConsoleLine(accountID int64, line string) event.Inbound {
	switch {
	case strings.HasPrefix(line, "/"):
		fields := strings.Fields(line[1:])
		if len(fields) == 0 {
			return event.NewText(accountID, line)
		}
		return event.NewCommand(accountID, fields[0], fields[1:]...)
	case strings.HasPrefix(line, "@"):
		return event.NewCallback(accountID, line[1:])
	default:
		return event.NewText(accountID, line)
	}
}
