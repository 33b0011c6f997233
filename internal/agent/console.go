package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// RunConsole reads queries from in and prints answers to out until EOF
// or an exit command.
func RunConsole(ctx context.Context, answerer Answerer, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Agent ready. Type a question, or `exit` to leave.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		switch strings.ToLower(query) {
		case "exit", "quit":
			return nil
		}

		answer, err := answerer.Answer(ctx, query)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		fmt.Fprintln(out, answer)
	}
}
