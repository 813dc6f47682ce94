// Package chat runs the interactive query loop on a terminal.
package chat

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/matheushmfr/gemini-mcp-client/assistants"
)

var logger = xlog.NewPackageLogger("github.com/matheushmfr/gemini-mcp-client", "chat")

// Loop reads queries from the terminal and relays them to the assistant until
// the user quits. Per-query failures are printed and the loop continues.
type Loop struct {
	assistant assistants.IAssistant
	out       io.Writer
	rl        *readline.Instance
}

// Option adjusts the terminal configuration.
type Option func(*readline.Config)

// WithTerminalIO redirects the terminal input and output and disables raw
// mode, so the loop can run over pipes and buffers in tests.
func WithTerminalIO(stdin io.ReadCloser, stdout io.Writer) Option {
	return func(c *readline.Config) {
		c.Stdin = stdin
		c.Stdout = stdout
		c.Stderr = stdout
		c.FuncIsTerminal = func() bool { return false }
		c.FuncMakeRaw = func() error { return nil }
		c.FuncExitRaw = func() error { return nil }
		c.FuncGetWidth = func() int { return 80 }
	}
}

// NewLoop creates a chat loop over the given assistant. The readline instance
// writes its prompt to stdout.
func NewLoop(assistant assistants.IAssistant, options ...Option) (*Loop, error) {
	cfg := &readline.Config{
		Prompt:          "Query: ",
		InterruptPrompt: "^C",
	}
	for _, opt := range options {
		opt(cfg)
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to initialize terminal")
	}
	return &Loop{
		assistant: assistant,
		out:       rl.Stdout(),
		rl:        rl,
	}, nil
}

// Run processes queries until the user types quit or closes the input.
func (l *Loop) Run(ctx context.Context) error {
	defer l.rl.Close()

	fmt.Fprintln(l.out, "\nMCP Client with Gemini Started!")
	fmt.Fprintln(l.out, "Type your queries or 'quit' to exit.")

	for {
		line, err := l.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.WithMessage(err, "failed to read query")
		}

		query := strings.TrimSpace(line)
		if query == "" {
			continue
		}
		if strings.EqualFold(query, "quit") || strings.EqualFold(query, "exit") {
			return nil
		}

		response, err := l.assistant.ProcessQuery(ctx, query)
		if err != nil {
			logger.ContextKV(ctx, xlog.ERROR, "reason", "process_query", "err", err.Error())
			fmt.Fprintf(l.out, "\nError: %v\n", err)
			continue
		}
		fmt.Fprintf(l.out, "\n%s\n", response)
	}
}
