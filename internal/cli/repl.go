package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Anmol09876/abacus"
	"github.com/Anmol09876/abacus/internal/config"
	"github.com/Anmol09876/abacus/internal/presentation/tui"
	"github.com/Anmol09876/abacus/pkg/domain"
	"github.com/Anmol09876/abacus/pkg/session"
	"golang.org/x/term"
)

// REPLOptions contains all the configuration for the repl command.
type REPLOptions struct {
	ConfigPath string
	SessionID  string
	Fresh      bool
	Mode       string
	LogLevel   string
	StorePath  string
	Backend    string
}

const helpText = `# Abacus

Type an expression and press enter to evaluate it.

| Command | Effect |
|---------|--------|
| ` + "`mode deg\\|rad\\|grad`" + ` | switch the angle mode |
| ` + "`ms <slot>`" + ` | store the current value (M+ accumulate) |
| ` + "`mr <slot>`" + ` | recall a slot into the input |
| ` + "`mc [slot]`" + ` | clear one slot, or all of them |
| ` + "`history`" + ` | show the calculation ledger |
| ` + "`clear`" + ` | clear the current input |
| ` + "`ac`" + ` | clear input, result and modifiers |
| ` + "`help`" + ` | this screen |
| ` + "`quit`" + ` | leave |

Functions: sin cos tan asin acos atan sinh cosh tanh log ln log2 exp
sqrt cbrt abs floor ceil round factorial pow atan2. Constants: pi, e, tau.
`

// RunREPL starts the interactive calculator loop.
func RunREPL(opts REPLOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	applyOverrides(cfg, opts)

	logger := CreateLogger(cfg.LogLevel)

	calc := abacus.New(
		abacus.WithLogger(logger),
		abacus.WithTrigMode(cfg.TrigMode()),
		abacus.WithPrecision(cfg.Precision),
		abacus.WithHistoryLimit(cfg.HistoryLimit),
		abacus.WithStrictRecall(cfg.StrictRecall),
	)

	store, closeStore, err := NewStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	sessions := session.NewManager(store,
		session.WithLogger(logger),
		session.WithDefaultMode(cfg.TrigMode()),
	)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		tui.PrintBanner(abacus.Version)
	}

	state, err := hydrateState(sigCtx, calc, sessions, opts)
	if err != nil {
		return err
	}
	persist := opts.SessionID != ""
	if persist && interactive {
		printSystemMessage("Session '%s' active.", opts.SessionID)
	}

	render := tui.NewRenderer()
	scanner := bufio.NewScanner(NewInterruptibleReader(os.Stdin, sigCtx.Done()))

	for {
		if interactive {
			fmt.Printf("%s> ", strings.ToLower(string(state.Mode)))
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		if err := dispatch(calc, state, line, render, interactive); err != nil {
			fmt.Printf("Error: %v\n", err)
		}

		if persist {
			if err := sessions.Save(sigCtx, opts.SessionID, state); err != nil {
				logger.Warn("failed to persist session", "session_id", opts.SessionID, "err", err)
			}
		}
	}

	if interactive && sigCtx.Signal() == os.Interrupt {
		fmt.Println("[CTRL+C]")
	}
	return HandleExecutionError(scanner.Err())
}

func applyOverrides(cfg *config.Config, opts REPLOptions) {
	if opts.Mode != "" {
		cfg.Mode = opts.Mode
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Backend != "" {
		cfg.Store.Backend = opts.Backend
	}
	if opts.StorePath != "" {
		cfg.Store.Path = opts.StorePath
	}
}

// hydrateState loads the persistent session, or builds a throwaway one when
// no session ID was given.
func hydrateState(ctx context.Context, calc *abacus.Calculator, sessions *session.Manager, opts REPLOptions) (*domain.State, error) {
	if opts.SessionID == "" {
		return calc.NewSession(""), nil
	}
	if opts.Fresh {
		if err := sessions.Delete(ctx, opts.SessionID); err != nil {
			return nil, fmt.Errorf("failed to reset session: %w", err)
		}
	}
	state, err := sessions.LoadOrStart(ctx, opts.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to init session: %w", err)
	}
	return state, nil
}

// dispatch interprets one REPL line as a command or an expression.
func dispatch(calc *abacus.Calculator, state *domain.State, line string, render func(string) (string, error), interactive bool) error {
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])

	switch cmd {
	case "help":
		printMarkdown(render, helpText, interactive)
		return nil

	case "history":
		printMarkdown(render, historyMarkdown(state), interactive)
		return nil

	case "mode":
		if len(fields) != 2 {
			return fmt.Errorf("usage: mode deg|rad|grad")
		}
		mode, err := domain.ParseTrigMode(fields[1])
		if err != nil {
			return err
		}
		calc.SetMode(state, mode)
		return nil

	case "ms":
		if len(fields) != 2 {
			return fmt.Errorf("usage: ms <slot>")
		}
		if err := calc.MemoryStore(state, fields[1]); err != nil {
			return err
		}
		value, _ := state.Memory.Recall(strings.ToUpper(fields[1]))
		printSystemMessage("%s = %s", strings.ToUpper(fields[1]), value)
		return nil

	case "mr":
		if len(fields) != 2 {
			return fmt.Errorf("usage: mr <slot>")
		}
		if err := calc.MemoryRecall(state, fields[1]); err != nil {
			return err
		}
		fmt.Println(state.Display)
		return nil

	case "mc":
		slot := ""
		if len(fields) > 1 {
			slot = fields[1]
		}
		return calc.MemoryClear(state, slot)

	case "clear":
		calc.Clear(state)
		return nil

	case "ac":
		calc.ClearAll(state)
		return nil
	}

	// Anything else is expression input.
	calc.Press(state, line)
	if err := calc.Calculate(state); err != nil {
		// The message the calculator shows is in the state.
		return fmt.Errorf("%s", state.Err)
	}
	fmt.Println(state.Result)
	return nil
}

func historyMarkdown(state *domain.State) string {
	if len(state.History) == 0 {
		return "_No calculations yet._\n"
	}
	var b strings.Builder
	b.WriteString("# History\n\n")
	for _, entry := range state.History {
		fmt.Fprintf(&b, "- `%s`\n", entry.Annotation)
	}
	return b.String()
}

func printMarkdown(render func(string) (string, error), markdown string, interactive bool) {
	if !interactive {
		fmt.Print(markdown)
		return
	}
	out, err := render(markdown)
	if err != nil {
		fmt.Print(markdown)
		return
	}
	fmt.Print(out)
}
