package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"selector-inspector/internal/config"
	"selector-inspector/internal/report"
	"selector-inspector/internal/usecase"
	"selector-inspector/pkg/logg"
)

var errExit = errors.New("exit")

type Interface struct {
	config  *config.Config
	logger  *zap.Logger
	usecase *usecase.Service
	in      io.Reader
	out     io.Writer
	ctx     context.Context
	cancel  context.CancelFunc
}

type Params struct {
	fx.In

	Config  *config.Config
	Logger  *zap.Logger
	Usecase *usecase.Service
}

func NewInterface(params Params) *Interface {
	ctx, cancel := context.WithCancel(context.Background())

	return &Interface{
		config:  params.Config,
		logger:  params.Logger.With(zap.String(logg.Layer, "Console")),
		usecase: params.Usecase,
		in:      os.Stdin,
		out:     os.Stdout,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start reads commands until EOF, "exit" or Stop.
func (i *Interface) Start() error {
	i.printHelp()

	scanner := bufio.NewScanner(i.in)

	for {
		if i.ctx.Err() != nil {
			return nil
		}

		fmt.Fprint(i.out, "\n> ")

		if !scanner.Scan() {
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if err := i.handleCommand(input); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}

			i.logger.Debug("Command error", zap.Error(err))
			fmt.Fprintf(i.out, "Error: %v\n", err)
		}
	}
}

func (i *Interface) Stop() error {
	i.cancel()

	return nil
}

// Done is closed once the console has been stopped.
func (i *Interface) Done() <-chan struct{} {
	return i.ctx.Done()
}

func (i *Interface) handleCommand(input string) error {
	cmd, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "help", "h":
		i.printHelp()
		return nil
	case "exit", "quit", "q":
		fmt.Fprintln(i.out, "Shutting down...")
		return errExit
	case "open", "goto":
		if err := i.usecase.Inspector.Open(i.ctx, arg); err != nil {
			return err
		}
		fmt.Fprintf(i.out, "Opened %s. Hover elements to see their selectors.\n", arg)
		return nil
	case "describe", "d":
		entry, err := i.usecase.Inspector.Describe(i.ctx, arg)
		if err != nil {
			return err
		}
		fmt.Fprintf(i.out, "%s\t%s\t%s\n", entry.Tag, entry.Selector.Kind, entry.Selector.Text)
		fmt.Fprintf(i.out, "path\t%s\n", entry.Path)
		return nil
	case "snapshot", "s":
		filter := report.Interactive
		switch {
		case arg == "all":
			filter = report.Visible
		case arg != "":
			filter = report.Tags(strings.Split(arg, ",")...)
		}
		snap, err := i.usecase.Inspector.Snapshot(i.ctx, filter)
		if err != nil {
			return err
		}
		return report.Write(i.out, snap, report.FormatText)
	default:
		return fmt.Errorf("unknown command %q, type help", cmd)
	}
}

func (i *Interface) printHelp() {
	help := `
Available commands:
  open <url>              - Navigate the inspected page
  describe <css>          - Infer the selector of the first element matching <css>
  snapshot [all|tag,...]  - Infer selectors for interactive (or all, or listed) elements
  help, h                 - Show this help message
  exit, quit, q           - Exit the application

Hover any element in the browser window to see its selector.
Press ` + i.config.OverlayConfig.CopyShortcut + ` to copy it.
`
	fmt.Fprintln(i.out, help)
}
