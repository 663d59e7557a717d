package clipboard

import (
	"context"
	"errors"

	sysclip "github.com/atotto/clipboard"

	"selector-inspector/internal/ports"
)

var ErrUnsupported = errors.New("system clipboard is not supported on this host")

// System writes to the operating system clipboard of the machine running
// the inspector.
type System struct {
	write func(text string) error
}

var _ ports.Clipboard = (*System)(nil)

func NewSystem() (*System, error) {
	if sysclip.Unsupported {
		return nil, ErrUnsupported
	}

	return &System{write: sysclip.WriteAll}, nil
}

// WriteText returns early with ctx's error if the platform tool hangs.
func (s *System) WriteText(ctx context.Context, text string) error {
	done := make(chan error, 1)

	go func() {
		done <- s.write(text)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
