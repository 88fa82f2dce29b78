package power

import (
	"context"
	"io"

	"github.com/sweeney/alarm-clock/internal/logger"
)

// HardwareFault is an unrecoverable peripheral failure.
// It is never retried; the device halts until an external reset.
type HardwareFault struct {
	Op  string
	Err error
}

func (e *HardwareFault) Error() string {
	if e.Err == nil {
		return "hardware fault: " + e.Op
	}
	return "hardware fault: " + e.Op + ": " + e.Err.Error()
}

func (e *HardwareFault) Unwrap() error {
	return e.Err
}

func fault(op string, err error) error {
	return &HardwareFault{Op: op, Err: err}
}

// Halt is the single fatal-error path. It logs err, releases the given
// resources (the button lines first, so no further events arrive) and
// blocks until ctx is cancelled by a process signal. It returns err.
func Halt(ctx context.Context, err error, closers ...io.Closer) error {
	logger.ErrorKV(ctx, "halted", "error", err)
	for _, c := range closers {
		if cerr := c.Close(); cerr != nil {
			logger.WarnKV(ctx, "release after fault", "error", cerr)
		}
	}
	<-ctx.Done()
	return err
}
