package alarm

import (
	"context"
	"errors"

	"github.com/sweeney/alarm-clock/internal/logger"
	"github.com/sweeney/alarm-clock/internal/logic"
)

// InputHandler turns button events into alarm adjustments.
type InputHandler struct {
	Scheduler *Scheduler
}

// Apply increments the alarm field selected by b, persists and re-arms it,
// and records the interaction. An invalid value leaves the previous alarm in
// place; any other error is a hardware fault.
func (h *InputHandler) Apply(ctx context.Context, c logic.Context, b logic.Button) (logic.Context, error) {
	next := c.Alarm.Increment(b)

	err := h.Scheduler.Arm(ctx, next)
	switch {
	case errors.Is(err, logic.ErrInvalidAlarmTime):
		logger.WarnKV(ctx, "alarm adjustment rejected", "button", b.String(), "error", err)
	case err != nil:
		return c, err
	default:
		c = c.WithAlarm(next)
		logger.InfoKV(ctx, "alarm adjusted", "button", b.String(), "alarm", next.String())
	}

	return c.Touch(), nil
}
