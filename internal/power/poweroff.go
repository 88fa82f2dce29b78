//go:build linux

package power

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/sweeney/alarm-clock/internal/logger"
)

// PowerOff flushes filesystems and powers the board off.
// The process needs CAP_SYS_BOOT.
type PowerOff struct{}

// Sleep powers the board off.
func (PowerOff) Sleep(ctx context.Context) error {
	logger.InfoKV(ctx, "powering off")
	unix.Sync()
	if err := unix.Reboot(unix.LINUX_REBOOT_CMD_POWER_OFF); err != nil {
		return fmt.Errorf("power off: %w", err)
	}
	return nil
}
