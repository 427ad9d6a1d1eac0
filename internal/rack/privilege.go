package rack

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/quentinrf/crate-monitor/internal/domain"
)

// CheckPrivilege fails unless the process runs as root. /dev/i2c-* and the
// GPIO registers are not accessible otherwise.
func CheckPrivilege() error {
	if uid := unix.Geteuid(); uid != 0 {
		return fmt.Errorf("%w: running as uid %d", domain.ErrPrivilege, uid)
	}
	return nil
}
