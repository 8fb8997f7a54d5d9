package disk

import (
	"github.com/prometheus/procfs"
)

// ResidentMemory returns the RSS of the current process in bytes. On
// systems without procfs the result is zero.
func ResidentMemory() uint64 {
	p, err := procfs.Self()
	if err != nil {
		return 0
	}

	stat, err := p.Stat()
	if err != nil {
		return 0
	}

	return uint64(stat.ResidentMemory())
}
