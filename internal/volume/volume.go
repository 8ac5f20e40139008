// Package volume reports capacity statistics for the volume holding a path.
package volume

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"
)

// Info describes the volume a scanned directory lives on.
type Info struct {
	// Path is the queried path.
	Path string `json:"path"`
	// Fstype is the filesystem type.
	Fstype string `json:"fstype"`
	// Total is the volume capacity in bytes.
	Total uint64 `json:"total"`
	// Free is the unused capacity in bytes.
	Free uint64 `json:"free"`
	// Used is the used capacity in bytes.
	Used uint64 `json:"used"`
	// UsedPercent is the used fraction as a percentage.
	UsedPercent float64 `json:"used_percent"`
}

// Stat returns capacity statistics for the volume containing path.
func Stat(path string) (*Info, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return nil, fmt.Errorf("querying volume usage for %q: %w", path, err)
	}

	return &Info{
		Path:        path,
		Fstype:      usage.Fstype,
		Total:       usage.Total,
		Free:        usage.Free,
		Used:        usage.Used,
		UsedPercent: usage.UsedPercent,
	}, nil
}
