package system

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// openFilesLimit is enough for one open source per worker plus debug overlays.
const openFilesLimit = 2048

// ImageMIMEs lists the decodable screenshot formats.
var ImageMIMEs = []string{
	"image/png",
	"image/jpeg",
	"image/gif",
	"image/webp",
	"image/bmp",
}

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Warn().Err(err).Msg("cannot read open files limit")
		return
	}

	if rLimit.Cur >= openFilesLimit {
		return
	}
	rLimit.Cur = openFilesLimit
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Warn().Err(err).Msg("cannot raise open files limit")
		return
	}
	log.Debug().Uint64("limit", uint64(rLimit.Cur)).Msg("open files limit raised")
}

// DefaultWorkers returns the number of logical CPUs, falling back to
// runtime.NumCPU when gopsutil cannot tell.
func DefaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// MemoryStats is a point-in-time view of system and process memory.
type MemoryStats struct {
	TotalMB     uint64
	AvailableMB uint64
	UsedPercent float64
	HeapMB      uint64
}

func Memory() MemoryStats {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	stats := MemoryStats{HeapMB: ms.HeapAlloc >> 20}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.TotalMB = vm.Total >> 20
		stats.AvailableMB = vm.Available >> 20
		stats.UsedPercent = vm.UsedPercent
	}
	return stats
}

// IsImageMIME reports whether m is one of ImageMIMEs.
func IsImageMIME(m *mimetype.MIME) bool {
	for _, want := range ImageMIMEs {
		if m.Is(want) {
			return true
		}
	}
	return false
}

// IsImageFile sniffs the content of path; the extension is ignored.
func IsImageFile(path string) bool {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return false
	}
	return IsImageMIME(m)
}

// FindLatestImage returns the most recently modified image in dir. If path is
// a file its directory is searched.
func FindLatestImage(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	searchDir := path
	if !fi.IsDir() {
		searchDir = filepath.Dir(path)
	}

	files, err := os.ReadDir(searchDir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		full := filepath.Join(searchDir, f.Name())
		if !IsImageFile(full) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = full
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no images found in %s", searchDir)
	}

	return latestFile, nil
}
