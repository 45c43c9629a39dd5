package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/apex/log"
)

// SourceExt is the extension of every document the converter accepts.
const SourceExt = ".json"

// InitResourceLimits raises the open file limit so large batches and the watcher
// do not run out of descriptors.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Warnf("[!] could not read open file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Warnf("[!] could not raise open file limit: %v", err)
	} else {
		log.Debugf("[*] open file limit raised to %d", rLimit.Cur)
	}
}

// IsSource reports whether path names a convertible document.
func IsSource(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), SourceExt)
}

// FindLatestSource returns the most recently modified .json document in dir.
func FindLatestSource(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !IsSource(f.Name()) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no %s documents found in %s", SourceExt, dir)
	}

	return latestFile, nil
}

// ModulePath derives the output module path for input inside outDir. An empty
// outDir places the module next to its input.
func ModulePath(input, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	return filepath.Join(outDir, base+".js")
}
