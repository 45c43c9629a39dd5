package system

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Usage is a snapshot of process and host memory.
type Usage struct {
	RSS        uint64
	HostTotal  uint64
	HostUsedPc float64
}

// CurrentUsage samples the memory of the running process and the host.
func CurrentUsage() (Usage, error) {
	var u Usage

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return u, err
	}
	info, err := proc.MemoryInfo()
	if err != nil {
		return u, err
	}
	u.RSS = info.RSS

	vm, err := mem.VirtualMemory()
	if err != nil {
		return u, err
	}
	u.HostTotal = vm.Total
	u.HostUsedPc = vm.UsedPercent

	return u, nil
}

// Report is the summary printed after a batch when stats are enabled.
type Report struct {
	Build     string
	Jobs      int
	Converted int
	Cached    int
	Failed    int
	Elapsed   time.Duration
	Usage     Usage
}

func (r Report) String() string {
	perSecond := 0.0
	if r.Elapsed > 0 {
		perSecond = float64(r.Jobs) / r.Elapsed.Seconds()
	}
	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Jobs: %d (converted %d, cached %d, failed %d)\n"+
			"Total Time: %.3fs\n"+
			"Throughput: %.2f docs/s\n"+
			"Process RSS: %.1f MiB\n"+
			"Host Memory: %.1f%% of %.1f GiB\n"+
			"----------------------------\n",
		r.Build, r.Jobs, r.Converted, r.Cached, r.Failed,
		r.Elapsed.Seconds(), perSecond,
		float64(r.Usage.RSS)/(1<<20),
		r.Usage.HostUsedPc, float64(r.Usage.HostTotal)/(1<<30),
	)
}
