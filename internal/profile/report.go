package profile

import (
	"io"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// A Summary reports the results of a profiling run.
type Summary struct {
	Results []Result
	Elapsed time.Duration
	RSS     uint64 // resident memory at the end of the run, 0 if unknown
}

// HasErrors reports whether any file in s failed to parse.
func (s *Summary) HasErrors() bool {
	for _, r := range s.Results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Totals returns the sums of the byte, value, and element counts of s.
func (s *Summary) Totals() (bytes int64, values, elements int) {
	for _, r := range s.Results {
		bytes += r.Bytes
		values += r.Values
		elements += r.Elements
	}
	return
}

// Write writes a human-readable report of s to w.
func (s *Summary) Write(w io.Writer) error {
	p := message.NewPrinter(language.English)
	for _, r := range s.Results {
		var err error
		if r.Err != nil {
			_, err = p.Fprintf(w, "%s: error: %v\n", r.File, r.Err)
		} else {
			_, err = p.Fprintf(w, "%s: %d bytes, %d values, %d elements in %v (%.1f MB/s)\n",
				r.File, r.Bytes, r.Values, r.Elements, r.Elapsed.Round(time.Microsecond), throughput(r.Bytes, r.Elapsed))
		}
		if err != nil {
			return err
		}
	}
	bytes, values, elements := s.Totals()
	if _, err := p.Fprintf(w, "total: %d files, %d bytes, %d values, %d elements in %v (%.1f MB/s)\n",
		len(s.Results), bytes, values, elements, s.Elapsed.Round(time.Microsecond), throughput(bytes, s.Elapsed)); err != nil {
		return err
	}
	if s.RSS > 0 {
		if _, err := p.Fprintf(w, "resident memory: %d bytes\n", s.RSS); err != nil {
			return err
		}
	}
	return nil
}

func throughput(n int64, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds() / (1 << 20)
}

// residentMemory returns the resident set size of the current process, or 0
// if it is not available.
func residentMemory() uint64 {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0
	}
	mi, err := proc.MemoryInfo()
	if err != nil || mi == nil {
		return 0
	}
	return mi.RSS
}
