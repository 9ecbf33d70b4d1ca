package types

import "time"

// ReportKind classifies a per-item report emitted by a sweep.
type ReportKind int

const (
	ReportCleaned ReportKind = iota
	ReportActionError
	ReportScanError
)

func (k ReportKind) String() string {
	switch k {
	case ReportCleaned:
		return "cleaned"
	case ReportActionError:
		return "action_error"
	case ReportScanError:
		return "scan_error"
	default:
		return "unknown"
	}
}

type (
	// Report describes what happened to one matched or failing directory.
	Report struct {
		Kind     ReportKind    `json:"kind"`
		Path     string        `json:"path"`
		Err      error         `json:"-"`
		Output   []byte        `json:"-"`
		Duration time.Duration `json:"duration"`
	}

	// Summary counts the reports of a whole sweep.
	Summary struct {
		Cleaned      int `json:"cleaned"`
		ActionErrors int `json:"actionErrors"`
		ScanErrors   int `json:"scanErrors"`
	}
)

// Failed reports whether r is an error report.
func (r Report) Failed() bool { return r.Kind != ReportCleaned }

// Add counts r into the summary.
func (s *Summary) Add(r Report) {
	switch r.Kind {
	case ReportCleaned:
		s.Cleaned++
	case ReportActionError:
		s.ActionErrors++
	case ReportScanError:
		s.ScanErrors++
	}
}

// Failures returns the number of error reports.
func (s Summary) Failures() int { return s.ActionErrors + s.ScanErrors }
