package enums

import "fmt"

type ProcessStatus string

// ProcessStatusReview is a declared intermediate state: rows are readable with
// it, but complaints currently move straight from complaint to done.
const (
	ProcessStatusComplaint ProcessStatus = "complaint"
	ProcessStatusReview    ProcessStatus = "review"
	ProcessStatusDone      ProcessStatus = "done"
)

func ParseProcessStatus(value string) (ProcessStatus, error) {
	switch ProcessStatus(value) {
	case ProcessStatusComplaint, ProcessStatusReview, ProcessStatusDone:
		return ProcessStatus(value), nil
	default:
		return "", fmt.Errorf("unknown process status %q", value)
	}
}
