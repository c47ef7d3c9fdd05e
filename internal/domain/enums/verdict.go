package enums

import "fmt"

type Verdict string

const (
	VerdictUpheld    Verdict = "upheld"
	VerdictDismissed Verdict = "dismissed"
)

func ParseVerdict(value string) (Verdict, error) {
	switch Verdict(value) {
	case VerdictUpheld, VerdictDismissed:
		return Verdict(value), nil
	default:
		return "", fmt.Errorf("unknown verdict %q", value)
	}
}
