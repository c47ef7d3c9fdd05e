package enums

import "fmt"

type DisplayStatus string

const (
	DisplayStatusGood          DisplayStatus = "good"
	DisplayStatusObjectionable DisplayStatus = "objectionable"
	DisplayStatusCopyright     DisplayStatus = "copyright"
)

func ParseDisplayStatus(value string) (DisplayStatus, error) {
	switch DisplayStatus(value) {
	case DisplayStatusGood, DisplayStatusObjectionable, DisplayStatusCopyright:
		return DisplayStatus(value), nil
	default:
		return "", fmt.Errorf("unknown display status %q", value)
	}
}
