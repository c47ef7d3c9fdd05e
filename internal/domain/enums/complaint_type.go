package enums

import "fmt"

type ComplaintType string

// Complaint types double as the display status a content item takes when the
// complaint is upheld, so every value here must also be a valid DisplayStatus.
const (
	ComplaintTypeObjectionable ComplaintType = "objectionable"
	ComplaintTypeCopyright     ComplaintType = "copyright"
)

func ParseComplaintType(value string) (ComplaintType, error) {
	switch ComplaintType(value) {
	case ComplaintTypeObjectionable, ComplaintTypeCopyright:
		return ComplaintType(value), nil
	default:
		return "", fmt.Errorf("unknown complaint type %q", value)
	}
}
