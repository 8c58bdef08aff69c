package enums

import "fmt"

// TestimonialStatus tracks the moderation state of a testimonial.
type TestimonialStatus string

const (
	TestimonialStatusPending  TestimonialStatus = "pending"
	TestimonialStatusApproved TestimonialStatus = "approved"
	TestimonialStatusRejected TestimonialStatus = "rejected"
)

var validTestimonialStatuses = []TestimonialStatus{
	TestimonialStatusPending,
	TestimonialStatusApproved,
	TestimonialStatusRejected,
}

// String implements fmt.Stringer.
func (s TestimonialStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is known.
func (s TestimonialStatus) IsValid() bool {
	for _, candidate := range validTestimonialStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseTestimonialStatus converts raw input into a TestimonialStatus.
func ParseTestimonialStatus(value string) (TestimonialStatus, error) {
	for _, candidate := range validTestimonialStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid testimonial status %q", value)
}
