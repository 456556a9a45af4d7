package domain

// Status is the verdict of a staleness check.
type Status int

const (
	// UpToDate means every recorded fact still holds.
	UpToDate Status = iota
	// Outdated means the target must be rebuilt.
	Outdated
	// Conflicted means a recipe governs a target with no recorded build history.
	Conflicted
)

// String returns the lower-case name of the status.
func (s Status) String() string {
	switch s {
	case UpToDate:
		return "up-to-date"
	case Outdated:
		return "outdated"
	case Conflicted:
		return "conflicted"
	default:
		return "unknown"
	}
}
