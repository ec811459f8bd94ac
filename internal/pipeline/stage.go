package pipeline

// Stage is a step of a word count run. A successful run moves through
// Idle, InputOpen, Collected, Sorted, Rendered and ends in Closed. Any error
// ends the run in Failed once resources are released.
type Stage int

const (
	StageIdle Stage = iota
	StageInputOpen
	StageCollected
	StageSorted
	StageRendered
	StageClosed
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageInputOpen:
		return "input-open"
	case StageCollected:
		return "collected"
	case StageSorted:
		return "sorted"
	case StageRendered:
		return "rendered"
	case StageClosed:
		return "closed"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions can follow s.
func (s Stage) Terminal() bool {
	return s == StageClosed || s == StageFailed
}
