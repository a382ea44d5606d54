package tiercache

// Level names one of the three tiers composing the cache. The zero
// value is Fast, the default write target.
type Level uint8

const (
	Fast Level = iota
	Medium
	Slow
	tiersNum = 3
)

func (l Level) String() string {
	switch l {
	case Fast:
		return "fast"
	case Medium:
		return "medium"
	case Slow:
		return "slow"
	}
	return "unknown"
}

// ParseLevel maps a tier name to its Level.
func ParseLevel(s string) (Level, bool) {
	switch s {
	case "fast":
		return Fast, true
	case "medium":
		return Medium, true
	case "slow":
		return Slow, true
	}
	return 0, false
}
