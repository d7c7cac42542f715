package gacha

// Roll count thresholds, as percentage of a perfect score.
// The fourth roll requires an exactly perfect score, not percentage >= 100.
const (
	DoubleRollThreshold = 80.0
	TripleRollThreshold = 95.0

	BaseRollCount    = 1
	PerfectRollCount = 4
)

// Weight table selection thresholds
const (
	MidTableThreshold  = 80.0
	HighTableThreshold = 90.0
)

// Error message constants
const (
	ErrMsgInvalidScore = "score must be between 0 and total questions"
	ErrMsgInvalidTotal = "total questions must be positive"
)
