package session

// MaxLevel is the highest reachable level.
const MaxLevel = 10

// LinesPerLevel is how many cleared lines advance the level by one.
const LinesPerLevel = 10

// Per-cell bonuses for manual descent.
const (
	SoftDropPoints = 1
	HardDropPoints = 2
)

// clearPoints is the base award for clearing 1..4 rows at once.
var clearPoints = [...]int{0, 100, 300, 500, 800}

// levelSpeeds is the gravity interval in milliseconds for levels 1..MaxLevel.
var levelSpeeds = [MaxLevel]int64{1000, 800, 600, 500, 400, 300, 250, 200, 150, 100}

// ScoreForClear returns the points for clearing n rows simultaneously at the
// given level. Counts outside 1..4 score nothing.
func ScoreForClear(n, level int) int {
	if n <= 0 || n >= len(clearPoints) {
		return 0
	}
	return clearPoints[n] * clampLevel(level)
}

// LevelFor derives the level from cumulative cleared lines.
func LevelFor(lines int) int {
	if lines < 0 {
		lines = 0
	}
	return min(MaxLevel, lines/LinesPerLevel+1)
}

// FallIntervalFor returns the gravity interval in milliseconds for a level,
// clamping the level into 1..MaxLevel.
func FallIntervalFor(level int) int64 {
	return levelSpeeds[clampLevel(level)-1]
}

func clampLevel(level int) int {
	return max(1, min(MaxLevel, level))
}
