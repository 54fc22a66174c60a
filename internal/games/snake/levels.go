package snake

// Level is one campaign map. '#' marks a wall; every row has the same width.
type Level struct {
	ID             int
	Name           string
	Layout         []string
	TargetFood     int // food to eat before the level is cleared
	MoveEveryTicks int // ticks between snake moves
}

// Levels are played in order in campaign mode and cycled in endless mode.
var Levels = []Level{
	{
		ID:             1,
		Name:           "Open Field",
		TargetFood:     5,
		MoveEveryTicks: 5,
		Layout: []string{
			"##############################",
			"#............................#",
			"#............................#",
			"#............................#",
			"#............................#",
			"#............................#",
			"#............................#",
			"#............................#",
			"#............................#",
			"#............................#",
			"#............................#",
			"#............................#",
			"#............................#",
			"##############################",
		},
	},
	{
		ID:             2,
		Name:           "Corridors",
		TargetFood:     6,
		MoveEveryTicks: 4,
		Layout: []string{
			"##############################",
			"#............................#",
			"#............................#",
			"#............................#",
			"#.......##############.......#",
			"#............................#",
			"#............................#",
			"#............................#",
			"#............................#",
			"#.......##############.......#",
			"#............................#",
			"#............................#",
			"#............................#",
			"##############################",
		},
	},
	{
		ID:             3,
		Name:           "Pillars",
		TargetFood:     7,
		MoveEveryTicks: 4,
		Layout: []string{
			"##############################",
			"#............................#",
			"#............................#",
			"#.........#........#.........#",
			"#.........#........#.........#",
			"#.........#........#.........#",
			"#.........#........#.........#",
			"#.........#........#.........#",
			"#.........#........#.........#",
			"#.........#........#.........#",
			"#.........#........#.........#",
			"#............................#",
			"#............................#",
			"##############################",
		},
	},
	{
		ID:             4,
		Name:           "Hooks",
		TargetFood:     8,
		MoveEveryTicks: 3,
		Layout: []string{
			"##############################",
			"#............................#",
			"#............................#",
			"#....#######.................#",
			"#....#.......................#",
			"#....#.......................#",
			"#....#..................#....#",
			"#....#..................#....#",
			"#.......................#....#",
			"#.......................#....#",
			"#.................#######....#",
			"#............................#",
			"#............................#",
			"##############################",
		},
	},
	{
		ID:             5,
		Name:           "Crossroads",
		TargetFood:     10,
		MoveEveryTicks: 3,
		Layout: []string{
			"##############################",
			"#..............#.............#",
			"#..............#.............#",
			"#..............#.............#",
			"#..............#.............#",
			"#..............#.............#",
			"#............................#",
			"#...#######.........#######..#",
			"#..............#.............#",
			"#..............#.............#",
			"#..............#.............#",
			"#..............#.............#",
			"#..............#.............#",
			"##############################",
		},
	},
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(Levels)
}

// GetLevel returns the level at the given index (0-based).
// Returns nil if index is out of range.
func GetLevel(index int) *Level {
	if index < 0 || index >= len(Levels) {
		return nil
	}
	return &Levels[index]
}
