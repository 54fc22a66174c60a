// Package t2048 implements the classic 2048 puzzle game with campaign and endless modes.
package t2048

// stage is one campaign step: reach target while 4s spawn with spawn4.
type stage struct {
	target int
	spawn4 float64
}

// campaign doubles the target up to 8192, then keeps it and spawns more 4s.
var campaign = []stage{
	{128, 0.10}, {256, 0.10}, {512, 0.10}, {1024, 0.10}, {2048, 0.10},
	{4096, 0.12}, {8192, 0.15}, {8192, 0.18}, {8192, 0.20}, {8192, 0.25},
}

// stageAt returns campaign stage i, clamped to the last one.
func stageAt(i int) stage {
	return campaign[min(max(i, 0), len(campaign)-1)]
}

func lastStage(i int) bool {
	return i >= len(campaign)-1
}
