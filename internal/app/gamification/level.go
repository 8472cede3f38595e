package gamification

import "github.com/credify-app/credify/internal/domain"

// LevelFor maps a cumulative XP total to level, title, progress fraction
// and XP remaining to the next threshold. Pure table lookup over
// domain.LevelTable; negative XP is treated as zero and no input can
// make it fail.
func LevelFor(totalXP int64) domain.LevelInfo {
	if totalXP < 0 {
		totalXP = 0
	}

	table := domain.LevelTable
	current := table[0]
	next := table[len(table)-1]

	for i, row := range table {
		if totalXP < row.MinXP {
			break
		}
		current = row
		if i+1 < len(table) {
			next = table[i+1]
		} else {
			next = row
		}
	}

	info := domain.LevelInfo{
		Level:    current.Level,
		Title:    current.Title,
		XPToNext: next.MinXP - totalXP,
	}

	span := next.MinXP - current.MinXP
	if span <= 0 {
		// At the top of the table. Progress pins to 1 and XPToNext
		// goes to zero or negative, which callers display as "max".
		info.Progress = 1.0
		return info
	}

	info.Progress = float64(totalXP-current.MinXP) / float64(span)
	if info.Progress < 0 {
		info.Progress = 0
	}
	if info.Progress > 1 {
		info.Progress = 1
	}
	return info
}

// LevelNumberFor is a shorthand for the level alone.
func LevelNumberFor(totalXP int64) int {
	return LevelFor(totalXP).Level
}
