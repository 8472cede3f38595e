package gamification_test

import (
	"testing"

	"github.com/credify-app/credify/internal/app/gamification"
)

func TestLevelFor_Thresholds(t *testing.T) {
	cases := []struct {
		xp    int64
		level int
		title string
	}{
		{0, 1, "Beginner"},
		{99, 1, "Beginner"},
		{100, 2, "Novice"},
		{249, 2, "Novice"},
		{250, 3, "Apprentice"},
		{1000, 5, "Adept"},
		{7499, 9, "Legend"},
		{7500, 10, "Mythic"},
		{14999, 11, "Transcendent"},
		{15000, 12, "Immortal"},
		{1_000_000, 12, "Immortal"},
	}
	for _, c := range cases {
		info := gamification.LevelFor(c.xp)
		if info.Level != c.level || info.Title != c.title {
			t.Errorf("LevelFor(%d) = level %d %q, want level %d %q",
				c.xp, info.Level, info.Title, c.level, c.title)
		}
	}
}

func TestLevelFor_NegativeXP(t *testing.T) {
	info := gamification.LevelFor(-500)
	if info.Level != 1 {
		t.Errorf("negative XP should clamp to level 1, got %d", info.Level)
	}
	if info.Progress != 0 {
		t.Errorf("negative XP progress = %f, want 0", info.Progress)
	}
}

func TestLevelFor_ProgressBounds(t *testing.T) {
	for xp := int64(0); xp <= 20000; xp += 37 {
		info := gamification.LevelFor(xp)
		if info.Progress < 0 || info.Progress > 1 {
			t.Fatalf("LevelFor(%d).Progress = %f out of [0,1]", xp, info.Progress)
		}
	}
}

func TestLevelFor_Monotonic(t *testing.T) {
	prev := 0
	for xp := int64(0); xp <= 20000; xp += 50 {
		level := gamification.LevelNumberFor(xp)
		if level < prev {
			t.Fatalf("level decreased from %d to %d at %d XP", prev, level, xp)
		}
		prev = level
	}
}

func TestLevelFor_MaxLevel(t *testing.T) {
	info := gamification.LevelFor(15000)
	if !info.MaxLevel() {
		t.Error("15000 XP should be max level")
	}
	if info.Progress != 1.0 {
		t.Errorf("max level progress = %f, want 1", info.Progress)
	}
}

func TestLevelFor_HalfwayProgress(t *testing.T) {
	// Level 1 band is 0..100, so 50 XP is exactly half.
	info := gamification.LevelFor(50)
	if info.Progress != 0.5 {
		t.Errorf("progress at 50 XP = %f, want 0.5", info.Progress)
	}
	if info.XPToNext != 50 {
		t.Errorf("XPToNext at 50 XP = %d, want 50", info.XPToNext)
	}
}
