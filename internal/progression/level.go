package progression

import "math"

// Level is the user's XP progression. CurrentXP is always below XPToNext;
// TotalXP never decreases.
type Level struct {
	Level     int    `json:"level"`
	CurrentXP int    `json:"currentXp"`
	TotalXP   int    `json:"totalXp"`
	XPToNext  int    `json:"xpToNext"`
	Title     string `json:"title"`
}

// NewLevel returns a fresh level-1 progression.
func NewLevel() Level {
	return Level{Level: 1, XPToNext: XPForLevel(1), Title: TitleFor(1)}
}

// XPForLevel returns the XP needed to advance past level l.
func XPForLevel(l int) int {
	if l < 1 {
		l = 1
	}
	return int(math.Floor(100 * math.Pow(1.2, float64(l-1))))
}

// TitleFor returns the display title for a level.
func TitleFor(l int) string {
	switch {
	case l >= 50:
		return "Legend"
	case l >= 40:
		return "Master"
	case l >= 30:
		return "Expert"
	case l >= 20:
		return "Advanced"
	case l >= 10:
		return "Intermediate"
	default:
		return "Novice"
	}
}

// AddXP grants amount XP and performs as many level-ups as the carry
// allows. Non-positive amounts are ignored. It returns the number of
// levels gained.
func (l *Level) AddXP(amount int) int {
	if amount <= 0 {
		return 0
	}
	l.Normalize()
	l.CurrentXP += amount
	l.TotalXP += amount

	gained := 0
	for l.CurrentXP >= l.XPToNext {
		l.CurrentXP -= l.XPToNext
		l.Level++
		l.XPToNext = XPForLevel(l.Level)
		gained++
	}
	l.Title = TitleFor(l.Level)
	return gained
}

// Normalize repairs derived fields, e.g. after loading a snapshot written
// by an older version.
func (l *Level) Normalize() {
	if l.Level < 1 {
		l.Level = 1
	}
	if l.CurrentXP < 0 {
		l.CurrentXP = 0
	}
	if l.TotalXP < l.CurrentXP {
		l.TotalXP = l.CurrentXP
	}
	l.XPToNext = XPForLevel(l.Level)
	l.Title = TitleFor(l.Level)
}

// Progress returns CurrentXP as a fraction of XPToNext.
func (l Level) Progress() float64 {
	if l.XPToNext <= 0 {
		return 0
	}
	return float64(l.CurrentXP) / float64(l.XPToNext)
}
