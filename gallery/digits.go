package gallery

import "fmt"

// ClockKind is the position of a sprite in the m:ss clock.
type ClockKind int

const (
	ClockMinute ClockKind = iota
	ClockColon
	ClockTen
	ClockSecond
)

func (k ClockKind) String() string {
	switch k {
	case ClockMinute:
		return "Minute"
	case ClockColon:
		return "Colon"
	case ClockTen:
		return "Ten"
	case ClockSecond:
		return "Second"
	default:
		return fmt.Sprintf("ClockKind(%d)", int(k))
	}
}

// Index returns the HUD digit for timeLeft seconds. The colon never changes
// and reports ok=false.
func (k ClockKind) Index(timeLeft uint) (index int, ok bool) {
	switch k {
	case ClockMinute:
		if timeLeft >= 60 {
			return 1, true
		}
		return 0, true
	case ClockTen:
		return int(timeLeft % 60 / 10), true
	case ClockSecond:
		return int(timeLeft % 10), true
	default:
		return 0, false
	}
}

// ScoreKind is the decimal place a score digit shows.
type ScoreKind int

const (
	ScoreThousand ScoreKind = iota
	ScoreHundred
	ScoreTen
	ScoreOne
)

func (k ScoreKind) String() string {
	switch k {
	case ScoreThousand:
		return "Thousand"
	case ScoreHundred:
		return "Hundred"
	case ScoreTen:
		return "Ten"
	case ScoreOne:
		return "One"
	default:
		return fmt.Sprintf("ScoreKind(%d)", int(k))
	}
}

// Index returns the HUD digit for score. Scores of 10000 and above wrap.
func (k ScoreKind) Index(score uint) int {
	switch k {
	case ScoreThousand:
		return int(score % 10000 / 1000)
	case ScoreHundred:
		return int(score % 1000 / 100)
	case ScoreTen:
		return int(score % 100 / 10)
	default:
		return int(score % 10)
	}
}
