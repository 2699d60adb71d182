package attribute

import (
	"fmt"
	"strconv"
	"strings"
)

// ElapsedSeconds converts a period label and the remaining-clock text of one
// event into seconds elapsed since the start of the game.
//
// Regulation periods are 600-second blocks. The raw clock counts down within
// the period, so for period p and remaining mm:ss:
//
//	ss != 0: elapsed = 60*(10*(p-1) + 9 - mm) + (60 - ss)
//	ss == 0: elapsed = 60*(10*(p-1) + 10 - mm)
//
// Overtime labels ("E2" style) map to p = digits/2 + 4. Both the minute carry
// and the overtime numbering reproduce the historical feed behavior exactly;
// they are pinned by tests and must not be "corrected" without re-validating
// every stored season.
func ElapsedSeconds(clock, period string) (int, error) {
	p, err := parsePeriod(period)
	if err != nil {
		return 0, err
	}

	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock %q", clock)
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("malformed clock %q: %w", clock, err)
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("malformed clock %q: %w", clock, err)
	}

	if seconds != 0 {
		return 60*(10*(p-1)+9-minutes) + (60 - seconds), nil
	}
	return 60 * (10*(p-1) + 10 - minutes), nil
}

func parsePeriod(period string) (int, error) {
	period = strings.TrimSpace(period)
	if p, err := strconv.Atoi(period); err == nil {
		return p, nil
	}

	// Overtime label: leading letter, trailing digits.
	if len(period) > 1 {
		if n, err := strconv.Atoi(period[1:]); err == nil {
			return n/2 + 4, nil
		}
	}
	return 0, fmt.Errorf("malformed period %q", period)
}
