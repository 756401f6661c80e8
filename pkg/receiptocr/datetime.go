package receiptocr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Date/time grammar shared by both dialects.
//
// Calendar notations recognized, in priority order:
//   - month-name day, year   (March 5, 2025 / Mar 5 2025)
//   - day month-name year    (5 March 2025)
//   - numeric Y-M-D          (2025-03-28)
//   - numeric D-M-Y / M-D-Y  (28/03/2025), disambiguated by whichever
//     component exceeds 12; month-first guess when both fit, flagged ambiguous
var (
	monthNameDayRE = regexp.MustCompile(`(?i)\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+([0-9]{1,2})(?:st|nd|rd|th)?,?\s+([0-9]{4})\b`)
	dayMonthNameRE = regexp.MustCompile(`(?i)\b([0-9]{1,2})(?:st|nd|rd|th)?\s+(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?,?\s+([0-9]{4})\b`)
	numericYMDRE   = regexp.MustCompile(`\b([0-9]{4})[-/.]([0-9]{1,2})[-/.]([0-9]{1,2})\b`)
	numericDMYRE   = regexp.MustCompile(`\b([0-9]{1,2})[-/.]([0-9]{1,2})[-/.]([0-9]{4})\b`)

	// 12-hour times tolerate OCR-loosened markers like "A . M".
	time12RE = regexp.MustCompile(`(?i)\b([0-9]{1,2})\s*[:.]\s*([0-9]{2})\s*([ap])\s*\.?\s*m\b\.?`)
	time24RE = regexp.MustCompile(`\b([01]?[0-9]|2[0-3]):([0-5][0-9])\b`)
)

var monthsByPrefix = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

type dateMatch struct {
	year, month, day int
	index            int
	ambiguous        bool
}

func monthFromName(name string) int {
	name = strings.ToLower(name)
	if len(name) > 3 {
		name = name[:3]
	}
	return monthsByPrefix[name]
}

func plausibleDate(year, month, day int) bool {
	return year >= 1990 && year <= 2100 && month >= 1 && month <= 12 && day >= 1 && day <= 31
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// findDate locates the first date in the text by notation priority.
func findDate(text string) *dateMatch {
	if loc := monthNameDayRE.FindStringSubmatchIndex(text); loc != nil {
		m := monthFromName(text[loc[2]:loc[3]])
		d, y := atoi(text[loc[4]:loc[5]]), atoi(text[loc[6]:loc[7]])
		if plausibleDate(y, m, d) {
			return &dateMatch{year: y, month: m, day: d, index: loc[0]}
		}
	}
	if loc := dayMonthNameRE.FindStringSubmatchIndex(text); loc != nil {
		d := atoi(text[loc[2]:loc[3]])
		m := monthFromName(text[loc[4]:loc[5]])
		y := atoi(text[loc[6]:loc[7]])
		if plausibleDate(y, m, d) {
			return &dateMatch{year: y, month: m, day: d, index: loc[0]}
		}
	}
	if loc := numericYMDRE.FindStringSubmatchIndex(text); loc != nil {
		y, m, d := atoi(text[loc[2]:loc[3]]), atoi(text[loc[4]:loc[5]]), atoi(text[loc[6]:loc[7]])
		if plausibleDate(y, m, d) {
			return &dateMatch{year: y, month: m, day: d, index: loc[0]}
		}
	}
	if loc := numericDMYRE.FindStringSubmatchIndex(text); loc != nil {
		a, b, y := atoi(text[loc[2]:loc[3]]), atoi(text[loc[4]:loc[5]]), atoi(text[loc[6]:loc[7]])
		var m, d int
		ambiguous := false
		switch {
		case a > 12 && b <= 12:
			d, m = a, b
		case b > 12 && a <= 12:
			m, d = a, b
		case a <= 12 && b <= 12:
			// Both fit as a month. Guess month-first and flag it.
			m, d = a, b
			ambiguous = true
		default:
			return nil
		}
		if plausibleDate(y, m, d) {
			return &dateMatch{year: y, month: m, day: d, index: loc[0], ambiguous: ambiguous}
		}
	}
	return nil
}

// findTime locates a clock time in the segment. The 12-hour form is tried
// first so "3:45 PM" does not get misread as 03:45. Hours are normalized to
// 24-hour: 12 AM -> 00, 12 PM stays 12, other PM hours gain 12.
func findTime(segment string) (hour, minute int, ok bool) {
	if m := time12RE.FindStringSubmatch(segment); len(m) == 4 {
		h, min := atoi(m[1]), atoi(m[2])
		if h >= 1 && h <= 12 && min <= 59 {
			if strings.EqualFold(m[3], "a") {
				if h == 12 {
					h = 0
				}
			} else if h < 12 {
				h += 12
			}
			return h, min, true
		}
	}
	if m := time24RE.FindStringSubmatch(segment); len(m) == 3 {
		return atoi(m[1]), atoi(m[2]), true
	}
	return 0, 0, false
}

// findDateTime combines the date and time grammars into the suggestion stamp
// (YYYY-MM-DDTHH:mm, 24-hour). The time is searched near the date first
// (-80/+160 characters), then across the whole text. A date without any time,
// or a time without any date, yields no stamp: the field needs both.
func findDateTime(text string) (stamp string, ambiguous, ok bool) {
	dm := findDate(text)
	if dm == nil {
		return "", false, false
	}
	lo := dm.index - 80
	if lo < 0 {
		lo = 0
	}
	hi := dm.index + 160
	if hi > len(text) {
		hi = len(text)
	}
	h, m, found := findTime(text[lo:hi])
	if !found {
		h, m, found = findTime(text)
	}
	if !found {
		return "", dm.ambiguous, false
	}
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d", dm.year, dm.month, dm.day, h, m), dm.ambiguous, true
}
