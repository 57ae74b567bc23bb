package parsing

import (
	"fmt"
	"strconv"
	"strings"
)

// dateRange is a start/end pair in YYYY-MM form. An empty End means open or unknown;
// Open is set only when the line literally says "present".
type dateRange struct {
	Start string
	End   string
	Open  bool
}

// findDateRange returns the first date range on a line, trying month-name, numeric
// and year-only forms in that order.
func (r *Rules) findDateRange(line string) (dateRange, bool) {
	if m := r.dateMonth.FindStringSubmatch(line); m != nil {
		return dateRange{
			Start: yearMonth(m[2], monthNumber(m[1])),
			End:   endDate(m[4], monthNumber(m[3])),
			Open:  isPresent(m[4]),
		}, true
	}
	if m := r.dateNumeric.FindStringSubmatch(line); m != nil {
		dr := dateRange{
			Start: yearMonth(m[2], numericMonth(m[1])),
			End:   endDate(m[4], numericMonth(m[3])),
			Open:  isPresent(m[4]),
		}
		if m[3] != "" && numericMonth(m[3]) == "" {
			dr.End = ""
		}
		return dr, true
	}
	if m := r.dateYear.FindStringSubmatch(line); m != nil {
		return dateRange{
			Start: yearMonth(m[1], "01"),
			End:   endDate(m[2], ""),
			Open:  isPresent(m[2]),
		}, true
	}
	return dateRange{}, false
}

// hasDateRange reports whether any of the range forms occurs on the line.
func (r *Rules) hasDateRange(line string) bool {
	_, ok := r.findDateRange(line)
	return ok
}

// endDate converts the end token of a range. "present" and missing years yield "";
// a year without a month is taken as December.
func endDate(yearOrPresent, month string) string {
	if yearOrPresent == "" || isPresent(yearOrPresent) {
		return ""
	}
	if month == "" {
		month = "12"
	}
	return yearMonth(yearOrPresent, month)
}

func isPresent(token string) bool {
	return strings.EqualFold(token, "present")
}

// yearMonth formats a YYYY-MM date, or "" when either part is unusable.
func yearMonth(year, month string) string {
	if len(year) != 4 || month == "" {
		return ""
	}
	return year + "-" + month
}

// monthNumber maps a month name to its two-digit number; unknown names give "".
func monthNumber(name string) string {
	name = strings.ToLower(strings.TrimSuffix(name, "."))
	if len(name) < 3 {
		return ""
	}
	return monthNumbers[name[:3]]
}

// numericMonth zero-pads a 1-12 month; anything else gives "".
func numericMonth(s string) string {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 12 {
		return ""
	}
	return fmt.Sprintf("%02d", n)
}
