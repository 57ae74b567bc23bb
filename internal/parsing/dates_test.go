package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindDateRange(t *testing.T) {
	r := DefaultRules()

	tests := []struct {
		name     string
		line     string
		expected dateRange
		found    bool
	}{
		{"month to present", "Acme Corp Jan 2020 - Present", dateRange{Start: "2020-01", Open: true}, true},
		{"month to month", "Sep 2015 - Jun 2019", dateRange{Start: "2015-09", End: "2019-06"}, true},
		{"full month names", "September 2015 – 2019", dateRange{Start: "2015-09", End: "2019-12"}, true},
		{"lowercase present", "jan 2020 - present", dateRange{Start: "2020-01", Open: true}, true},
		{"open without present", "Jan 2020 -", dateRange{Start: "2020-01"}, true},
		{"numeric to numeric", "03/2019 - 11/2020", dateRange{Start: "2019-03", End: "2020-11"}, true},
		{"numeric dangling", "RPTU Kaiserslautern 10/2021 -", dateRange{Start: "2021-10"}, true},
		{"numeric invalid end month", "01/2019 - 13/2020", dateRange{Start: "2019-01"}, true},
		{"years only", "2018 - 2020", dateRange{Start: "2018-01", End: "2020-12"}, true},
		{"years without spaces", "2015-2019", dateRange{Start: "2015-01", End: "2019-12"}, true},
		{"year to present", "2021 – Present", dateRange{Start: "2021-01", Open: true}, true},
		{"no range", "Graduated in 2019", dateRange{}, false},
		{"no dates", "Built payment pipeline", dateRange{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.findDateRange(tt.line)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEndDate(t *testing.T) {
	assert.Equal(t, "", endDate("", ""))
	assert.Equal(t, "", endDate("Present", "05"))
	assert.Equal(t, "2019-12", endDate("2019", ""))
	assert.Equal(t, "2019-05", endDate("2019", "05"))
}

func TestMonthHelpers(t *testing.T) {
	assert.Equal(t, "09", monthNumber("Sept."))
	assert.Equal(t, "01", monthNumber("JANUARY"))
	assert.Equal(t, "", monthNumber("Ju"))
	assert.Equal(t, "03", numericMonth("3"))
	assert.Equal(t, "", numericMonth("0"))
	assert.Equal(t, "", numericMonth("13"))
}
