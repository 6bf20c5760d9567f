package population

import (
	"strings"
	"unicode"
)

// AgeBands fixes the band order used everywhere a bucket is walked. Keeping
// the order here makes persona tie-breaking deterministic.
var AgeBands = []string{"10대", "20대", "30대", "40대", "50대", "60대+"}

// GenderCount holds resident counts for one age band.
type GenderCount struct {
	Male   int `json:"male"`
	Female int `json:"female"`
}

// Bucket maps an age band to its gender counts. A nil or empty bucket is the
// "no data" state.
type Bucket map[string]GenderCount

// Total returns the combined resident count across all bands.
func (b Bucket) Total() int {
	total := 0
	for _, gc := range b {
		total += gc.Male + gc.Female
	}
	return total
}

// GenderTotals returns the male and female totals across all bands.
func (b Bucket) GenderTotals() (male, female int) {
	for _, gc := range b {
		male += gc.Male
		female += gc.Female
	}
	return male, female
}

// Aggregate accumulates the chosen sub-districts' rows into age/gender
// buckets. Column headers embed the age and a gender marker ("25세남자");
// totals columns containing "계" are skipped. Missing tables or unmatched
// regions yield a nil bucket, never an error.
func Aggregate(table *Table, province, district string, subDistricts []string) Bucket {
	rows := table.RowsFor(province, district, subDistricts)
	if len(rows) == 0 {
		return nil
	}

	bucket := make(Bucket, len(AgeBands))
	for _, row := range rows {
		for column, value := range row.Counts {
			age, gender, ok := parseCountColumn(column)
			if !ok {
				continue
			}
			band := bandFor(age)
			if band == "" {
				continue
			}
			count := parseCount(value)
			gc := bucket[band]
			if gender == genderMale {
				gc.Male += count
			} else {
				gc.Female += count
			}
			bucket[band] = gc
		}
	}

	if bucket.Total() == 0 {
		return nil
	}
	return bucket
}

type gender int

const (
	genderMale gender = iota
	genderFemale
)

// parseCountColumn extracts the embedded age and gender marker from a count
// column header.
func parseCountColumn(column string) (int, gender, bool) {
	if strings.Contains(column, "계") {
		return 0, 0, false
	}

	var g gender
	switch {
	case strings.Contains(column, "남자") || strings.Contains(column, "남"):
		g = genderMale
	case strings.Contains(column, "여자") || strings.Contains(column, "여"):
		g = genderFemale
	default:
		return 0, 0, false
	}

	age := 0
	found := false
	for _, r := range column {
		if unicode.IsDigit(r) {
			age = age*10 + int(r-'0')
			found = true
		}
	}
	if !found {
		return 0, 0, false
	}
	return age, g, true
}

// bandFor maps an age onto its half-open decade band; ages 60 and over
// collapse into one band. Ages under 10 are not tracked.
func bandFor(age int) string {
	switch {
	case age >= 60:
		return "60대+"
	case age >= 50:
		return "50대"
	case age >= 40:
		return "40대"
	case age >= 30:
		return "30대"
	case age >= 20:
		return "20대"
	case age >= 10:
		return "10대"
	default:
		return ""
	}
}

// parseCount normalizes a raw count cell. Thousands separators and padding
// are stripped; anything non-numeric counts as zero.
func parseCount(value string) int {
	cleaned := strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	if cleaned == "" {
		return 0
	}
	n := 0
	for _, r := range cleaned {
		if !unicode.IsDigit(r) {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
