package population

import "fmt"

// NoDataPersona is returned when no demographic rows matched the request.
const NoDataPersona = "데이터 없음 (일반 대중)"

// DerivePersona reduces a bucket to a single dominant age band plus gender
// qualifier. The first band hit by the maximum wins ties. A gender is named
// only when its total strictly exceeds the other by more than 10%; at exactly
// 10% the area counts as balanced.
func DerivePersona(bucket Bucket) string {
	if bucket.Total() == 0 {
		return NoDataPersona
	}

	topBand := ""
	topCount := -1
	for _, band := range AgeBands {
		gc := bucket[band]
		total := gc.Male + gc.Female
		if total > topCount {
			topCount = total
			topBand = band
		}
	}

	male, female := bucket.GenderTotals()
	gender := "남녀 고른"
	if float64(male) > float64(female)*1.1 {
		gender = "남성"
	} else if float64(female) > float64(male)*1.1 {
		gender = "여성"
	}

	return fmt.Sprintf("%s %s 거주 상권", topBand, gender)
}
