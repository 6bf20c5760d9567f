package region

import "strings"

// Location is a structured administrative address parsed from free text.
type Location struct {
	Province     string   `json:"province"`
	District     string   `json:"district"`
	SubDistricts []string `json:"sub_districts"`
}

var provinceSuffixes = []string{"특별시", "광역시", "특별자치시", "특별자치도", "도"}
var districtSuffixes = []string{"시", "군", "구"}
var subDistrictSuffixes = []string{"동", "읍", "면"}

// Tokenize splits a location string on whitespace and classifies each token
// by its administrative suffix. A 시-suffixed token counts as the province
// when no province has been seen yet ("용인시 처인구"), otherwise as the
// district ("경기도 용인시").
func Tokenize(input string) Location {
	var loc Location

	for _, token := range strings.Fields(input) {
		switch {
		case hasAnySuffix(token, provinceSuffixes):
			if loc.Province == "" {
				loc.Province = token
			}
		case hasAnySuffix(token, subDistrictSuffixes):
			loc.SubDistricts = append(loc.SubDistricts, token)
		case hasAnySuffix(token, districtSuffixes):
			if strings.HasSuffix(token, "시") && loc.Province == "" && loc.District == "" {
				loc.Province = token
			} else if loc.District == "" {
				loc.District = token
			}
		}
	}

	return loc
}

// IsEmpty reports whether nothing in the input could be classified.
func (l Location) IsEmpty() bool {
	return l.Province == "" && l.District == "" && len(l.SubDistricts) == 0
}

// Specific returns location names ranked most-specific first: sub-districts,
// then district, then province. Used to anchor keyword candidates.
func (l Location) Specific() []string {
	out := make([]string, 0, len(l.SubDistricts)+2)
	out = append(out, l.SubDistricts...)
	if l.District != "" {
		out = append(out, l.District)
	}
	if l.Province != "" {
		out = append(out, l.Province)
	}
	return out
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if s != suffix && strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}
