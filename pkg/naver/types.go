package naver

import (
	"encoding/json"
	"strings"
	"unicode"
)

// FlexCount decodes a monthly query count that the keyword tool returns
// either as a JSON number or as a placeholder string such as "< 10".
// Placeholders and anything else non-numeric count as zero.
type FlexCount int

func (c *FlexCount) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if len(trimmed) == 0 || trimmed == "null" {
		*c = 0
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = FlexCount(parseLooseCount(s))
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		*c = 0
		return nil
	}
	*c = FlexCount(int(n))
	return nil
}

// parseLooseCount extracts an integer from a count string, returning 0 for
// placeholders like "< 10" or malformed values.
func parseLooseCount(s string) int {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if cleaned == "" || strings.ContainsAny(cleaned, "<>") {
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

// KeywordStat is one related-keyword entry from the keyword tool.
type KeywordStat struct {
	RelKeyword         string    `json:"relKeyword"`
	MonthlyPcQcCnt     FlexCount `json:"monthlyPcQcCnt"`
	MonthlyMobileQcCnt FlexCount `json:"monthlyMobileQcCnt"`
	CompIdx            string    `json:"compIdx"`
}

// TotalVolume sums PC and mobile monthly counts.
func (s KeywordStat) TotalVolume() int {
	return int(s.MonthlyPcQcCnt) + int(s.MonthlyMobileQcCnt)
}

type keywordToolResponse struct {
	KeywordList []KeywordStat `json:"keywordList"`
}

// BlogPost is one blog-search hit. Title may arrive with search markup that
// StripMarkup removes before display.
type BlogPost struct {
	Title       string `json:"title"`
	BloggerName string `json:"bloggername"`
	PostDate    string `json:"postdate"`
}

// BlogSearchResult is the blog-search response for one keyword.
type BlogSearchResult struct {
	Total int        `json:"total"`
	Items []BlogPost `json:"items"`
}
