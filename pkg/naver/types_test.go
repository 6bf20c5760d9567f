package naver

import (
	"encoding/json"
	"testing"
)

func TestFlexCountUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"number", `1230`, 1230},
		{"float number", `1230.0`, 1230},
		{"under ten placeholder", `"< 10"`, 0},
		{"angle placeholder variant", `"<10"`, 0},
		{"numeric string", `"440"`, 440},
		{"string with separator", `"1,200"`, 1200},
		{"null", `null`, 0},
		{"garbage string", `"n/a"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c FlexCount
			if err := json.Unmarshal([]byte(tt.in), &c); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if int(c) != tt.want {
				t.Errorf("FlexCount(%s) = %d, want %d", tt.in, int(c), tt.want)
			}
		})
	}
}

func TestKeywordStatTotalVolume(t *testing.T) {
	raw := `{"relKeyword":"용인시 닭국수","monthlyPcQcCnt":"< 10","monthlyMobileQcCnt":320,"compIdx":"낮음"}`

	var stat KeywordStat
	if err := json.Unmarshal([]byte(raw), &stat); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if stat.TotalVolume() != 320 {
		t.Errorf("TotalVolume() = %d, want 320", stat.TotalVolume())
	}
	if stat.RelKeyword != "용인시 닭국수" {
		t.Errorf("RelKeyword = %q", stat.RelKeyword)
	}
}

func TestKeywordToolResponseDecoding(t *testing.T) {
	raw := `{"keywordList":[
		{"relKeyword":"A","monthlyPcQcCnt":100,"monthlyMobileQcCnt":200,"compIdx":"높음"},
		{"relKeyword":"B","monthlyPcQcCnt":"< 10","monthlyMobileQcCnt":"< 10","compIdx":"낮음"}
	]}`

	var parsed keywordToolResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(parsed.KeywordList) != 2 {
		t.Fatalf("got %d entries, want 2", len(parsed.KeywordList))
	}
	if parsed.KeywordList[0].TotalVolume() != 300 {
		t.Errorf("first entry volume = %d, want 300", parsed.KeywordList[0].TotalVolume())
	}
	if parsed.KeywordList[1].TotalVolume() != 0 {
		t.Errorf("second entry volume = %d, want 0", parsed.KeywordList[1].TotalVolume())
	}
}
