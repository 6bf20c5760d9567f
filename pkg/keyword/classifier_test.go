package keyword

import "testing"

func TestClassifyPartitions(t *testing.T) {
	list := []Validated{
		{Keyword: "코어1", Category: CategoryCore, Score: 500},
		{Keyword: "코어2", Category: CategoryCore, Score: 300},
		{Keyword: "타겟1", Category: CategoryTarget, Score: 400},
		{Keyword: "상황1", Category: CategorySituation, Score: 200},
		{Keyword: "연관1", Category: CategoryRelated, Score: 100},
	}

	classified := Classify(list, Caps{})

	if len(classified.Main) != 2 || classified.Main[0].Keyword != "코어1" {
		t.Errorf("Main = %v", classified.Main)
	}
	if len(classified.Detail) != 2 || classified.Detail[0].Keyword != "타겟1" {
		t.Errorf("Detail = %v", classified.Detail)
	}
	if len(classified.Related) != 1 || classified.Related[0].Keyword != "연관1" {
		t.Errorf("Related = %v", classified.Related)
	}
}

func TestClassifySortsByScoreDescending(t *testing.T) {
	list := []Validated{
		{Keyword: "낮음", Category: CategoryCore, Score: 100},
		{Keyword: "높음", Category: CategoryCore, Score: 900},
		{Keyword: "중간", Category: CategoryCore, Score: 500},
	}

	classified := Classify(list, Caps{})
	want := []string{"높음", "중간", "낮음"}
	for i, entry := range classified.Main {
		if entry.Keyword != want[i] {
			t.Errorf("Main[%d] = %q, want %q", i, entry.Keyword, want[i])
		}
	}
}

func TestClassifyDedupeKeepsHighestScore(t *testing.T) {
	list := []Validated{
		{Keyword: "중복", Category: CategoryTarget, Score: 100},
		{Keyword: "중복", Category: CategoryCore, Score: 700},
	}

	classified := Classify(list, Caps{})
	if len(classified.Detail) != 0 {
		t.Errorf("Detail = %v, want empty after dedupe", classified.Detail)
	}
	if len(classified.Main) != 1 || classified.Main[0].Score != 700 {
		t.Errorf("Main = %v, want single entry with score 700", classified.Main)
	}
}

func TestClassifyCaps(t *testing.T) {
	var list []Validated
	for i := 0; i < 30; i++ {
		list = append(list, Validated{
			Keyword:  "코어" + string(rune('a'+i)),
			Category: CategoryCore,
			Score:    float64(i),
		})
	}

	classified := Classify(list, Caps{Main: 10, Detail: 12, Related: 5})
	if len(classified.Main) != 10 {
		t.Errorf("Main length = %d, want 10", len(classified.Main))
	}
}

func TestClassifyPreservesEstimatedFlag(t *testing.T) {
	list := []Validated{
		{Keyword: "측정", Category: CategoryCore, Score: 500},
		{Keyword: "추정", Category: CategoryCore, Score: 160, IsEstimated: true},
	}

	classified := Classify(list, Caps{})
	foundEstimated := false
	for _, entry := range classified.Main {
		if entry.Keyword == "추정" && entry.IsEstimated {
			foundEstimated = true
		}
	}
	if !foundEstimated {
		t.Error("estimated flag lost during classification")
	}
}

func TestTopPrefersCoreThenTarget(t *testing.T) {
	classified := Classified{
		Main: []Validated{
			{Keyword: "코어1", Category: CategoryCore, Score: 900},
		},
		Detail: []Validated{
			{Keyword: "상황1", Category: CategorySituation, Score: 800},
			{Keyword: "타겟1", Category: CategoryTarget, Score: 700},
		},
	}

	top := classified.Top(2)
	if len(top) != 2 {
		t.Fatalf("Top(2) length = %d", len(top))
	}
	if top[0].Keyword != "코어1" || top[1].Keyword != "타겟1" {
		t.Errorf("Top(2) = [%s %s], want [코어1 타겟1]", top[0].Keyword, top[1].Keyword)
	}
}
