package llm

// ShopProfile is the structured input for one suggestion request.
type ShopProfile struct {
	ShopName string
	Category string
	Menu     []string
	Tags     []string
	Persona  string
	Location string
}

// Suggestions is the typed shape of the model's JSON reply. The upstream
// service may omit any key, so every field defaults to empty rather than
// being assumed present.
type Suggestions struct {
	MenuSynonyms      []string `json:"menu_synonyms"`
	CategoryWords     []string `json:"category_words"`
	IntentWords       []string `json:"intent_words"`
	SituationalWords  []string `json:"situational_words"`
	PurchaseTriggers  []string `json:"purchase_triggers"`
	SeasonalModifiers []string `json:"seasonal_modifiers"`
	Insights          []string `json:"insights"`
}

// normalize replaces nil slices so downstream code never branches on key
// presence.
func (s *Suggestions) normalize() {
	if s.MenuSynonyms == nil {
		s.MenuSynonyms = []string{}
	}
	if s.CategoryWords == nil {
		s.CategoryWords = []string{}
	}
	if s.IntentWords == nil {
		s.IntentWords = []string{}
	}
	if s.SituationalWords == nil {
		s.SituationalWords = []string{}
	}
	if s.PurchaseTriggers == nil {
		s.PurchaseTriggers = []string{}
	}
	if s.SeasonalModifiers == nil {
		s.SeasonalModifiers = []string{}
	}
	if s.Insights == nil {
		s.Insights = []string{}
	}
}
