package persona

// Persona is one synthesized user profile produced by the model. Every
// field is optional; missing fields stay zero and export as empty strings.
// The json tags are the schema contract embedded in the generation prompt.
type Persona struct {
	Name               string         `json:"persona_name"`
	Type               string         `json:"persona_type"`
	Demographics       Demographics   `json:"demographics"`
	Psychographics     Psychographics `json:"psychographics"`
	Goals              StringList     `json:"goals"`
	Challenges         StringList     `json:"challenges"`
	Needs              StringList     `json:"needs"`
	PainPoints         StringList     `json:"pain_points"`
	Behavior           Behavior       `json:"behavior"`
	Quote              string         `json:"quote"`
	KeyCharacteristics StringList     `json:"key_characteristics"`
}

type Demographics struct {
	AgeRange     string `json:"age_range"`
	Gender       string `json:"gender"`
	Location     string `json:"location"`
	IncomeLevel  string `json:"income_level"`
	NetWorth     string `json:"net_worth"`
	Education    string `json:"education"`
	Occupation   string `json:"occupation"`
	FamilyStatus string `json:"family_status"`
}

type Psychographics struct {
	Values      StringList `json:"values"`
	Motivations StringList `json:"motivations"`
	Lifestyle   string     `json:"lifestyle"`
	Interests   StringList `json:"interests"`
}

type Behavior struct {
	ResearchStyle            string `json:"research_style"`
	DecisionMaking           string `json:"decision_making"`
	CommunicationPreferences string `json:"communication_preferences"`
	OnlineBehavior           string `json:"online_behavior"`
}
