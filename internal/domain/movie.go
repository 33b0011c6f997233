package domain

// UserPreferences captures the viewer profile collected at startup.
type UserPreferences struct {
	Name               string
	Location           string
	FavoriteGenres     []string
	FavoriteMovies     []string
	PreferredLanguages []string
	Mood               string
}

// ReasoningStep is one step of the model's explained reasoning.
type ReasoningStep struct {
	Step      int    `json:"step"`
	Action    string `json:"action"`
	Reasoning string `json:"reasoning"`
}

// ConfidenceLevel buckets the perception confidence.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "HIGH"
	ConfidenceMedium ConfidenceLevel = "MEDIUM"
	ConfidenceLow    ConfidenceLevel = "LOW"
)

// PerceptionOutput is the analyzed view of a recommendation request.
type PerceptionOutput struct {
	AnalyzedContext     map[string]float64
	RelevantPreferences []string
	ReasoningSteps      []ReasoningStep
	ConfidenceLevel     ConfidenceLevel
	ReasoningType       string
	FallbackUsed        bool
	FallbackReason      string
	CurrentContext      string
}

// MovieRecommendation is a single recommended title.
type MovieRecommendation struct {
	Title       string
	Year        int
	Genres      []string
	Rating      float64
	Description string
	Reason      string
}

// DecisionOutput is the recommendation set produced by the decision stage.
type DecisionOutput struct {
	Recommendations []MovieRecommendation
	ConfidenceScore float64
	Reasoning       string
	ReasoningSteps  []ReasoningStep
	ReasoningType   string
	FallbackUsed    bool
	FallbackReason  string
}

// ActionOutput is the result of enriching and presenting recommendations.
type ActionOutput struct {
	Movies    []MovieRecommendation
	Success   bool
	Details   string
	NextSteps []string
}
