package domain

// IrregularVerb is one row of the irregular verbs reference table.
type IrregularVerb struct {
	Infinitive     string `json:"infinitive"`
	SimplePast     string `json:"simple_past"`
	PastParticiple string `json:"past_participle"`
	Translation    string `json:"translation_ru"`
}

// PhrasalVerb is a verb governance pattern, e.g. "look up to" or "depend on".
type PhrasalVerb struct {
	ID             int64   `json:"id"`
	Infinitive     string  `json:"infinitive"`
	Particle       *string `json:"particle"`
	Preposition    *string `json:"preposition"`
	FullExpression string  `json:"full_expression"`
	Translation    string  `json:"translation"`
	Type           string  `json:"type"`
}
