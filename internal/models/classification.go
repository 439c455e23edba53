package models

// ClassificationResult is the outcome of categorizing a single
// TransactionFact. It is a derived value with no back-reference to the
// fact and is never mutated after creation.
type ClassificationResult struct {
	Category      string   `json:"category"`                // one of the Category* constants
	Confidence    float64  `json:"confidence"`              // in [0,1]
	Subcategories []string `json:"subcategories"`           // ordered refinement tags, may be empty
	FeaturesUsed  []string `json:"features_used,omitempty"` // names of the features consulted, for auditability
}
