package domain

// ParasiteExample is an illustrative image attached to a parasite entry.
type ParasiteExample struct {
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
}

// Parasite is a reference entry describing one parasite type. The type
// string is the identifier used in analysis results and endpoint paths.
type Parasite struct {
	Type               string            `json:"type"`
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	Treatment          string            `json:"treatment,omitempty"`
	PreventionMeasures []string          `json:"preventionMeasures,omitempty"`
	ImageURLs          []string          `json:"imageUrls,omitempty"`
	Examples           []ParasiteExample `json:"examples,omitempty"`
}

// DigitExample is an illustrative image attached to a digit entry.
type DigitExample struct {
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
}

// Digit is a reference entry for one MNIST digit class.
type Digit struct {
	Value       int            `json:"value"`
	Description string         `json:"description"`
	Examples    []DigitExample `json:"examples,omitempty"`
}
