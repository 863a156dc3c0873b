package models

// Team represents immutable team reference data.
// The abbreviation is the unique key used throughout the system.
type Team struct {
	Name         string `json:"name" validate:"required"`
	Abbreviation string `json:"abbreviation" validate:"required"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
}
