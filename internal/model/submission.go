package model

// Submission is one quarterly (10-Q) filing from sub.txt.
// (FY, FP) selects the filing cohort; Name is the dedup key downstream.
type Submission struct {
	ADSH     string // accession number, unique per submission
	Name     string // company name as filed
	SIC      int
	Country  string // countryba: business address country
	Form     string // form type, "10-Q" for the cohorts we load
	FYE      string // fiscal year end, mmdd
	Period   string // balance sheet date, yyyymmdd
	FY       int    // fiscal year
	FP       string // fiscal period, "Q1".."Q4"
	Detail   bool   // true when the filing carries detail-level tagging
	Instance string // XBRL instance document name
}

// SICCode maps a SIC industry code to its SEC office and industry title.
type SICCode struct {
	Code          int    `json:"code"`
	Office        string `json:"office"`
	IndustryTitle string `json:"industry_title"`
}
