// Package model defines the core data types shared across the fundamentals pipeline.
package model

// Fact is a single reported financial-statement line item from num.txt.
// Immutable once loaded; belongs to exactly one filing submission (ADSH).
type Fact struct {
	ADSH     string  // submission unique id
	Tag      string  // reporting concept as filed (e.g., "NetIncomeLoss")
	DDate    string  // report end date, yyyymmdd
	Qtrs     int     // duration in quarters: 0 = instant, 1 = quarter, 2 = YTD
	Coreg    string  // coregistrant; empty for the primary filer
	UOM      string  // unit of measure (e.g., "USD", "shares")
	Value    float64 // reported value; meaningful only when HasValue
	HasValue bool    // false when the value field was blank in the source
	Footnote string
}

// CompanyFact is a Fact joined to its filing submission's descriptive fields.
type CompanyFact struct {
	Fact
	Company string // company name, the downstream dedup and pivot key
	SIC     int    // SIC industry code from the submission
	Period  string // submission fiscal period end date, yyyymmdd
}
