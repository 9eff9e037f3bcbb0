package edgar

// --- Company Facts (data.sec.gov/api/xbrl/companyfacts) ---

// CompanyFacts is an XBRL company-facts document: every fact the company
// has ever tagged, grouped by taxonomy and concept.
type CompanyFacts struct {
	CIK        int                             `json:"cik"`
	EntityName string                          `json:"entityName"`
	Facts      map[string]map[string]ConceptFacts `json:"facts"` // taxonomy -> concept -> facts
}

// ConceptFacts holds all observations reported for one XBRL concept,
// keyed by unit of measure ("USD", "shares", ...).
type ConceptFacts struct {
	Label       string                       `json:"label"`
	Description string                       `json:"description"`
	Units       map[string][]FactObservation `json:"units"`
}

// FactObservation is a single reported value for one period from one
// filing. Dates are ISO "YYYY-MM-DD" strings as delivered by EDGAR.
type FactObservation struct {
	Start string  `json:"start,omitempty"`
	End   string  `json:"end"`
	Val   float64 `json:"val"`
	Accn  string  `json:"accn"`
	FY    int     `json:"fy"`
	FP    string  `json:"fp"` // "Q1".."Q4", "FY"
	Form  string  `json:"form"`
	Filed string  `json:"filed"`
	Frame string  `json:"frame,omitempty"`
}

// --- Submissions (data.sec.gov/submissions) ---

type submissionsResponse struct {
	CIK     string       `json:"cik"`
	Name    string       `json:"name"`
	Tickers []string     `json:"tickers"`
	Filings filingsBlock `json:"filings"`
}

type filingsBlock struct {
	Recent recentFilings `json:"recent"`
}

// recentFilings mirrors EDGAR's parallel-array filing listing: index i of
// every slice describes the same filing, ordered most-recent-first.
type recentFilings struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	ReportDate      []string `json:"reportDate"`
	Form            []string `json:"form"`
	PrimaryDocument []string `json:"primaryDocument"`
}

// FilingIndex is a company's recent-filings listing, parallel arrays
// ordered most-recent-first.
type FilingIndex struct {
	CIK              string   `json:"cik"`
	Name             string   `json:"name"`
	Forms            []string `json:"forms"`
	FilingDates      []string `json:"filing_dates"`
	AccessionNumbers []string `json:"accession_numbers"`
	PrimaryDocuments []string `json:"primary_documents"`
}

// Len returns the number of filings in the index.
func (fi *FilingIndex) Len() int { return len(fi.Forms) }

// FilingRef is one row of a FilingIndex.
type FilingRef struct {
	FormType        string `json:"form_type"`
	FilingDate      string `json:"filing_date"`
	AccessionNumber string `json:"accession_number"`
	PrimaryDocument string `json:"primary_document"`
}

// At returns the i-th filing. The parallel arrays may be ragged in old
// submissions data; missing columns come back empty rather than panicking.
func (fi *FilingIndex) At(i int) FilingRef {
	r := FilingRef{}
	if i < len(fi.Forms) {
		r.FormType = fi.Forms[i]
	}
	if i < len(fi.FilingDates) {
		r.FilingDate = fi.FilingDates[i]
	}
	if i < len(fi.AccessionNumbers) {
		r.AccessionNumber = fi.AccessionNumbers[i]
	}
	if i < len(fi.PrimaryDocuments) {
		r.PrimaryDocument = fi.PrimaryDocuments[i]
	}
	return r
}

// --- CIK / ticker mapping (www.sec.gov/files/company_tickers.json) ---

type tickerEntry struct {
	CIK    int    `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}
