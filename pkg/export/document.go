package export

import (
	"strconv"
	"strings"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
	// Totals, when set, is rendered as an emphasised closing row keyed by header.
	Totals map[string]string
}

// Section is a titled table inside a report.
type Section struct {
	Title string
	Data  Dataset
}

// Signatory is a person signing the printed report.
type Signatory struct {
	Role string
	Name string
}

// Signature places the signing block at the end of a report.
type Signature struct {
	Place       string
	Date        string
	Signatories []Signatory
}

// Document describes a complete report.
type Document struct {
	Title     string
	Subtitle  string
	Period    string
	Sections  []Section
	Summary   [][2]string
	Signature *Signature
}

// FormatAmount renders whole currency units with dot thousand separators, e.g. "Rp 1.250.000".
func FormatAmount(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if negative {
		return "-Rp " + b.String()
	}
	return "Rp " + b.String()
}
