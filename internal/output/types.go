// internal/output/types.go

// Package output writes a run result to its final destination. JSON is the
// primary format; CSV, Excel and SQLite cover the usual analyst workflows.
package output

import (
	"strconv"

	"reviewscraper/internal/model"
)

// Format represents supported output formats.
type Format string

const (
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
	FormatExcel  Format = "excel"
	FormatSQLite Format = "sqlite"
)

// ValidFormats returns all valid output format values.
func ValidFormats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatExcel, FormatSQLite}
}

// IsValid checks if the output format is valid.
func (f Format) IsValid() bool {
	for _, valid := range ValidFormats() {
		if f == valid {
			return true
		}
	}
	return false
}

// Writer persists one run result.
type Writer interface {
	Write(result *model.RunResult) error
	Close() error
}

// reviewColumns is the flat column layout shared by the tabular writers.
var reviewColumns = []string{
	"title",
	"description",
	"date",
	"reviewer_name",
	"rating",
	"source",
	"company",
	"verified",
	"helpful_count",
	"reviewer_role",
	"company_size",
}

// reviewRow flattens a review into column order. Absent optional values
// become empty cells.
func reviewRow(r *model.Review) []string {
	rating := ""
	if r.Rating != nil {
		rating = strconv.FormatFloat(*r.Rating, 'f', -1, 64)
	}
	verified := ""
	if r.Verified != nil {
		verified = strconv.FormatBool(*r.Verified)
	}
	helpful := ""
	if r.HelpfulCount != nil {
		helpful = strconv.Itoa(*r.HelpfulCount)
	}
	return []string{
		r.Title,
		r.Description,
		r.Date,
		r.ReviewerName,
		rating,
		r.Source,
		r.Company,
		verified,
		helpful,
		r.ReviewerRole,
		r.CompanySize,
	}
}
