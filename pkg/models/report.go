package models

// ValidationResult is the outcome of checking one field of one record.
type ValidationResult struct {
	Field   string `json:"Field" yaml:"Field"`
	Valid   bool   `json:"Valid" yaml:"Valid"`
	Details string `json:"Details" yaml:"Details"`
}

// RecordReport holds one ValidationResult per configured field, in rule order.
type RecordReport struct {
	RecordID    string             `json:"RecordID" yaml:"RecordID"`
	Validations []ValidationResult `json:"Validations" yaml:"Validations"`
}

// Valid reports whether every field of the record passed.
func (r RecordReport) Valid() bool {
	for _, v := range r.Validations {
		if !v.Valid {
			return false
		}
	}
	return true
}

// BatchReport is the ordered collection of record reports for one drained queue.
type BatchReport struct {
	Results []RecordReport `json:"Results" yaml:"Results"`
}

type Summary struct {
	Records        int
	InvalidRecords int
	InvalidFields  int
}

// Summary counts records and failed checks across the batch.
func (b *BatchReport) Summary() Summary {
	s := Summary{Records: len(b.Results)}
	for _, r := range b.Results {
		failed := 0
		for _, v := range r.Validations {
			if !v.Valid {
				failed++
			}
		}
		if failed > 0 {
			s.InvalidRecords++
			s.InvalidFields += failed
		}
	}
	return s
}
