// Package expense defines the completed expense record shared by the
// conversation engine and the spreadsheet sink.
package expense

// DateLayout is the calendar date format used everywhere a date is shown or
// stored: day.month.year.
const DateLayout = "02.01.2006"

// Record is one fully captured expense. It is built only when every field has
// passed validation and is never mutated afterwards.
type Record struct {
	Date      string
	Category  string
	Amount    float64
	Comment   string
	Submitter string
}

// Header returns the destination table header in column order.
func Header(withSubmitter bool) []string {
	h := []string{"Date", "Category", "Sum", "Comment"}
	if withSubmitter {
		h = append(h, "User")
	}
	return h
}

// Row renders the record as a spreadsheet row matching Header's column order.
func (r Record) Row(withSubmitter bool) []interface{} {
	row := []interface{}{r.Date, r.Category, r.Amount, r.Comment}
	if withSubmitter {
		row = append(row, r.Submitter)
	}
	return row
}
