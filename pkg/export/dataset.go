package export

// Dataset defines tabular content moving through the toolkit: generated
// tables on their way to CSV, consolidated tables on their way to the
// database, and report rows on their way to PDF.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// Append adds a row to the dataset.
func (d *Dataset) Append(row map[string]string) {
	d.Rows = append(d.Rows, row)
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// Column returns all values of the named column in row order.
func (d *Dataset) Column(name string) []string {
	values := make([]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		values = append(values, row[name])
	}
	return values
}

// HasColumn reports whether the dataset declares the named header.
func (d *Dataset) HasColumn(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}
