package record

import (
	"encoding/csv"
	"io"
	"strconv"
)

// CSVHeader is the first row of every exported report.
var CSVHeader = []string{"ID", "Student ID", "Name", "Class", "Date"}

// WriteCSV streams records as CSV in the given order, header row first.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			strconv.FormatInt(rec.ID, 10),
			rec.StudentID,
			rec.Name,
			rec.ClassName,
			rec.Date,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
