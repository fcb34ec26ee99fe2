// Package export renders catalog data for external consumers.  The
// only format today is the CSV schedule the management screen offers
// for download.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"cinema-box-office/internal/model"
)

// timeLayout is the timestamp format used in exported rows,
// dd-MM-yyyy HH:mm.
const timeLayout = "02-01-2006 15:04"

// WriteShowingsCSV writes one comma-separated line per showing:
// start, end, title, seats left.  No header row is written.
func WriteShowingsCSV(w io.Writer, showings []*model.Showing) error {
	cw := csv.NewWriter(w)
	for _, s := range showings {
		record := []string{
			s.StartDateTime.Format(timeLayout),
			s.EndDateTime().Format(timeLayout),
			s.Title,
			strconv.Itoa(s.SeatsLeft()),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
