package order

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{"id", "customer", "date", "amount", "status", "items"}

// WriteCSV writes orders as CSV with a header row.
func WriteCSV(w io.Writer, orders []Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, o := range orders {
		rec := []string{
			o.ID,
			o.Customer,
			o.Date,
			o.Amount.Decimal().StringFixed(2),
			string(o.Status),
			strconv.Itoa(o.Items),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
