package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/sspricer/internal/domain"
)

// CSVFormatter writes one line per row. Suppressed offers are left blank and
// flagged in the NoOffer column.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(results *domain.BatchResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"ID", "FirstName", "LastName", "InsuranceCompany", "PaymentType", "Frequency",
		"StartDate", "EndDate", "Amount", "PaymentCount", "LowOffer", "HighOffer", "DeathBenefit",
		"NoOffer", "AdjustedRate", "Error"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, rr := range results.Rows {
		r := rr.Row
		line := []string{r.ID, r.FirstName, r.LastName, r.InsuranceCompany, string(r.PaymentType),
			string(r.Frequency), r.StartDate, r.EndDate, r.Amount.StringFixed(2)}
		if res := rr.Result; res != nil {
			low, high := res.LowOffer.StringFixed(2), res.HighOffer.StringFixed(2)
			if res.NoOffer {
				low, high = "", ""
			}
			line = append(line,
				strconv.Itoa(res.PaymentCount),
				low,
				high,
				res.DeathBenefit.StringFixed(2),
				strconv.FormatBool(res.NoOffer),
				res.AdjustedRate.String(),
				"",
			)
		} else {
			line = append(line, "", "", "", "", "", "", rr.Error)
		}
		if err := w.Write(line); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
