package activity

import (
	"crypto/rand"
	"io"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rshade/ecotrack/internal/emissions"
)

// Record is one loggable line derived from a parsed item, in the shape the
// surrounding application persists.
type Record struct {
	ID         string             `json:"id"`
	Category   emissions.Category `json:"category"`
	Amount     float64            `json:"amount"`
	Unit       string             `json:"unit"`
	CO2Impact  float64            `json:"co2Impact"`
	Date       string             `json:"date"`
	Time       string             `json:"time"`
	ItemName   string             `json:"itemName,omitempty"`
	Confidence float64            `json:"confidence"`
}

// Record date and time layouts.
const (
	RecordDateLayout = "2006-01-02"
	RecordTimeLayout = "15:04"
)

// Records splits a parsed activity into one record per item, stamped with at
// and a ULID. The IDs sort in creation order.
func Records(a Activity, at time.Time) []Record {
	return RecordsWithEntropy(a, at, rand.Reader)
}

// RecordsWithEntropy is Records with an explicit entropy source for the IDs.
func RecordsWithEntropy(a Activity, at time.Time, entropy io.Reader) []Record {
	monotonic := ulid.Monotonic(entropy, 0)
	ms := ulid.Timestamp(at)

	records := make([]Record, 0, len(a.Items))
	for _, item := range a.Items {
		records = append(records, Record{
			ID:         ulid.MustNew(ms, monotonic).String(),
			Category:   a.Category,
			Amount:     item.Quantity,
			Unit:       item.Unit,
			CO2Impact:  item.CO2Impact,
			Date:       at.Format(RecordDateLayout),
			Time:       at.Format(RecordTimeLayout),
			ItemName:   item.Name,
			Confidence: item.Confidence,
		})
	}
	return records
}
