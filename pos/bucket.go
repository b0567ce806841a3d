package pos

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/restaurant-engine/generic"
)

// Bucket is the revenue for one day or one ISO week.
type Bucket struct {
	Start        time.Time       `json:"start"`
	End          time.Time       `json:"end"`
	Transactions int             `json:"transactions"`
	Quantity     int64           `json:"quantity"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// Buckets splits sales into daily or weekly (Monday start) buckets, sorted by
// start date. Buckets with no sales are omitted.
func Buckets(sales []generic.SaleRecord, pt generic.PeriodType) []Bucket {
	byStart := make(map[time.Time]*Bucket)
	for _, sale := range sales {
		start := pt.BucketStart(sale.Timestamp)
		b, ok := byStart[start]
		if !ok {
			b = &Bucket{Start: start, End: pt.BucketEnd(start)}
			byStart[start] = b
		}
		b.Transactions++
		b.Quantity += int64(sale.Quantity)
		b.Revenue = b.Revenue.Add(sale.LineTotal())
	}

	result := make([]Bucket, 0, len(byStart))
	for _, b := range byStart {
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Start.Before(result[j].Start)
	})
	return result
}
