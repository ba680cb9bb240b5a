// Package stats computes aggregate price and rating figures over items.
package stats

import "github.com/kailas-cloud/catalog/internal/domain/item"

// Stats summarises a sequence of items.
// Averages are nil for an empty sequence rather than zero, so "no data" is distinguishable.
type Stats struct {
	AvgPrice  *float64 `json:"avg_price"`
	AvgRating *float64 `json:"avg_rating"`
	Count     int      `json:"count"`
}

// Compute returns the arithmetic means, rounded to two decimals, and the count.
func Compute(items []item.Item) Stats {
	if len(items) == 0 {
		return Stats{}
	}
	var price, rating float64
	for i := range items {
		price += items[i].Price
		rating += items[i].Rating
	}
	n := float64(len(items))
	avgPrice := item.Round2(price / n)
	avgRating := item.Round2(rating / n)
	return Stats{AvgPrice: &avgPrice, AvgRating: &avgRating, Count: len(items)}
}
