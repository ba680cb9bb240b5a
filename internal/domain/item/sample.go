package item

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Sample data vocabularies.
var (
	sampleAdjectives = []string{"Swift", "Solid", "Bright", "Prime", "Aero", "Hyper", "Quantum", "Omega", "Nimbus", "Vector"}
	sampleNouns      = []string{"Widget", "Gadget", "Module", "Device", "Kit", "Bundle", "Unit", "Pack", "Core", "Engine"}
	sampleTags       = []string{"new", "sale", "clearance", "eco", "luxury", "budget", "refurb", "popular", "pro", "lite"}
	sampleCategories = []string{"electronics", "home", "outdoors", "toys", "apparel", "office", "beauty"}
	sampleColors     = []string{"red", "blue", "green", "black", "white", "silver", "gold"}
	sampleSizes      = []string{"XS", "S", "M", "L", "XL"}

	// SampleVendors is the vendor pool used for generated items and creation defaults.
	SampleVendors = []string{
		"Acme Inc.", "Globex", "Initech", "Umbrella", "WayneTech", "Stark Industries", "Tyrell", "Aperture",
	}

	sampleEpoch = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
)

const skuAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Sample generates n deterministic items. The same seed always yields the same ids and values.
func Sample(n int, seed int64) ([]Item, error) {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], uint64(seed))
	src := rand.NewChaCha8(key)
	r := rand.New(src)

	items := make([]Item, 0, n)
	for i := range n {
		id, err := uuid.NewRandomFromReader(src)
		if err != nil {
			return nil, fmt.Errorf("sample id %d: %w", i, err)
		}
		items = append(items, Item{
			ID:        id.String(),
			Name:      fmt.Sprintf("%s %s %d", pick(r, sampleAdjectives), pick(r, sampleNouns), 100+r.IntN(900)),
			Category:  pick(r, sampleCategories),
			Price:     Round2(5 + r.Float64()*1495),
			Rating:    Round2(1 + r.Float64()*4),
			Tags:      sampleTagSet(r),
			CreatedAt: sampleEpoch.Add(time.Duration(i*17) * time.Minute),
			Stock:     r.IntN(1001),
			Vendor:    pick(r, SampleVendors),
			Attributes: Attributes{
				"color": pick(r, sampleColors),
				"size":  pick(r, sampleSizes),
				"sku":   sampleSKU(r),
			},
		})
	}
	return items, nil
}

// DefaultVendor picks a vendor from SampleVendors, stable for a given item name.
func DefaultVendor(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return SampleVendors[h.Sum32()%uint32(len(SampleVendors))]
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func pick(r *rand.Rand, pool []string) string {
	return pool[r.IntN(len(pool))]
}

func sampleTagSet(r *rand.Rand) []string {
	n := 1 + r.IntN(4)
	perm := r.Perm(len(sampleTags))
	tags := make([]string, n)
	for i := range n {
		tags[i] = sampleTags[perm[i]]
	}
	return tags
}

func sampleSKU(r *rand.Rand) string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = skuAlphabet[r.IntN(len(skuAlphabet))]
	}
	return string(b)
}
