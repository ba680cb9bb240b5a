package catalog

import "time"

// Item is one catalog product.
type Item struct {
	ID         string
	Name       string
	Category   string
	Price      float64
	Rating     float64
	Tags       []string
	CreatedAt  time.Time
	Stock      int
	Vendor     string
	Attributes map[string]string
}

// Record is a projected item keyed by field name.
type Record map[string]any

// NewItem describes an item to create. Nil or empty optional fields take
// their defaults: a generated id, rating 0, stock 0, a vendor derived from
// the name, no tags and no attributes.
type NewItem struct {
	ID         string
	Name       string
	Category   string
	Price      float64
	Rating     *float64
	Tags       []string
	Stock      *int
	Vendor     string
	Attributes map[string]string
}

// Query selects, orders and pages catalog items. The zero Query lists the
// first page of the whole catalog, newest first.
type Query struct {
	Category  string
	Vendor    string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	MaxRating *float64
	Tags      []string // all must be present
	Text      string   // case-insensitive substring of name, vendor, category or any tag

	// SortBy is a comma-separated list of fields, "-" prefix for descending.
	SortBy string
	// Fields restricts each result to these fields. Results then come back
	// as Records instead of Items.
	Fields []string

	// Page or PageSize switch to numbered paging; otherwise Offset and Limit apply.
	Page     int
	PageSize int
	Offset   int
	Limit    int

	IncludeStats bool
}

// RelatedQuery tunes a related-items lookup.
type RelatedQuery struct {
	// Limit caps the result. Nil means the default of 5; zero returns nothing.
	Limit  *int
	SortBy string
	Fields []string
}

// Stats summarises a set of items. Averages are nil for an empty set.
type Stats struct {
	AvgPrice  *float64
	AvgRating *float64
	Count     int
}

// PageMeta describes how a list result was cut from the filtered set.
type PageMeta struct {
	Mode     string // "offset" or "page"
	Offset   int
	Limit    int
	Page     int
	PageSize int
	Pages    int
	Total    int
	Returned int
	HasNext  bool
	HasPrev  bool

	StatsOverPage     *Stats
	StatsOverFiltered *Stats
}

// ListResult is one page of items. Exactly one of Items and Records is
// populated, depending on whether the query asked for specific fields.
type ListResult struct {
	Items   []Item
	Records []Record
	Meta    PageMeta
}

// RelatedResult holds the anchor item and its best same-category peers.
type RelatedResult struct {
	BaseID       string
	BaseCategory string
	Items        []Item
	Records      []Record
}
