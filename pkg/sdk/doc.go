// Package catalog embeds the product catalog query engine in a Go program.
//
// The client owns an in-memory item store, restored from a snapshot (a JSON
// file, a Redis key, or nothing at all) and seeded with a deterministic sample
// catalog when no snapshot exists yet.
//
//	client, _ := catalog.New(ctx, catalog.WithFile("data.json"))
//	defer client.Close()
//
//	res, _ := client.Items().List(ctx, catalog.Query{
//	    Category: "electronics",
//	    SortBy:   "-rating,price",
//	    Limit:    10,
//	})
//	for _, it := range res.Items {
//	    fmt.Println(it.ID, it.Name, it.Price)
//	}
//
// Queries use the same validation and ordering rules as the HTTP API, so a
// Query and the equivalent query string always select the same items.
package catalog
