// Package models holds the storefront's persisted records. JSON field names
// follow the shape stored under the products, orders, cart and wishlist keys.
// Prices are stored as JSON numbers; the binary sets
// decimal.MarshalJSONWithoutQuotes at startup.
package models
