package cache

import "fmt"

// ProductsKey holds the full product listing shared by every user.
const ProductsKey = "products:all"

// UserKey identifies a cached user row.
func UserKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// CatalogVersionKey counts writes to existing products. Cart views embed
// product names and prices, so their keys include this version.
const CatalogVersionKey = "catalog:version"

// CartVersionKey counts writes to a user's active cart.
func CartVersionKey(userID uint) string {
	return fmt.Sprintf("cart:%d:version", userID)
}

// CartKey identifies a user's cached active cart view at the given catalog
// and cart versions. Bumping either version orphans older views.
func CartKey(userID uint, catalogVersion, cartVersion int64) string {
	return fmt.Sprintf("cart:%d:%d:%d", userID, catalogVersion, cartVersion)
}

// CategoriesKey identifies a user's cached category list.
func CategoriesKey(userID uint) string {
	return fmt.Sprintf("categories:%d", userID)
}
