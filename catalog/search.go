package catalog

import "strings"

// Query holds the search filters. Nil price bounds are unconstrained; a zero
// Limit defaults to DefaultLimit.
type Query struct {
	Keyword  string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Limit    int
}

// DefaultLimit bounds result sets when the caller does not specify one.
const DefaultLimit = 3

// minTokenLength filters out short tokens in the per-token fallback stage.
const minTokenLength = 3

func (q Query) limit() int {
	if q.Limit > 0 {
		return q.Limit
	}
	return DefaultLimit
}

// SearchProducts runs the staged product search:
//  1. exact: case-insensitive substring of the keyword over name+description,
//     plus category and price-range filters
//  2. looser: the same match tried per keyword token (tokens longer than
//     three characters), category included in the matched fields
//  3. price-only: drop the keyword entirely and keep the price filters
//
// Later stages run only while earlier ones come up empty.
func (c *Catalog) SearchProducts(q Query) []Product {
	match := func(p Product, keyword string, withCategory bool) bool {
		if !priceInRange(p.priceNumeric, q.MinPrice, q.MaxPrice) {
			return false
		}
		if q.Category != "" && !containsFold(p.Category, q.Category) {
			return false
		}
		if keyword == "" {
			return true
		}
		if containsFold(p.Name, keyword) || containsFold(p.Description, keyword) {
			return true
		}
		return withCategory && containsFold(p.Category, keyword)
	}

	results := collect(c.products, q.limit(), func(p Product) bool { return match(p, q.Keyword, false) })
	c.logger.Debug("catalog.search.products.exact", "keyword", q.Keyword, "hits", len(results))
	if len(results) > 0 || q.Keyword == "" {
		return results
	}

	for _, token := range searchTokens(q.Keyword) {
		results = collect(c.products, q.limit(), func(p Product) bool { return match(p, token, true) })
		if len(results) > 0 {
			c.logger.Debug("catalog.search.products.token", "token", token, "hits", len(results))
			return results
		}
	}

	if q.MaxPrice == nil && q.MinPrice == nil {
		return nil
	}
	results = collect(c.products, q.limit(), func(p Product) bool { return match(p, "", false) })
	c.logger.Debug("catalog.search.products.price_only", "hits", len(results))
	return results
}

// SearchKits runs the same staged strategy over the kits table; the keyword
// additionally matches the kit's component list.
func (c *Catalog) SearchKits(q Query) []Kit {
	match := func(k Kit, keyword string) bool {
		if !priceInRange(k.priceNumeric, q.MinPrice, q.MaxPrice) {
			return false
		}
		if keyword == "" {
			return true
		}
		return containsFold(k.Name, keyword) ||
			containsFold(k.Description, keyword) ||
			containsFold(k.Components, keyword)
	}

	results := collect(c.kits, q.limit(), func(k Kit) bool { return match(k, q.Keyword) })
	c.logger.Debug("catalog.search.kits.exact", "keyword", q.Keyword, "hits", len(results))
	if len(results) > 0 || q.Keyword == "" {
		return results
	}

	for _, token := range searchTokens(q.Keyword) {
		results = collect(c.kits, q.limit(), func(k Kit) bool { return match(k, token) })
		if len(results) > 0 {
			c.logger.Debug("catalog.search.kits.token", "token", token, "hits", len(results))
			return results
		}
	}

	if q.MaxPrice == nil && q.MinPrice == nil {
		return nil
	}
	results = collect(c.kits, q.limit(), func(k Kit) bool { return match(k, "") })
	c.logger.Debug("catalog.search.kits.price_only", "hits", len(results))
	return results
}

// collect gathers up to limit rows satisfying the predicate in table order.
func collect[T any](rows []T, limit int, keep func(T) bool) []T {
	var out []T
	for _, row := range rows {
		if !keep(row) {
			continue
		}
		out = append(out, row)
		if len(out) == limit {
			break
		}
	}
	return out
}

// searchTokens extracts the fallback tokens of a keyword: whitespace-split
// words longer than minTokenLength characters.
func searchTokens(keyword string) []string {
	var tokens []string
	for _, word := range strings.Fields(keyword) {
		if len(word) > minTokenLength {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

func priceInRange(price float64, min, max *float64) bool {
	if min != nil && price < *min {
		return false
	}
	if max != nil && price > *max {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
