package catalog

import (
	"github.com/promopro/chatmesh/tool"
)

// NewProductSearchTool adapts the staged product search as an agent tool. The
// returned text embeds the split-marker formatting, so agents can relay it
// verbatim.
func NewProductSearchTool(c *Catalog) *tool.FunctionTool {
	return tool.NewFunctionTool(
		"search_products",
		"Search the promotional products catalog by keyword, category and price range. Returns up to a handful of matches formatted for the chat client.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"keyword": map[string]any{
					"type":        "string",
					"description": "Free-text keyword matched against product name and description.",
				},
				"category": map[string]any{
					"type":        "string",
					"description": "Optional category filter.",
				},
				"min_price": map[string]any{
					"type":        "number",
					"description": "Optional lower price bound in MXN.",
				},
				"max_price": map[string]any{
					"type":        "number",
					"description": "Optional upper price bound in MXN.",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results, defaults to 3.",
				},
			},
			"required": []string{},
		},
		func(tctx *tool.ToolContext, args map[string]any) (any, error) {
			q := queryFromArgs(args)
			tctx.Logger().Info("tool.search_products", "keyword", q.Keyword, "category", q.Category)
			return FormatProducts(c.SearchProducts(q)), nil
		},
	)
}

// NewKitSearchTool adapts the kit search as an agent tool.
func NewKitSearchTool(c *Catalog) *tool.FunctionTool {
	return tool.NewFunctionTool(
		"search_kits",
		"Search the promotional kits catalog by keyword and price range. Kits bundle several products; the keyword also matches component lists.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"keyword": map[string]any{
					"type":        "string",
					"description": "Free-text keyword matched against kit name, description and components.",
				},
				"min_price": map[string]any{
					"type":        "number",
					"description": "Optional lower price bound in MXN.",
				},
				"max_price": map[string]any{
					"type":        "number",
					"description": "Optional upper price bound in MXN.",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results, defaults to 3.",
				},
			},
			"required": []string{},
		},
		func(tctx *tool.ToolContext, args map[string]any) (any, error) {
			q := queryFromArgs(args)
			tctx.Logger().Info("tool.search_kits", "keyword", q.Keyword)
			return FormatKits(c.SearchKits(q)), nil
		},
	)
}

// queryFromArgs builds a Query from loosely typed tool arguments. Missing and
// mistyped fields fall back to the zero value rather than failing the call.
func queryFromArgs(args map[string]any) Query {
	q := Query{}
	if s, ok := args["keyword"].(string); ok {
		q.Keyword = s
	}
	if s, ok := args["category"].(string); ok {
		q.Category = s
	}
	if f, ok := args["min_price"].(float64); ok {
		q.MinPrice = &f
	}
	if f, ok := args["max_price"].(float64); ok {
		q.MaxPrice = &f
	}
	if f, ok := args["limit"].(float64); ok && f > 0 {
		q.Limit = int(f)
	}
	return q
}
