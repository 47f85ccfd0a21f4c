// Package catalog implements the product search service backing the sales
// agents: CSV-loaded product and kit tables, keyword/price filtering with a
// staged fallback strategy, and result formatting that instructs the client
// to render each product as separate chat bubbles.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/promopro/chatmesh/logging"
)

// Product is one row of the individual promotional products table.
type Product struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`

	priceNumeric float64
}

// Kit is one row of the promotional kits table. Components lists the
// individual products bundled in the kit.
type Kit struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Components  string `json:"components"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url"`

	priceNumeric float64
}

// Options configures a Catalog.
type Options struct {
	Logger logging.Logger
}

// Catalog holds the loaded tables. It is immutable after loading and safe
// for concurrent use.
type Catalog struct {
	products []Product
	kits     []Kit
	logger   logging.Logger
}

// New constructs a catalog over already-built records.
func New(products []Product, kits []Kit, optFns ...func(o *Options)) *Catalog {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	for i := range products {
		products[i].priceNumeric = parsePrice(products[i].Price)
	}
	for i := range kits {
		kits[i].priceNumeric = parsePrice(kits[i].Price)
	}
	return &Catalog{products: products, kits: kits, logger: opts.Logger}
}

// Products returns the loaded product rows.
func (c *Catalog) Products() []Product { return c.products }

// Kits returns the loaded kit rows.
func (c *Catalog) Kits() []Kit { return c.kits }

// LoadFromCSV builds a catalog from the two CSV files. Expected product
// columns: sku, name, category, price, description, image_url. Expected kit
// columns: name, description, components, price, image_url. Unknown columns
// are ignored; column order is taken from the header row.
func LoadFromCSV(productsPath, kitsPath string, optFns ...func(o *Options)) (*Catalog, error) {
	products, err := readCSV(productsPath, func(row map[string]string) Product {
		return Product{
			SKU:         row["sku"],
			Name:        row["name"],
			Category:    row["category"],
			Price:       row["price"],
			Description: row["description"],
			ImageURL:    row["image_url"],
		}
	})
	if err != nil {
		return nil, fmt.Errorf("load products from %s: %w", productsPath, err)
	}

	kits, err := readCSV(kitsPath, func(row map[string]string) Kit {
		return Kit{
			Name:        row["name"],
			Description: row["description"],
			Components:  row["components"],
			Price:       row["price"],
			ImageURL:    row["image_url"],
		}
	})
	if err != nil {
		return nil, fmt.Errorf("load kits from %s: %w", kitsPath, err)
	}

	return New(products, kits, optFns...), nil
}

// readCSV parses one CSV file into records via the header-keyed row mapper.
func readCSV[T any](path string, build func(row map[string]string) T) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	var records []T
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(fields) {
				row[col] = strings.TrimSpace(fields[i])
			}
		}
		records = append(records, build(row))
	}
	return records, nil
}

// parsePrice strips currency symbols and thousands separators, keeping digits
// and the decimal point. Unparseable prices normalize to zero.
func parsePrice(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	price, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return price
}
