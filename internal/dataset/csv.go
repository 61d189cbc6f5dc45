package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sync/errgroup"

	"pharmakpi/internal/core"
)

// File names expected inside the CSV data directory.
const (
	CategoriesFile = "categories.csv"
	ProductsFile   = "produits.csv"
	SalesFile      = "ventes_mensuelles.csv"
)

// CSVLoader reads the three dataset files from a directory. The files carry
// a header row; columns are resolved by name so column order is free.
type CSVLoader struct {
	Dir string
}

// NewCSVLoader points the loader at a data directory.
func NewCSVLoader(dir string) *CSVLoader {
	return &CSVLoader{Dir: dir}
}

// Load reads the three files concurrently and builds the snapshot.
func (l *CSVLoader) Load(ctx context.Context) (*Snapshot, error) {
	var (
		categories []core.Category
		products   []core.Product
		sales      []core.SalesRow
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		categories, err = l.loadCategories()
		return err
	})
	g.Go(func() (err error) {
		products, err = l.loadProducts()
		return err
	})
	g.Go(func() (err error) {
		sales, err = l.loadSales()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewSnapshot(categories, products, sales), nil
}

func (l *CSVLoader) loadCategories() ([]core.Category, error) {
	rows, err := l.readFile(CategoriesFile)
	if err != nil {
		return nil, err
	}
	out := make([]core.Category, 0, len(rows))
	for _, r := range rows {
		out = append(out, core.Category{
			ID:   r["id_categorie"],
			Name: r["nom"],
		})
	}
	return out, nil
}

func (l *CSVLoader) loadProducts() ([]core.Product, error) {
	rows, err := l.readFile(ProductsFile)
	if err != nil {
		return nil, err
	}
	out := make([]core.Product, 0, len(rows))
	for _, r := range rows {
		active, _ := strconv.ParseBool(r["actif"])
		out = append(out, core.Product{
			ID:         r["id_produit"],
			Name:       r["nom"],
			Brand:      r["marque"],
			SKU:        r["sku"],
			CategoryID: r["id_categorie"],
			Active:     active,
		})
	}
	return out, nil
}

func (l *CSVLoader) loadSales() ([]core.SalesRow, error) {
	rows, err := l.readFile(SalesFile)
	if err != nil {
		return nil, err
	}
	out := make([]core.SalesRow, 0, len(rows))
	for i, r := range rows {
		year, err := strconv.Atoi(r["annee"])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad annee %q", SalesFile, i+2, r["annee"])
		}
		month, err := strconv.Atoi(r["mois"])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad mois %q", SalesFile, i+2, r["mois"])
		}
		qty, err := strconv.ParseFloat(r["quantite"], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad quantite %q", SalesFile, i+2, r["quantite"])
		}
		price, err := strconv.ParseFloat(r["prix_moyen_unitaire"], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad prix_moyen_unitaire %q", SalesFile, i+2, r["prix_moyen_unitaire"])
		}
		out = append(out, core.SalesRow{
			ID:        r["id_vente_mensuelle"],
			ProductID: r["id_produit"],
			Year:      year,
			Month:     month,
			Quantity:  qty,
			UnitPrice: price,
		})
	}
	return out, nil
}

// readFile returns every data row as a column-name keyed map.
func (l *CSVLoader) readFile(name string) ([]map[string]string, error) {
	f, err := os.Open(filepath.Join(l.Dir, name))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse %s: missing header row", name)
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
