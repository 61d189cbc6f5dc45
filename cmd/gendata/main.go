// Command gendata writes a deterministic demo dataset: five categories,
// fifty products and three years of monthly sales. All randomness is keyed
// SHA-256, so repeated runs produce byte-identical CSV files.
package main

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/csv"
	"encoding/hex"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/schollz/progressbar/v3"

	"pharmakpi/internal/dataset"
)

var years = []int{2023, 2024, 2025}

type categoryDef struct {
	id   string
	name string
	code string
}

type productDef struct {
	id         string
	name       string
	brand      string
	sku        string
	categoryID string
	code       string
	basePrice  float64
	tier       string
}

type yearFactors struct {
	vol    float64
	price  float64
	catVol map[string]float64
}

var yearConfig = map[int]yearFactors{
	2023: {vol: 1.0, price: 1.0},
	2024: {
		vol:   1.08,
		price: 1.03,
		catVol: map[string]float64{
			"DERMO": 1.12, "COMP": 1.15, "OTC": 1.05, "HYGI": 1.06, "BEBE": 1.02,
		},
	},
	2025: {
		vol:   0.94,
		price: 1.01,
		catVol: map[string]float64{
			"OTC": 0.85, "DERMO": 1.0, "COMP": 1.03, "HYGI": 0.95, "BEBE": 1.0,
		},
	},
}

var basePriceByCategory = map[string]float64{
	"OTC":   6.5,
	"DERMO": 14.0,
	"COMP":  12.0,
	"HYGI":  7.0,
	"BEBE":  10.0,
}

var promoProbByCategory = map[string]float64{
	"OTC":   0.05,
	"DERMO": 0.10,
	"COMP":  0.08,
	"HYGI":  0.06,
	"BEBE":  0.04,
}

// High-volume products get the STAR tier; the rest split into MID and SMALL.
var starProducts = map[string]bool{
	"Paracétamol 500mg Boîte 16":            true,
	"Ibuprofène 200mg Boîte 20":             true,
	"Sirop Toux Sèche 150ml":                true,
	"Spray Nasal Décongestionnant":          true,
	"Crème Hydratante Peaux Sensibles 50ml": true,
	"Sérum Vitamine C Éclat 30ml":           true,
	"Crème Anti-Âge Nuit 40ml":              true,
	"Magnésium + Vitamine B6":               true,
	"Complexe Immunité":                     true,
	"Gel Douche Peaux Sensibles":            true,
}

func main() {
	outDir := flag.String("out", "data", "output directory for the CSV files")
	flag.Parse()

	if err := run(*outDir); err != nil {
		fmt.Fprintln(os.Stderr, "gendata:", err)
		os.Exit(1)
	}
}

func run(outDir string) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	categories := buildCategories()
	products := buildProducts(categories)

	if err := writeCategories(filepath.Join(outDir, dataset.CategoriesFile), categories); err != nil {
		return err
	}
	if err := writeProducts(filepath.Join(outDir, dataset.ProductsFile), products); err != nil {
		return err
	}
	if err := writeSales(filepath.Join(outDir, dataset.SalesFile), products); err != nil {
		return err
	}

	fmt.Printf("wrote %s, %s, %s in %s (%d sales rows)\n",
		dataset.CategoriesFile, dataset.ProductsFile, dataset.SalesFile,
		outDir, len(products)*len(years)*12)
	return nil
}

func buildCategories() []categoryDef {
	defs := []struct{ name, code string }{
		{"Dermocosmétique", "DERMO"},
		{"Compléments alimentaires", "COMP"},
		{"OTC", "OTC"},
		{"Hygiène & soins", "HYGI"},
		{"Bébé & maternité", "BEBE"},
	}
	out := make([]categoryDef, len(defs))
	for i, d := range defs {
		out[i] = categoryDef{
			id:   uuidFromString("cat:" + d.code),
			name: d.name,
			code: d.code,
		}
	}
	return out
}

func buildProducts(categories []categoryDef) []productDef {
	defs := []struct{ name, code string }{
		{"Crème Hydratante Peaux Sensibles 50ml", "DERMO"},
		{"Sérum Vitamine C Éclat 30ml", "DERMO"},
		{"Gel Nettoyant Purifiant 200ml", "DERMO"},
		{"Crème Anti-Âge Nuit 40ml", "DERMO"},
		{"Fluide Matifiant SPF30 50ml", "DERMO"},
		{"Baume Lèvres Réparateur", "DERMO"},
		{"Eau Micellaire Douceur 400ml", "DERMO"},
		{"Crème Mains Nourrissante 75ml", "DERMO"},
		{"Masque Apaisant Aloe Vera", "DERMO"},
		{"Lotion Tonique Hydratante", "DERMO"},

		{"Paracétamol 500mg Boîte 16", "OTC"},
		{"Ibuprofène 200mg Boîte 20", "OTC"},
		{"Sirop Toux Sèche 150ml", "OTC"},
		{"Spray Gorge Apaisant", "OTC"},
		{"Pastilles Gorge Menthol", "OTC"},
		{"Spray Nasal Décongestionnant", "OTC"},
		{"Solution Lavage Nasal", "OTC"},
		{"Crème Antalgique Musculaire", "OTC"},
		{"Comprimés Allergie Printemps", "OTC"},
		{"Gel Arnica Chocs & Bleus", "OTC"},

		{"Magnésium + Vitamine B6", "COMP"},
		{"Vitamine D3 1000 UI", "COMP"},
		{"Complexe Immunité", "COMP"},
		{"Oméga 3 Capsules", "COMP"},
		{"Probiotiques Équilibre Intestinal", "COMP"},
		{"Collagène Marin", "COMP"},
		{"Multivitamines Adulte", "COMP"},
		{"Fer + Vitamine C", "COMP"},
		{"Mélatonine Sommeil", "COMP"},
		{"Complexe Articulations", "COMP"},

		{"Gel Douche Peaux Sensibles", "HYGI"},
		{"Shampooing Usage Fréquent", "HYGI"},
		{"Dentifrice Gencives Sensibles", "HYGI"},
		{"Bain de Bouche Fraîcheur", "HYGI"},
		{"Savon Surgras Dermatologique", "HYGI"},
		{"Déodorant Peaux Sensibles", "HYGI"},
		{"Solution Désinfectante Mains", "HYGI"},
		{"Pansements Assortis", "HYGI"},
		{"Gel Hydroalcoolique 100ml", "HYGI"},
		{"Eau Oxygénée 10 Volumes", "HYGI"},

		{"Lait Infantile 1er Âge", "BEBE"},
		{"Lait Infantile 2ème Âge", "BEBE"},
		{"Liniment Oléo-Calcaire", "BEBE"},
		{"Crème Change Bébé", "BEBE"},
		{"Thermomètre Digital Bébé", "BEBE"},
		{"Sérum Physiologique Bébé", "BEBE"},
		{"Gel Lavant Bébé", "BEBE"},
		{"Sucettes Silicone 0-6 mois", "BEBE"},
		{"Huile Massage Bébé", "BEBE"},
		{"Vitamine D Bébé", "BEBE"},
	}

	byCode := make(map[string]categoryDef, len(categories))
	for _, c := range categories {
		byCode[c.code] = c
	}

	out := make([]productDef, len(defs))
	for i, d := range defs {
		spread := (rand01("priceSpread:"+d.name) - 0.5) * 0.6
		tier := "NORMAL"
		if starProducts[d.name] {
			tier = "STAR"
		}
		out[i] = productDef{
			id:         uuidFromString("prod:" + d.name),
			name:       d.name,
			brand:      "Marque " + d.code,
			sku:        fmt.Sprintf("SKU-%03d", i+1),
			categoryID: byCode[d.code].id,
			code:       d.code,
			basePrice:  round2(basePriceByCategory[d.code] * (1 + spread)),
			tier:       tier,
		}
	}

	// 25 MID and 15 SMALL among the non-stars, picked deterministically.
	var normals []*productDef
	for i := range out {
		if out[i].tier == "NORMAL" {
			normals = append(normals, &out[i])
		}
	}
	sort.Slice(normals, func(a, b int) bool {
		return rand01("tierRank:"+normals[a].name) < rand01("tierRank:"+normals[b].name)
	})
	for i, p := range normals {
		if i < 25 {
			p.tier = "MID"
		} else {
			p.tier = "SMALL"
		}
	}

	return out
}

func seasonality(code string, month int) float64 {
	switch code {
	case "OTC":
		if month == 1 || month == 2 {
			return 1.35
		}
		if month == 10 || month == 11 {
			return 1.15
		}
		return 0.95
	case "DERMO":
		if month >= 5 && month <= 8 {
			return 1.2
		}
		if month == 12 {
			return 1.05
		}
		return 0.95
	case "COMP":
		if month == 3 || month == 4 {
			return 1.2
		}
		if month >= 9 && month <= 11 {
			return 1.15
		}
		return 0.95
	case "HYGI":
		if month == 9 {
			return 1.08
		}
		return 1.0
	default:
		return 1.0
	}
}

func baseQty(tier, name string) float64 {
	jitter := rand01("qtyBase:"+name) - 0.5
	switch tier {
	case "STAR":
		return math.Round(260 + jitter*60)
	case "MID":
		return math.Round(115 + jitter*50)
	default:
		return math.Round(50 + jitter*40)
	}
}

func monthlyPrice(p productDef, year, month int) float64 {
	y := yearConfig[year]
	base := p.basePrice * y.price

	key := fmt.Sprintf("%s:%d:%d", p.name, year, month)
	noise := (rand01("priceNoise:"+key) - 0.5) * 0.04
	price := base * (1 + noise)

	promoProb, ok := promoProbByCategory[p.code]
	if !ok {
		promoProb = 0.06
	}
	if rand01("promo:"+key) < promoProb {
		depth := 0.05 + rand01("promoDepth:"+key)*0.13
		price *= 1 - depth
	}

	return round2(clamp(price, 1.0, 200.0))
}

func monthlyQty(p productDef, year, month int) int {
	y := yearConfig[year]
	catMul := 1.0
	if m, ok := y.catVol[p.code]; ok {
		catMul = m
	}

	key := fmt.Sprintf("%s:%d:%d", p.name, year, month)
	noise := (rand01("qtyNoise:"+key) - 0.5) * 0.2
	q := baseQty(p.tier, p.name) * seasonality(p.code, month) * y.vol * catMul * (1 + noise)

	if q < 0 {
		return 0
	}
	return int(math.Round(q))
}

func writeCategories(path string, categories []categoryDef) error {
	rows := [][]string{{"id_categorie", "nom"}}
	for _, c := range categories {
		rows = append(rows, []string{c.id, c.name})
	}
	return writeCSV(path, rows)
}

func writeProducts(path string, products []productDef) error {
	rows := [][]string{{"id_produit", "nom", "marque", "sku", "id_categorie", "actif"}}
	for _, p := range products {
		rows = append(rows, []string{p.id, p.name, p.brand, p.sku, p.categoryID, "true"})
	}
	return writeCSV(path, rows)
}

func writeSales(path string, products []productDef) error {
	rows := [][]string{{"id_vente_mensuelle", "id_produit", "annee", "mois", "quantite", "prix_moyen_unitaire"}}

	bar := progressbar.Default(int64(len(years)*12*len(products)), "generating sales")
	for _, year := range years {
		for month := 1; month <= 12; month++ {
			for _, p := range products {
				rows = append(rows, []string{
					uuidFromString(fmt.Sprintf("sale:%s:%d:%d", p.id, year, month)),
					p.id,
					strconv.Itoa(year),
					strconv.Itoa(month),
					strconv.Itoa(monthlyQty(p, year, month)),
					strconv.FormatFloat(monthlyPrice(p, year, month), 'f', 2, 64),
				})
				_ = bar.Add(1)
			}
		}
	}
	_ = bar.Finish()

	return writeCSV(path, rows)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// uuidFromString derives a stable UUID-shaped id from a key.
func uuidFromString(input string) string {
	sum := sha256.Sum256([]byte(input))
	h := hex.EncodeToString(sum[:])
	return fmt.Sprintf("%s-%s-%s-%s-%s", h[0:8], h[8:12], h[12:16], h[16:20], h[20:32])
}

// rand01 maps a key to a deterministic value in [0,1].
func rand01(key string) float64 {
	sum := sha256.Sum256([]byte(key))
	return float64(binary.BigEndian.Uint32(sum[:4])) / float64(0xffffffff)
}

func clamp(n, min, max float64) float64 {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

func round2(n float64) float64 {
	return math.Round(n*100) / 100
}
