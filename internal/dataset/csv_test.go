package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeTestFiles(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		CategoriesFile: "id_categorie,nom\nc1,Dermocosmétique\nc2,OTC\n",
		ProductsFile: "id_produit,nom,marque,sku,id_categorie,actif\n" +
			"p1,Crème Hydratante,Marque DERMO,SKU-001,c1,true\n" +
			"p2,Paracétamol 500mg,Marque OTC,SKU-002,c2,true\n",
		SalesFile: "id_vente_mensuelle,id_produit,annee,mois,quantite,prix_moyen_unitaire\n" +
			"s1,p1,2023,1,10,5.00\n" +
			"s2,p1,2024,1,12,5.50\n" +
			"s3,p2,2024,2,100,6.40\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestCSVLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	writeTestFiles(t, dir)

	snap, err := NewCSVLoader(dir).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	counts := snap.Counts()
	if counts.Categories != 2 || counts.Products != 2 || counts.Sales != 3 {
		t.Errorf("Counts() = %+v, want 2/2/3", counts)
	}

	p, ok := snap.ProductByID["p1"]
	if !ok {
		t.Fatal("product p1 missing from index")
	}
	if p.Name != "Crème Hydratante" || p.CategoryID != "c1" || !p.Active {
		t.Errorf("product p1 = %+v", p)
	}

	r := snap.Sales[1]
	if r.Year != 2024 || r.Month != 1 || r.Quantity != 12 || r.UnitPrice != 5.5 {
		t.Errorf("sales row s2 = %+v", r)
	}
}

func TestCSVLoaderMissingFile(t *testing.T) {
	if _, err := NewCSVLoader(t.TempDir()).Load(context.Background()); err == nil {
		t.Fatal("Load() on empty dir should fail")
	}
}

func TestCSVLoaderBadNumeric(t *testing.T) {
	dir := t.TempDir()
	writeTestFiles(t, dir)
	bad := "id_vente_mensuelle,id_produit,annee,mois,quantite,prix_moyen_unitaire\ns1,p1,not-a-year,1,10,5.00\n"
	if err := os.WriteFile(filepath.Join(dir, SalesFile), []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewCSVLoader(dir).Load(context.Background()); err == nil {
		t.Fatal("Load() with malformed annee should fail")
	}
}
