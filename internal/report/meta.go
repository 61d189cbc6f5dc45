package report

import "pharmakpi/internal/dataset"

type YearsReport struct {
	Years []int `json:"years"`
}

type CategoryInfo struct {
	ID   string `json:"id_categorie"`
	Name string `json:"nom"`
}

type CategoriesReport struct {
	Categories []CategoryInfo `json:"categories"`
}

// Years lists the distinct sale years present in the snapshot, ascending.
func Years(snap *dataset.Snapshot) YearsReport {
	return YearsReport{Years: snap.Years()}
}

// Categories lists the category referential in load order.
func Categories(snap *dataset.Snapshot) CategoriesReport {
	out := make([]CategoryInfo, len(snap.Categories))
	for i, c := range snap.Categories {
		out[i] = CategoryInfo{ID: c.ID, Name: c.Name}
	}
	return CategoriesReport{Categories: out}
}
