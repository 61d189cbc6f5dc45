package http

import (
	"net/http"

	"pharmakpi/internal/dataset"
	"pharmakpi/internal/log"
	"pharmakpi/internal/report"
)

type healthResponse struct {
	OK     bool           `json:"ok"`
	Loaded dataset.Counts `json:"loaded"`
}

type reloadResponse struct {
	OK       bool           `json:"ok"`
	Reloaded dataset.Counts `json:"reloaded"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		OK:     true,
		Loaded: s.store.Snapshot().Counts(),
	})
}

func (s *Server) handleMetaYears(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, report.Years(s.store.Snapshot()))
}

func (s *Server) handleMetaCategories(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, report.Categories(s.store.Snapshot()))
}

func (s *Server) handleYearlyKPIs(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	query := r.URL.Query()

	year, err := optionalYear(query, "year")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	categoryID := queryString(query, "categoryId")

	writeJSON(w, http.StatusOK, report.YearlyKPI(s.store.Snapshot(), year, categoryID))
}

func (s *Server) handleRevenueSeries(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	query := r.URL.Query()

	year, err := requireYear(query, "year")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	categoryID := queryString(query, "categoryId")

	writeJSON(w, http.StatusOK, report.RevenueSeries(s.store.Snapshot(), year, categoryID))
}

func (s *Server) handleProductSeries(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	query := r.URL.Query()

	year, err := requireYear(query, "year")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	productID := queryString(query, "productId")
	if productID == "" {
		s.respondError(w, r, missingParam("productId"))
		return
	}

	out, err := report.ProductSeries(s.store.Snapshot(), year, productID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCompareYearly(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	query := r.URL.Query()

	year, err := requireYear(query, "year")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ref, err := requireYear(query, "ref")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	categoryID := queryString(query, "categoryId")

	writeJSON(w, http.StatusOK, report.CompareYearly(s.store.Snapshot(), year, ref, categoryID))
}

func (s *Server) handleCategoryContribution(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	query := r.URL.Query()

	year, err := requireYear(query, "year")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ref, err := requireYear(query, "ref")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report.CategoryContribution(s.store.Snapshot(), year, ref))
}

func (s *Server) handlePriceVolume(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	query := r.URL.Query()

	year, err := requireYear(query, "year")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ref, err := requireYear(query, "ref")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	categoryID := queryString(query, "categoryId")

	writeJSON(w, http.StatusOK, report.PriceVolume(s.store.Snapshot(), year, ref, categoryID))
}

func (s *Server) handleDiagnostic(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	query := r.URL.Query()

	year, err := requireYear(query, "year")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ref, err := requireYear(query, "ref")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report.Diagnostic(s.store.Snapshot(), year, ref))
}

func (s *Server) handleTopProducts(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	query := r.URL.Query()

	year, err := requireYear(query, "year")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ref, err := requireYear(query, "ref")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	categoryID := queryString(query, "categoryId")
	limit := parseLimit(query)

	writeJSON(w, http.StatusOK, report.TopProducts(s.store.Snapshot(), year, ref, categoryID, limit))
}

func (s *Server) handleProductAnalysis(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	query := r.URL.Query()

	year, err := requireYear(query, "year")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ref, err := requireYear(query, "ref")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	productID := queryString(query, "productId")
	if productID == "" {
		s.respondError(w, r, missingParam("productId"))
		return
	}

	out, err := report.ProductAnalysis(s.store.Snapshot(), year, ref, productID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMonthDetail(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	query := r.URL.Query()

	year, err := requireYear(query, "year")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	month, err := requireMonth(query, "month")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ref, err := optionalYear(query, "ref")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	categoryID := queryString(query, "categoryId")
	limit := parseLimit(query)

	writeJSON(w, http.StatusOK, report.MonthDetail(s.store.Snapshot(), year, month, ref, categoryID, limit))
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	counts, err := s.store.Reload(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Dataset reload failed",
			log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Reload failed")
		return
	}

	s.responseCache.Purge()

	writeJSON(w, http.StatusOK, reloadResponse{OK: true, Reloaded: counts})
}
