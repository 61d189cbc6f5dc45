package log

// Field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldBackend    = "backend"
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldRef        = "ref"
	FieldCategoryID = "category_id"
	FieldProductID  = "product_id"
	FieldCategories = "categories"
	FieldProducts   = "products"
	FieldSales      = "sales"
)

// Component names.
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentDataset   = "dataset"
	ComponentCache     = "cache"
	ComponentRateLimit = "rate_limit"
)
