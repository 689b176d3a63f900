package logging

// Standardized field names for structured logging.
const (
	FieldFile       = "file_path"
	FieldPage       = "page"
	FieldPageCount  = "page_count"
	FieldSource     = "source"
	FieldStage      = "stage"
	FieldRasterizer = "rasterizer"
	FieldEngine     = "engine"
	FieldPSM        = "psm"
	FieldDPI        = "dpi"
	FieldWorkers    = "workers"
	FieldCount      = "count"
	FieldChars      = "chars"
	FieldFormat     = "format"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
)
