package log

// Common field names for structured logging.
const (
	FieldComponent    = "component"
	FieldError        = "error"
	FieldOperation    = "operation"
	FieldPayeeID      = "payee_id"
	FieldOrganization = "organization"
	FieldSector       = "sector"
	FieldYear         = "year"
	FieldAmountCents  = "amount_cents"
	FieldCount        = "count"
	FieldPath         = "path"
	FieldFormat       = "format"
	FieldSource       = "source"
	FieldDuration     = "duration_ms"
)

// Components defines standard component names.
const (
	ComponentApp      = "app"
	ComponentSource   = "source"
	ComponentAnalysis = "analysis"
	ComponentEval     = "charapi"
	ComponentStore    = "evalstore"
	ComponentReport   = "report"
	ComponentAMQP     = "amqp"
)

// Operations defines standard operation names.
const (
	OpLoad     = "load"
	OpParse    = "parse"
	OpClassify = "classify"
	OpEvaluate = "evaluate"
	OpRender   = "render"
	OpPublish  = "publish"
)
