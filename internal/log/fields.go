package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldEntityID   = "entity_id"
	FieldEntityKind = "entity_kind"
	FieldCurrency   = "currency"
	FieldMemberRole = "member_role"
	FieldBillName   = "bill_name"
	FieldModel      = "model"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentStore     = "store"
	ComponentAdvisor   = "advisor"
	ComponentReports   = "reports"
	ComponentRateLimit = "rate_limit"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpPay      = "pay"
	OpSimulate = "simulate"
	OpAdvise   = "advise"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
