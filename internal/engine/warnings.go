package engine

// Warning severity levels
const (
	SeverityWarn = "warn"
	SeverityInfo = "info"
)

// Warning codes for non-fatal anomalies
const (
	CodeRouteMalformed      = "ROUTE_MALFORMED"
	CodeRouteDuplicate      = "ROUTE_DUPLICATE"
	CodeRouteAmbiguous      = "ROUTE_AMBIGUOUS"
	CodeFileUnreadable      = "FILE_UNREADABLE"
	CodeFileBinary          = "FILE_BINARY"
	CodeCommentUnterminated = "COMMENT_UNTERMINATED"
	CodeConfigUnknownKey    = "CONFIG_UNKNOWN_KEY"
)

// Warning is a non-fatal anomaly surfaced in the run summary.
// Warnings are collected, never silently dropped.
type Warning struct {
	Severity string `json:"severity"`
	Code     string `json:"code,omitempty"`
	Text     string `json:"text"`
}
