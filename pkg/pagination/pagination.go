package pagination

const (
	// DefaultPageSize is the standard page size when one is not provided.
	DefaultPageSize = 25
	// MaxPageSize caps how many rows any list query can request.
	MaxPageSize = 100
)

// Params holds 1-indexed offset pagination inputs from controllers or services.
type Params struct {
	Page     int
	PageSize int
}

// Normalize enforces the 1-indexed page and the configured default and maximum
// page sizes. A non-positive default falls back to DefaultPageSize.
func (p Params) Normalize(defaultSize int) Params {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	out := p
	if out.Page <= 0 {
		out.Page = 1
	}
	if out.PageSize <= 0 {
		out.PageSize = defaultSize
	}
	if out.PageSize > MaxPageSize {
		out.PageSize = MaxPageSize
	}
	return out
}

// Offset returns the row offset for the page. Call Normalize first.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Envelope is the uniform paginated response shape.
type Envelope struct {
	Data     any   `json:"data"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

// NewEnvelope shapes a page of rows. Data must be a slice; callers pass an
// empty (non-nil) slice for pages past the end so JSON stays `[]`.
func NewEnvelope(data any, total int64, params Params) Envelope {
	return Envelope{
		Data:     data,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}
}
