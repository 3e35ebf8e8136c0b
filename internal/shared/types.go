package shared

// Asynq task types and queues shared between the API and the worker.
const (
	TypeMetadataDelete     = "engagement:metadata:delete"
	TypeOrphanSweep        = "engagement:metadata:sweep"
	TypeAggregateReconcile = "engagement:metadata:reconcile"

	QueueEngagement = "engagement"
)

// Pagination holds normalized page/limit query parameters.
type Pagination struct {
	Page  int
	Limit int
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Normalize clamps page and limit into valid ranges, applying defaults.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset converts page/limit into a SQL offset.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages computes ceil(total/limit).
func (p Pagination) TotalPages(total int64) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}
