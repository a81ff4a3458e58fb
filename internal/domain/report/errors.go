package report

import "errors"

var (
	// ErrAggregation wraps failures while assembling summary inputs. The
	// caller decides whether to render partial data or fail the request.
	ErrAggregation = errors.New("report aggregation failed")
)
