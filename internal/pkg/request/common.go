package request

// ByIDRequest is a common struct for endpoints that take a numeric ID path
// parameter. Binding rejects non-integer and negative values before any
// domain code runs.
type ByIDRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Validate performs custom validation for ByIDRequest.
func (r *ByIDRequest) Validate() error {
	return nil
}
