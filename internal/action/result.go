package action

// Result is the uniform terminal outcome of a guarded action. Exactly one of
// the three shapes is ever populated: success, a field-keyed validation
// failure, or a single-message failure.
type Result struct {
	Success bool                `json:"success"`
	Error   string              `json:"error,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`

	// Kind classifies failures for callers that branch on more than the
	// message (HTTP status mapping, audit outcome).
	Kind Kind `json:"-"`
}

// OK is the single success shape.
func OK() Result {
	return Result{Success: true, Kind: KindNone}
}

// Fail normalizes any error into its failure shape.
func Fail(err error) Result {
	return Normalize(err).Result()
}
