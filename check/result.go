package check

// Result is the outcome of a validation pass. It is produced once per check
// and never mutated afterwards. Errors preserve the order in which rules or
// schema constraints were evaluated.
type Result struct {
	// Valid is true iff Errors is empty.
	Valid bool
	// Errors holds one description per violated rule or constraint.
	Errors []string
	// Name identifies the schema or rule set that produced the result.
	Name string
	// Data is the payload that was checked.
	Data any
}

// Pass builds a valid result for the given rule set and payload.
func Pass(name string, data any) Result {
	return Result{Valid: true, Name: name, Data: data}
}

// Fail builds an invalid result carrying the given error descriptions.
func Fail(name string, data any, errs ...string) Result {
	return Result{Valid: false, Errors: errs, Name: name, Data: data}
}

// FromErrors builds a result whose validity is derived from the error list.
func FromErrors(name string, data any, errs []string) Result {
	return Result{Valid: len(errs) == 0, Errors: errs, Name: name, Data: data}
}

// Merge combines several results into one. The merged result is valid only
// if every input is valid; errors keep their input order.
func Merge(name string, results ...Result) Result {
	var errs []string
	for _, r := range results {
		errs = append(errs, r.Errors...)
	}
	return Result{Valid: len(errs) == 0, Errors: errs, Name: name}
}
