package install

// Check is the outcome of a single post-installation probe.
type Check struct {
	// Name identifies the probe to the user.
	Name string
	// Passed reports whether the probe succeeded.
	Passed bool
	// Fatal marks probes whose failure invalidates the installation.
	Fatal bool
	// Note carries optional detail shown next to the outcome.
	Note string
}

// Report is the ordered list of verification outcomes for one run.
type Report struct {
	checks []Check
}

// Add appends a check outcome, preserving insertion order.
func (r *Report) Add(c Check) {
	r.checks = append(r.checks, c)
}

// Checks returns the outcomes in the order they were recorded.
func (r *Report) Checks() []Check {
	out := make([]Check, len(r.checks))
	copy(out, r.checks)

	return out
}

// Passed reports whether no fatal check failed.
func (r *Report) Passed() bool {
	return len(r.FatalFailures()) == 0
}

// FatalFailures returns the fatal checks that failed, in order.
func (r *Report) FatalFailures() []Check {
	var failed []Check

	for _, c := range r.checks {
		if c.Fatal && !c.Passed {
			failed = append(failed, c)
		}
	}

	return failed
}
