package domain

import "time"

// Coefficient names as they appear in solver output and exports.
const (
	CoefficientLift   = "CL"
	CoefficientDrag   = "CD"
	CoefficientMoment = "CMz"
)

// ForceCoefficients are the integrated aerodynamic coefficients of one
// solution. A nil field means the value was not found.
type ForceCoefficients struct {
	CL  *float64 `json:"cl"`
	CD  *float64 `json:"cd"`
	CMz *float64 `json:"cmz"`
}

// Missing lists the names of absent coefficients.
func (f ForceCoefficients) Missing() []string {
	var out []string
	if f.CL == nil {
		out = append(out, CoefficientLift)
	}
	if f.CD == nil {
		out = append(out, CoefficientDrag)
	}
	if f.CMz == nil {
		out = append(out, CoefficientMoment)
	}
	return out
}

// Complete reports whether all coefficients were found.
func (f ForceCoefficients) Complete() bool {
	return len(f.Missing()) == 0
}

// SweepPlan is a resolved sweep request.
type SweepPlan struct {
	CaseFile   string
	ForcesFile string
	Angles     []float64
}

// SweepPoint is the outcome of one solver run.
type SweepPoint struct {
	AoA        float64           `json:"aoa"`
	Restart    bool              `json:"restart"`
	Forces     ForceCoefficients `json:"forces"`
	DurationMS int64             `json:"duration_ms"`
	Error      string            `json:"error,omitempty"`
	ErrorKind  RunErrorKind      `json:"error_kind,omitempty"`
	Warnings   []string          `json:"warnings,omitempty"`
}

// Failed reports whether the solver run itself failed.
func (p SweepPoint) Failed() bool {
	return p.Error != ""
}

// SweepResult is a persisted polar sweep.
type SweepResult struct {
	ID        string       `json:"id"`
	CaseFile  string       `json:"case_file"`
	StartedAt time.Time    `json:"started_at"`
	EndedAt   time.Time    `json:"ended_at"`
	Points    []SweepPoint `json:"points"`
}
