package importer

import "leader-dojo/feature/tracker/models"

// KindCounts holds one counter per entity kind.
type KindCounts struct {
	Project    int `json:"project"`
	Person     int `json:"person"`
	Entry      int `json:"entry"`
	Commitment int `json:"commitment"`
	Reflection int `json:"reflection"`
}

// Add increments the counter for the given kind.
func (c *KindCounts) Add(kind models.EntityKind) {
	switch kind {
	case models.KindProject:
		c.Project++
	case models.KindPerson:
		c.Person++
	case models.KindEntry:
		c.Entry++
	case models.KindCommitment:
		c.Commitment++
	case models.KindReflection:
		c.Reflection++
	}
}

// Total sums the counters across kinds.
func (c KindCounts) Total() int {
	return c.Project + c.Person + c.Entry + c.Commitment + c.Reflection
}

// Report is the single structured outcome of an import. It is the only
// thing the caller ever sees on success; skipped entities surface here as
// warnings, never as errors.
type Report struct {
	Created  KindCounts `json:"created"`
	Updated  KindCounts `json:"updated"`
	Skipped  KindCounts `json:"skipped"`
	Warnings []string   `json:"warnings"`
}

// BuildReport aggregates a finished plan into the caller-facing report.
func BuildReport(plan *Plan) *Report {
	report := &Report{Warnings: plan.Warnings}
	if report.Warnings == nil {
		report.Warnings = []string{}
	}

	for _, kind := range models.KindOrder {
		for _, op := range plan.Ops[kind] {
			switch op.Action {
			case ActionCreate:
				report.Created.Add(kind)
			case ActionUpdate:
				report.Updated.Add(kind)
			case ActionSkip:
				report.Skipped.Add(kind)
			}
		}
	}
	return report
}
