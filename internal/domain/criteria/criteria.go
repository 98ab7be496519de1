// Package criteria is the registry of judged categories, their criteria
// and weight percentages. It is the source of truth for table column
// layout and for the weighting applied during aggregation.
package criteria

// Category names fixed at deploy time.
const (
	Talent     = "talent"
	Sports     = "sports"
	Gown       = "gown"
	Photogenic = "photogenic"
	Interview  = "interview"
	Production = "production"
	Overall    = "overall"
)

// Criterion is a named sub-score with its weight percentage. Weight is
// a literal percentage applied as weight/100, not a normalized fraction.
type Criterion struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Definition describes one category: display title, backing table name
// and the ordered criterion list. For direct-input categories the last
// criterion is the cross-category impact score by convention.
type Definition struct {
	Title    string      `json:"title"`
	Table    string      `json:"table"`
	Derived  bool        `json:"derived"`
	Criteria []Criterion `json:"criteria"`
}

// order fixes the iteration order for All.
var order = []string{Talent, Sports, Gown, Photogenic, Interview, Production, Overall}

var registry = map[string]Definition{
	Talent: {
		Title: "Best in Talent",
		Table: "Talent Scores",
		Criteria: []Criterion{
			{Name: "Stage Present", Weight: 30},
			{Name: "Mastery", Weight: 30},
			{Name: "Execution of Talent", Weight: 30},
			{Name: "Overall Impact", Weight: 10},
		},
	},
	Sports: {
		Title: "Best in Sports Wear",
		Table: "Sports Wear Scores",
		Criteria: []Criterion{
			{Name: "Suitability", Weight: 30},
			{Name: "Sports Identity", Weight: 20},
			{Name: "Poise and Bearing", Weight: 40},
			{Name: "Overall Impact", Weight: 10},
		},
	},
	Gown: {
		Title: "Best in Gown",
		Table: "Gown Scores",
		Criteria: []Criterion{
			{Name: "Poise and Bearing", Weight: 40},
			{Name: "Design and Fitting", Weight: 25},
			{Name: "Stage Deportment", Weight: 25},
			{Name: "Overall Impact", Weight: 10},
		},
	},
	Photogenic: {
		Title: "Most Photogenic",
		Table: "Photogenic Scores",
		Criteria: []Criterion{
			{Name: "Natural Smile and Look", Weight: 30},
			{Name: "Poise and Confidence", Weight: 20},
			{Name: "Personality", Weight: 15},
			{Name: "Beauty", Weight: 35},
		},
	},
	Interview: {
		Title: "Best in Interview",
		Table: "Interview Scores",
		Criteria: []Criterion{
			{Name: "Wit and Content", Weight: 40},
			{Name: "Projection and Delivery", Weight: 30},
			{Name: "Stage Presence", Weight: 20},
			{Name: "Overall Impact", Weight: 10},
		},
	},
	Production: {
		Title: "Best in Production Number",
		Table: "Production Number Scores",
		Criteria: []Criterion{
			{Name: "Stage Presence", Weight: 30},
			{Name: "Mastery", Weight: 30},
			{Name: "Projection", Weight: 30},
			{Name: "Overall Impact", Weight: 10},
		},
	},
	Overall: {
		Title:   "Overall Awards",
		Table:   "Overall Scores",
		Derived: true,
		// Display-only list. The aggregation weights for the derived
		// overall score are a policy constant owned by the tally
		// package, deliberately not read from here.
		Criteria: []Criterion{
			{Name: "Intelligence (Q&A)", Weight: 45},
			{Name: "Sports Wear", Weight: 15},
			{Name: "Gown", Weight: 15},
			{Name: "Overall Impact", Weight: 25},
		},
	},
}

// Valid reports whether name is a known category.
func Valid(name string) bool {
	_, ok := registry[name]
	return ok
}

// IsDerived reports whether the category is populated by aggregation
// rather than by direct judge submissions.
func IsDerived(name string) bool {
	return registry[name].Derived
}

// Lookup returns the full definition for a category.
func Lookup(name string) (Definition, bool) {
	def, ok := registry[name]
	return def, ok
}

// Criteria returns the ordered criterion list for a category. Unknown
// categories yield an empty list; callers gate on Valid first.
func Criteria(name string) []Criterion {
	def, ok := registry[name]
	if !ok {
		return nil
	}
	out := make([]Criterion, len(def.Criteria))
	copy(out, def.Criteria)
	return out
}

// ImpactCriterion returns the name of the last criterion in the
// category's list, which by convention carries the cross-category
// impact score. Empty for unknown categories.
func ImpactCriterion(name string) string {
	def, ok := registry[name]
	if !ok || len(def.Criteria) == 0 {
		return ""
	}
	return def.Criteria[len(def.Criteria)-1].Name
}

// TableName returns the backing table's display name for a category.
func TableName(name string) string {
	def, ok := registry[name]
	if !ok {
		return "Scores"
	}
	return def.Table
}

// All returns the category names in their fixed display order.
func All() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// Direct returns the names of all direct-input categories.
func Direct() []string {
	out := make([]string, 0, len(order))
	for _, name := range order {
		if !registry[name].Derived {
			out = append(out, name)
		}
	}
	return out
}

// Sources returns the direct categories the derived overall score is
// computed from.
func Sources() []string {
	return []string{Interview, Sports, Gown}
}

// IsSource reports whether a submission to the category must trigger an
// overall recompute.
func IsSource(name string) bool {
	for _, src := range Sources() {
		if src == name {
			return true
		}
	}
	return false
}

// Header returns the table header row for a category. Direct categories
// follow [Timestamp, Judge Name, Candidate Number, Total Score,
// criteria...]; the derived overall table has a fixed seven-column
// layout of aggregate values.
func Header(name string) []string {
	if name == Overall {
		return []string{
			"Timestamp", "Candidate Number", "Final Score",
			"Interview Avg", "Sports Avg", "Gown Avg", "Avg Impact",
		}
	}
	def, ok := registry[name]
	if !ok {
		return nil
	}
	h := []string{"Timestamp", "Judge Name", "Candidate Number", "Total Score"}
	for _, c := range def.Criteria {
		h = append(h, c.Name)
	}
	return h
}

// Headers returns header rows for every known category, keyed by name.
func Headers() map[string][]string {
	out := make(map[string][]string, len(registry))
	for name := range registry {
		out[name] = Header(name)
	}
	return out
}
