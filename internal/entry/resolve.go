package entry

import (
	"slices"

	"nathanbeddoewebdev/vitals/internal/similarity"
)

// Outcome is the kind of decision Resolve made about a name.
type Outcome int

const (
	// Known means the name is already a stored metric.
	Known Outcome = iota + 1
	// Create means the name should become a new metric.
	Create
	// Suggest means the name is unknown but close matches exist.
	Suggest
)

func (o Outcome) String() string {
	switch o {
	case Known:
		return "known"
	case Create:
		return "create"
	case Suggest:
		return "suggest"
	default:
		return "unknown"
	}
}

// Resolution is the decision for one name. Name has any verbatim marker
// removed. Candidates is only set for Suggest.
type Resolution struct {
	Outcome    Outcome
	Name       string
	Verbatim   bool
	Candidates []string
}

// Resolve decides what to do with name given the recognised metric names.
// Verbatim names skip matching. Otherwise an unknown name yields up to k
// candidates, or Create when there is nothing to suggest.
func Resolve(name string, recognised []string, k int) Resolution {
	if slices.Contains(recognised, name) {
		return Resolution{Outcome: Known, Name: name}
	}

	if stripped, ok := IsVerbatim(name); ok {
		if slices.Contains(recognised, stripped) {
			return Resolution{Outcome: Known, Name: stripped, Verbatim: true}
		}
		return Resolution{Outcome: Create, Name: stripped, Verbatim: true}
	}

	candidates := similarity.ClosestMatches(name, recognised, k)
	if len(candidates) == 0 {
		return Resolution{Outcome: Create, Name: name}
	}
	return Resolution{Outcome: Suggest, Name: name, Candidates: candidates}
}
