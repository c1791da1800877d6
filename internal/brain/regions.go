package brain

// Region is the categorical label attached to every reservoir node.
type Region int

const (
	Semantic Region = iota
	Auditory
	Limbic
	Association
)

// regionNames indexes by Region value.
var regionNames = [...]string{"semantic", "auditory", "limbic", "association"}

func (r Region) String() string {
	if r < Semantic || r > Association {
		return "association"
	}
	return regionNames[r]
}

// ParseRegion maps a wire tag to a Region. Tags outside the known range
// collapse to Association rather than erroring.
func ParseRegion(tag int) Region {
	if tag < int(Semantic) || tag > int(Association) {
		return Association
	}
	return Region(tag)
}
