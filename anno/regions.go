package anno

import (
	"fmt"
	"github.com/celskeggs/gcviterbi/hmm"
)

// Region is a maximal run of consecutive positions sharing one state.
type Region struct {
	State  hmm.State
	Length int
}

// Regions splits an annotation into its maximal runs, in order.
func Regions(annotation []hmm.State) []Region {
	var regions []Region
	startPoint := 0
	for startPoint < len(annotation) {
		endPoint := startPoint + 1
		for endPoint < len(annotation) && annotation[startPoint] == annotation[endPoint] {
			endPoint += 1
		}
		regions = append(regions, Region{
			State:  annotation[startPoint],
			Length: endPoint - startPoint,
		})
		startPoint = endPoint
	}
	return regions
}

// Expand is the inverse of Regions.
func Expand(regions []Region) []hmm.State {
	var annotation []hmm.State
	for _, region := range regions {
		for i := 0; i < region.Length; i++ {
			annotation = append(annotation, region.State)
		}
	}
	return annotation
}

func checkStates(annotation []hmm.State, numStates int) error {
	for i, k := range annotation {
		if k < 0 || int(k) >= numStates {
			return fmt.Errorf("%w: state %d at position %d (%d states)", hmm.ErrSymbolOutOfRange, k, i, numStates)
		}
	}
	return nil
}

// RegionLengths lists the length of every region of each state, in the order the regions appear.
func RegionLengths(annotation []hmm.State, numStates int) ([][]int, error) {
	if numStates <= 0 {
		return nil, fmt.Errorf("%w: %d states", hmm.ErrInvalidModel, numStates)
	}
	if err := checkStates(annotation, numStates); err != nil {
		return nil, err
	}
	lengths := make([][]int, numStates)
	for _, region := range Regions(annotation) {
		lengths[region.State] = append(lengths[region.State], region.Length)
	}
	return lengths, nil
}

// MeanRegionLength is zero when there are no regions.
func MeanRegionLength(lengths []int) float64 {
	if len(lengths) == 0 {
		return 0
	}
	total := 0
	for _, l := range lengths {
		total += l
	}
	return float64(total) / float64(len(lengths))
}
