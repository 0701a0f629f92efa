package domain

// ContainerSpec is the single shared geometry and weight capacity every
// container instance in an Assignment uses — spec.md §1 is explicit that
// container geometry is not a decision variable, only the number of
// instances is.
type ContainerSpec struct {
	Dims    Dims
	WeightMax int64
}

// Volume returns the interior volume L*W*H.
func (c ContainerSpec) Volume() int64 { return c.Dims.Volume() }
