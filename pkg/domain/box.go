// Package domain holds the immutable data model of spec.md §3: boxes, the
// container specification, assignments, placements, and the ALNS solution
// state. Everything is addressed by dense slice index, never by pointer —
// see the arena design note in spec.md §9.
package domain

// RotationPolicy is a tagged sum over the three allowed-orientation
// families in spec.md §3. Iteration over a box's allowed orientations is
// the sole access pattern downstream code needs, so the policy exposes
// its orientation list directly rather than being switched on repeatedly.
type RotationPolicy int

const (
	// RotationNone allows only the nominal (l,w,h) orientation.
	RotationNone RotationPolicy = iota
	// RotationZAxis allows swapping length and width but keeps the
	// height axis fixed.
	RotationZAxis
	// RotationFree allows all six axis permutations.
	RotationFree
)

func (r RotationPolicy) String() string {
	switch r {
	case RotationNone:
		return "none"
	case RotationZAxis:
		return "z"
	case RotationFree:
		return "free"
	default:
		return "unknown"
	}
}

// Dims is a (length, width, height) integer triple. All downstream
// arithmetic — volumes, capacities, coordinates — is integer, matching
// spec.md's insistence on integer corners and dimensions.
type Dims struct {
	L, W, H int64
}

// Volume returns the nominal volume, which is rotation-invariant.
func (d Dims) Volume() int64 { return d.L * d.W * d.H }

// Permute returns the dims permuted by orientation index k, using the
// canonical six-permutation order from spec.md §6:
// 0=(L,W,H) 1=(L,H,W) 2=(W,L,H) 3=(W,H,L) 4=(H,L,W) 5=(H,W,L).
func (d Dims) Permute(k int) Dims {
	switch k {
	case 0:
		return Dims{d.L, d.W, d.H}
	case 1:
		return Dims{d.L, d.H, d.W}
	case 2:
		return Dims{d.W, d.L, d.H}
	case 3:
		return Dims{d.W, d.H, d.L}
	case 4:
		return Dims{d.H, d.L, d.W}
	case 5:
		return Dims{d.H, d.W, d.L}
	default:
		panic("domain: orientation index out of range")
	}
}

// Orientations returns the canonical orientation-index list allowed for
// policy, in the fixed order spec.md §3/§6 requires.
func Orientations(policy RotationPolicy) []int {
	switch policy {
	case RotationNone:
		return []int{0}
	case RotationZAxis:
		return []int{0, 2}
	case RotationFree:
		return []int{0, 1, 2, 3, 4, 5}
	default:
		panic("domain: unknown rotation policy")
	}
}

// Box is one input item. It is immutable after ingestion; GroupID is a
// pointer only to distinguish "no group" from group 0, matching spec.md's
// "optional group tag (integer or absent)".
type Box struct {
	// ID is the caller-supplied label. IDs may repeat across the input —
	// see spec.md §9's Open Question — so ID is never used for addressing.
	ID       int
	Nominal  Dims
	Weight   int64
	Rotation RotationPolicy
	GroupID  *int
}

// HasGroup reports whether the box carries a group tag.
func (b Box) HasGroup() bool { return b.GroupID != nil }

// AllowedOrientations returns the orientation indices allowed for this
// box's rotation policy.
func (b Box) AllowedOrientations() []int { return Orientations(b.Rotation) }

// EffectiveDims returns the box's dimensions under orientation index k.
func (b Box) EffectiveDims(k int) Dims { return b.Nominal.Permute(k) }
