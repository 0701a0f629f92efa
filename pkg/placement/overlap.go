package placement

import (
	"fmt"

	"github.com/cargostow/loadplan/pkg/modelutil"
	"github.com/cargostow/loadplan/pkg/solver"
)

// nonOverlapAndSupport adds the pairwise non-overlap and no-floating
// constraints of spec.md §4.2 and returns the on_floor and supports
// variables the soft objective's surface-contact term also needs.
func (b *builder) nonOverlapAndSupport() (onFloor []int, supports map[[2]int]int) {
	cd := b.in.Container.Dims
	bigX, bigY, bigZ := float64(cd.L)*2, float64(cd.W)*2, float64(cd.H)*2

	for i := 0; i < b.n; i++ {
		for s := i + 1; s < b.n; s++ {
			sepXm := b.m.NewBoolVar(fmt.Sprintf("sep_xm_%d_%d", i, s))
			sepXp := b.m.NewBoolVar(fmt.Sprintf("sep_xp_%d_%d", i, s))
			sepYm := b.m.NewBoolVar(fmt.Sprintf("sep_ym_%d_%d", i, s))
			sepYp := b.m.NewBoolVar(fmt.Sprintf("sep_yp_%d_%d", i, s))
			sepZm := b.m.NewBoolVar(fmt.Sprintf("sep_zm_%d_%d", i, s))
			sepZp := b.m.NewBoolVar(fmt.Sprintf("sep_zp_%d_%d", i, s))

			// sep_xm: pos_x[i]+l_eff[i] <= pos_x[s]
			modelutil.ImpliesLE(b.m, fmt.Sprintf("sep_xm_%d_%d", i, s),
				solver.Expr{}.Add(b.posX[i], 1).Add(b.lEff[i], 1).Add(b.posX[s], -1), 0, bigX, sepXm)
			modelutil.ImpliesLE(b.m, fmt.Sprintf("sep_xp_%d_%d", i, s),
				solver.Expr{}.Add(b.posX[s], 1).Add(b.lEff[s], 1).Add(b.posX[i], -1), 0, bigX, sepXp)
			modelutil.ImpliesLE(b.m, fmt.Sprintf("sep_ym_%d_%d", i, s),
				solver.Expr{}.Add(b.posY[i], 1).Add(b.wEff[i], 1).Add(b.posY[s], -1), 0, bigY, sepYm)
			modelutil.ImpliesLE(b.m, fmt.Sprintf("sep_yp_%d_%d", i, s),
				solver.Expr{}.Add(b.posY[s], 1).Add(b.wEff[s], 1).Add(b.posY[i], -1), 0, bigY, sepYp)
			modelutil.ImpliesLE(b.m, fmt.Sprintf("sep_zm_%d_%d", i, s),
				solver.Expr{}.Add(b.posZ[i], 1).Add(b.hEff[i], 1).Add(b.posZ[s], -1), 0, bigZ, sepZm)
			modelutil.ImpliesLE(b.m, fmt.Sprintf("sep_zp_%d_%d", i, s),
				solver.Expr{}.Add(b.posZ[s], 1).Add(b.hEff[s], 1).Add(b.posZ[i], -1), 0, bigZ, sepZp)

			m2 := solver.Expr{}.Add(sepXm, 1).Add(sepXp, 1).Add(sepYm, 1).Add(sepYp, 1).Add(sepZm, 1).Add(sepZp, 1)
			b.m.AddConstraint(fmt.Sprintf("nonoverlap_%d_%d", i, s), m2, solver.GE, 1)
		}
	}

	onFloor = make([]int, b.n)
	supports = make(map[[2]int]int)
	bigXover, bigYover := float64(cd.L)+1, float64(cd.W)+1

	for i := 0; i < b.n; i++ {
		onFloor[i] = b.m.NewBoolVar(fmt.Sprintf("on_floor_%d", i))
		modelutil.EqualsConstantWhen(b.m, fmt.Sprintf("on_floor_def_%d", i), b.posZ[i], 0, float64(cd.H), onFloor[i])

		floorOr := solver.Expr{}.Add(onFloor[i], 1)
		for s := 0; s < b.n; s++ {
			if s == i {
				continue
			}
			sup := b.m.NewBoolVar(fmt.Sprintf("supports_%d_%d", i, s))
			supports[[2]int{i, s}] = sup

			// supports[i,s]=1 => pos_z[s]+h_eff[s] = pos_z[i]
			modelutil.ImpliesEQ(b.m, fmt.Sprintf("support_z_%d_%d", i, s),
				solver.Expr{}.Add(b.posZ[s], 1).Add(b.hEff[s], 1).Add(b.posZ[i], -1), 0, 2*float64(cd.H), sup)
			// supports[i,s]=1 => pos_x[s] < pos_x[i]+l_eff[i]
			modelutil.ImpliesLE(b.m, fmt.Sprintf("support_xlo_%d_%d", i, s),
				solver.Expr{}.Add(b.posX[s], 1).Add(b.posX[i], -1).Add(b.lEff[i], -1), -1, bigXover, sup)
			// supports[i,s]=1 => pos_x[i] < pos_x[s]+l_eff[s]
			modelutil.ImpliesLE(b.m, fmt.Sprintf("support_xhi_%d_%d", i, s),
				solver.Expr{}.Add(b.posX[i], 1).Add(b.posX[s], -1).Add(b.lEff[s], -1), -1, bigXover, sup)
			// supports[i,s]=1 => pos_y[s] < pos_y[i]+w_eff[i]
			modelutil.ImpliesLE(b.m, fmt.Sprintf("support_ylo_%d_%d", i, s),
				solver.Expr{}.Add(b.posY[s], 1).Add(b.posY[i], -1).Add(b.wEff[i], -1), -1, bigYover, sup)
			// supports[i,s]=1 => pos_y[i] < pos_y[s]+w_eff[s]
			modelutil.ImpliesLE(b.m, fmt.Sprintf("support_yhi_%d_%d", i, s),
				solver.Expr{}.Add(b.posY[i], 1).Add(b.posY[s], -1).Add(b.wEff[s], -1), -1, bigYover, sup)

			floorOr = floorOr.Add(sup, 1)
		}
		b.m.AddConstraint(fmt.Sprintf("no_floating_%d", i), floorOr, solver.GE, 1)
	}
	return onFloor, supports
}
