package verdict

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/xstupi00/line-of-sight/internal/shared"
)

func TestCompute(t *testing.T) {
	Convey("Given angle and prefix-max arrays", t, func() {
		reg := shared.Acquire(6)
		a := []float32{-1, 2, 2, 2, 2, 2}
		m := []float32{-1, -1, 2, 2, 2, 2}
		for i := range a {
			reg.A.Set(i, a[i])
			reg.M.Set(i, m[i])
		}

		Compute(reg, 0, 6)

		Convey("R[0] is never written", func() {
			So(reg.R[0], ShouldBeFalse)
		})

		Convey("ties are not visible, strictly-greater angles are", func() {
			So(reg.R[1], ShouldBeTrue)  // 2 > -1
			So(reg.R[2], ShouldBeFalse) // 2 > 2 is false
			So(reg.R[3], ShouldBeFalse)
			So(reg.R[4], ShouldBeFalse)
			So(reg.R[5], ShouldBeFalse)
		})
	})

	Convey("Compute only touches the requested range", t, func() {
		reg := shared.Acquire(4)
		reg.A.Set(2, 5)
		reg.M.Set(2, 1)
		reg.A.Set(3, 5)
		reg.M.Set(3, 1)

		Compute(reg, 2, 4)

		So(reg.R[0], ShouldBeFalse)
		So(reg.R[1], ShouldBeFalse)
		So(reg.R[2], ShouldBeTrue)
		So(reg.R[3], ShouldBeTrue)
	})
}
