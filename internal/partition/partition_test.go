package partition

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewPartition(t *testing.T) {
	Convey("Given N points split over P ranks", t, func() {
		Convey("when N divides evenly", func() {
			part, err := New(12, 4)
			So(err, ShouldBeNil)
			So(part.Count, ShouldResemble, []int{3, 3, 3, 3})
			So(part.Start, ShouldResemble, []int{0, 3, 6, 9})
		})

		Convey("when N does not divide evenly, the lowest ranks get the remainder", func() {
			part, err := New(10, 3)
			So(err, ShouldBeNil)
			So(part.Count, ShouldResemble, []int{4, 3, 3})
			So(part.Start, ShouldResemble, []int{0, 4, 7})
		})

		Convey("block counts never differ by more than one", func() {
			part, err := New(17, 5)
			So(err, ShouldBeNil)
			max, min := part.Count[0], part.Count[0]
			sum := 0
			for _, c := range part.Count {
				if c > max {
					max = c
				}
				if c < min {
					min = c
				}
				sum += c
			}
			So(max-min, ShouldBeLessThanOrEqualTo, 1)
			So(sum, ShouldEqual, 17)
		})

		Convey("P=1 yields a single block covering everything", func() {
			part, err := New(6, 1)
			So(err, ShouldBeNil)
			So(part.Count, ShouldResemble, []int{6})
			So(part.Start, ShouldResemble, []int{0})
		})

		Convey("P=N yields one point per rank", func() {
			part, err := New(5, 5)
			So(err, ShouldBeNil)
			So(part.Count, ShouldResemble, []int{1, 1, 1, 1, 1})
		})

		Convey("N=0 is a caller error", func() {
			_, err := New(0, 2)
			So(err, ShouldNotBeNil)
		})

		Convey("P=0 is a caller error", func() {
			_, err := New(4, 0)
			So(err, ShouldNotBeNil)
		})

		Convey("P>N is a caller error", func() {
			_, err := New(3, 4)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRankOf(t *testing.T) {
	Convey("Given a partition of 10 points over 3 ranks", t, func() {
		part, err := New(10, 3)
		So(err, ShouldBeNil)

		Convey("RankOf returns the owning rank for every index", func() {
			for r := 0; r < part.P(); r++ {
				for i := part.Start[r]; i < part.End(r); i++ {
					So(part.RankOf(i), ShouldEqual, r)
				}
			}
		})
	})
}
