package generator

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRandSource(t *testing.T) {
	Convey("Given a seeded source", t, func() {
		source := NewRandSource(42)

		Convey("Float64 stays in [0, 1)", func() {
			for range 1_000 {
				value := source.Float64()
				So(value, ShouldBeGreaterThanOrEqualTo, 0)
				So(value, ShouldBeLessThan, 1)
			}
		})

		Convey("UniformFloat stays in [low, high)", func() {
			for range 1_000 {
				value := source.UniformFloat(0.05, 2.0)
				So(value, ShouldBeGreaterThanOrEqualTo, 0.05)
				So(value, ShouldBeLessThan, 2.0)
			}
		})

		Convey("UniformInt covers both ends of the range", func() {
			seen := make(map[int]bool)
			for range 1_000 {
				value := source.UniformInt(0, 3)
				So(value, ShouldBeBetweenOrEqual, 0, 3)
				seen[value] = true
			}
			So(len(seen), ShouldEqual, 4)
		})

		Convey("Pick returns a member of the slice", func() {
			items := []string{"alpha", "beta", "gamma"}
			for range 100 {
				So(items, ShouldContain, source.Pick(items))
			}
		})

		Convey("The same seed gives the same sequence", func() {
			first := NewRandSource(7)
			second := NewRandSource(7)
			for range 100 {
				So(first.Float64(), ShouldEqual, second.Float64())
				So(first.UniformInt(0, 1_000_000), ShouldEqual, second.UniformInt(0, 1_000_000))
			}
		})
	})
}
