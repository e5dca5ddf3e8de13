package rand_source

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDateSeed(t *testing.T) {
	Convey("The date hash matches its golden vector", t, func() {
		// Any reimplementation of the seeded generator must reproduce this
		// value exactly; replay validation depends on it.
		So(DateSeed("2025-01-18"), ShouldEqual, uint32(274162087))
		So(DateSeed("2025-06-01"), ShouldEqual, uint32(274311004))
	})

	Convey("Distinct dates produce distinct seeds", t, func() {
		So(DateSeed("2025-01-18"), ShouldNotEqual, DateSeed("2025-01-19"))
	})
}

func TestMulberry32(t *testing.T) {
	Convey("Given a generator seeded from the 2025-01-18 hash", t, func() {
		m := NewMulberry32(DateSeed("2025-01-18"))

		Convey("Its normalized outputs match the golden vector bit-for-bit", func() {
			golden := []float64{
				0.23185778479091823,
				0.04367943084798753,
				0.5881299863103777,
				0.43574045575223863,
				0.40359143051318824,
				0.6623716864269227,
			}
			for _, want := range golden {
				So(m.Float64(), ShouldEqual, want)
			}
		})
	})

	Convey("Two generators with the same seed emit identical sequences", t, func() {
		a := NewMulberry32(12345)
		b := NewMulberry32(12345)
		for i := 0; i < 100; i++ {
			So(a.Uint32(), ShouldEqual, b.Uint32())
		}
	})

	Convey("Outputs stay in their contracted ranges", t, func() {
		m := NewMulberry32(99)
		for i := 0; i < 1000; i++ {
			f := m.Float64()
			So(f, ShouldBeGreaterThanOrEqualTo, 0)
			So(f, ShouldBeLessThan, 1)
		}
		for i := 0; i < 1000; i++ {
			v := m.Intn(7)
			So(v, ShouldBeGreaterThanOrEqualTo, 0)
			So(v, ShouldBeLessThan, 7)
		}
	})
}
