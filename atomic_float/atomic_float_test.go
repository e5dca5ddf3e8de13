package atomic_float

import (
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAdd(t *testing.T) {
	Convey("When multiple writers add to the value concurrently", t, func() {
		f := NewAtomicFloat64(0)
		numOps := 3000
		numWriters := 8

		wg := sync.WaitGroup{}
		wg.Add(numWriters)
		for i := 0; i < numWriters; i++ {
			go func() {
				defer wg.Done()
				for j := 0; j < numOps; j++ {
					f.Add(1.0)
				}
			}()
		}
		wg.Wait()

		So(f.Read(), ShouldEqual, float64(numOps*numWriters))
	})
}

func TestMax(t *testing.T) {
	Convey("Max only ever raises the stored value", t, func() {
		f := NewAtomicFloat64(10)

		So(f.Max(5), ShouldEqual, 10.0)
		So(f.Max(15), ShouldEqual, 15.0)
		So(f.Read(), ShouldEqual, 15.0)
	})

	Convey("Concurrent Max calls settle on the largest value", t, func() {
		f := NewAtomicFloat64(0)
		wg := sync.WaitGroup{}
		for i := 1; i <= 100; i++ {
			wg.Add(1)
			go func(v float64) {
				defer wg.Done()
				f.Max(v)
			}(float64(i))
		}
		wg.Wait()

		So(f.Read(), ShouldEqual, 100.0)
	})
}

func TestSet(t *testing.T) {
	Convey("Set stores unconditionally", t, func() {
		f := NewAtomicFloat64(3.5)
		f.Set(-2.25)
		So(f.Read(), ShouldEqual, -2.25)
	})
}
