package challenge

import (
	"testing"

	"gridrl/grid_world"

	. "github.com/smartystreets/goconvey/convey"
)

// Golden layout facts for 2025-01-18, independently derived from the seed
// hash and mulberry32 contract. Any drift in the generator breaks stored
// replays, so these are asserted exactly.
const goldenDate = "2025-01-18"

func TestGenerateGolden(t *testing.T) {
	Convey("The 2025-01-18 challenge matches its golden vector", t, func() {
		ch, err := Generate(goldenDate)
		So(err, ShouldBeNil)

		So(ch.Seed, ShouldEqual, uint32(274162087))
		So(ch.Agent, ShouldResemble, grid_world.Position{X: 1, Y: 0})
		So(ch.Goal, ShouldResemble, grid_world.Position{X: 4, Y: 3})

		counts := map[grid_world.TileType]int{}
		ch.Grid.Visit(func(p grid_world.Position, tile *grid_world.Tile) {
			counts[tile.Type]++
		})
		So(counts[grid_world.Obstacle], ShouldEqual, 11)
		So(counts[grid_world.Reward], ShouldEqual, 6)
		So(counts[grid_world.Punishment], ShouldEqual, 4)
		So(counts[grid_world.Portal], ShouldEqual, 2)

		So(ch.Grid.At(grid_world.Position{X: 6, Y: 2}).Type, ShouldEqual, grid_world.Portal)
		So(ch.Grid.At(grid_world.Position{X: 0, Y: 5}).Type, ShouldEqual, grid_world.Portal)
		So(ch.Grid.At(grid_world.Position{X: 2, Y: 1}).Type, ShouldEqual, grid_world.Obstacle)
	})

	Convey("Repeated generation is bit-identical", t, func() {
		a, err := Generate(goldenDate)
		So(err, ShouldBeNil)
		b, err := Generate(goldenDate)
		So(err, ShouldBeNil)

		So(a.Seed, ShouldEqual, b.Seed)
		So(a.Agent, ShouldResemble, b.Agent)
		So(a.Goal, ShouldResemble, b.Goal)
		So(a.Grid, ShouldResemble, b.Grid)
	})

	Convey("Agent and goal are placed on free cells, never colliding", t, func() {
		for _, date := range []string{"2025-01-18", "2025-06-01", "2024-12-31"} {
			ch, err := Generate(date)
			So(err, ShouldBeNil)
			So(ch.Agent, ShouldNotResemble, ch.Goal)
			So(ch.Grid.At(ch.Agent).Type, ShouldEqual, grid_world.Empty)
			So(ch.Grid.At(ch.Goal).Type, ShouldEqual, grid_world.Empty)
		}
	})

	Convey("Malformed dates are rejected", t, func() {
		_, err := Generate("01/18/2025")
		So(err, ShouldNotBeNil)
	})
}

func TestChallengeLayout(t *testing.T) {
	Convey("The layout record carries the fixed size and single goal", t, func() {
		ch, err := Generate(goldenDate)
		So(err, ShouldBeNil)

		layout := ch.Layout()
		So(layout.Size, ShouldEqual, Side)
		So(layout.Goal, ShouldNotBeNil)
		So(*layout.Goal, ShouldResemble, grid_world.LayoutPosition{X: 4, Y: 3})
		// 11 + 6 + 4 + 2 placed tiles.
		So(len(layout.Tiles), ShouldEqual, 23)
	})
}
