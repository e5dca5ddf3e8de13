package portals

import (
	"testing"

	"gridrl/grid_world"
	"gridrl/rand_source"

	. "github.com/smartystreets/goconvey/convey"
)

func placePortal(g grid_world.Grid, p grid_world.Position) {
	g.At(p).Type = grid_world.Portal
}

func TestFind(t *testing.T) {
	Convey("Find returns portal positions in row-major order", t, func() {
		g := grid_world.NewEmpty(4)
		placePortal(g, grid_world.Position{X: 3, Y: 2})
		placePortal(g, grid_world.Position{X: 1, Y: 0})
		placePortal(g, grid_world.Position{X: 0, Y: 2})

		So(Find(g), ShouldResemble, []grid_world.Position{
			{X: 1, Y: 0},
			{X: 0, Y: 2},
			{X: 3, Y: 2},
		})
	})
}

func TestTeleport(t *testing.T) {
	src := rand_source.NewMulberry32(7)

	Convey("With zero or one portal the position is returned unchanged", t, func() {
		g := grid_world.NewEmpty(4)
		cur := grid_world.Position{X: 1, Y: 1}
		So(Teleport(g, cur, src), ShouldResemble, cur)

		placePortal(g, cur)
		So(Teleport(g, cur, src), ShouldResemble, cur)
	})

	Convey("With several portals the origin is never chosen and every other portal is reachable", t, func() {
		g := grid_world.NewEmpty(5)
		origin := grid_world.Position{X: 0, Y: 0}
		exits := []grid_world.Position{{X: 4, Y: 0}, {X: 2, Y: 2}, {X: 4, Y: 4}}
		placePortal(g, origin)
		for _, p := range exits {
			placePortal(g, p)
		}

		seen := map[grid_world.Position]int{}
		for i := 0; i < 500; i++ {
			dest := Teleport(g, origin, src)
			So(dest, ShouldNotResemble, origin)
			seen[dest]++
		}
		for _, p := range exits {
			So(seen[p], ShouldBeGreaterThan, 0)
		}
	})
}

func TestCooldowns(t *testing.T) {
	p := grid_world.Position{X: 1, Y: 2}
	q := grid_world.Position{X: 3, Y: 0}

	Convey("DecrementAll drops expiring entries and never stores non-positives", t, func() {
		m := CooldownMap{Key(p): 1, Key(q): 2}
		m.DecrementAll()

		So(m, ShouldResemble, CooldownMap{Key(q): 1})

		m.DecrementAll()
		So(len(m), ShouldEqual, 0)
	})

	Convey("Set overwrites listed positions and leaves the rest alone", t, func() {
		m := CooldownMap{Key(p): 9}
		m.Set([]grid_world.Position{q}, 3)

		So(m[Key(p)], ShouldEqual, 9)
		So(m[Key(q)], ShouldEqual, 3)

		m.Set([]grid_world.Position{p, q}, 5)
		So(m[Key(p)], ShouldEqual, 5)
		So(m[Key(q)], ShouldEqual, 5)
	})

	Convey("OnCooldown is true only for stored positive entries", t, func() {
		m := CooldownMap{}
		So(m.OnCooldown(p), ShouldBeFalse)

		m.Set([]grid_world.Position{p}, 1)
		So(m.OnCooldown(p), ShouldBeTrue)
		So(m.OnCooldown(q), ShouldBeFalse)

		m.DecrementAll()
		So(m.OnCooldown(p), ShouldBeFalse)
	})

	Convey("Keys are distinct across distinct positions", t, func() {
		So(Key(grid_world.Position{X: 1, Y: 2}), ShouldNotEqual, Key(grid_world.Position{X: 2, Y: 1}))
		So(Key(grid_world.Position{X: 0, Y: 0}), ShouldNotEqual, Key(grid_world.Position{X: 0, Y: 1}))
	})
}
