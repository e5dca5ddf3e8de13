package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gridrl/challenge"
	"gridrl/grid_world"

	. "github.com/smartystreets/goconvey/convey"
)

func testServer(ctx context.Context, updates chan Snapshot) *Server {
	return NewServer(ctx, ":0", updates)
}

func TestChallengeRoutes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv := testServer(ctx, make(chan Snapshot))

	Convey("GET /api/challenge/{date} returns the deterministic layout", t, func() {
		req := httptest.NewRequest(http.MethodGet, "/api/challenge/2025-01-18", nil)
		rec := httptest.NewRecorder()
		srv.router().ServeHTTP(rec, req)

		So(rec.Code, ShouldEqual, http.StatusOK)

		var body struct {
			Date   string            `json:"date"`
			Seed   uint32            `json:"initial_seed"`
			Layout grid_world.Layout `json:"layout"`
		}
		So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
		So(body.Date, ShouldEqual, "2025-01-18")
		So(body.Seed, ShouldEqual, uint32(274162087))
		So(body.Layout.Size, ShouldEqual, challenge.Side)
		So(body.Layout.Agent, ShouldResemble, grid_world.LayoutPosition{X: 1, Y: 0})
	})

	Convey("A malformed date is a 400", t, func() {
		req := httptest.NewRequest(http.MethodGet, "/api/challenge/tomorrow", nil)
		rec := httptest.NewRecorder()
		srv.router().ServeHTTP(rec, req)

		So(rec.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("POST /api/challenge/{date}/replay validates a winning path", t, func() {
		replay := challenge.Replay{
			Actions:     []string{"right", "right", "right", "down", "down", "down"},
			InitialSeed: 274162087,
		}
		payload, err := json.Marshal(replay)
		So(err, ShouldBeNil)

		req := httptest.NewRequest(http.MethodPost, "/api/challenge/2025-01-18/replay", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		srv.router().ServeHTTP(rec, req)

		So(rec.Code, ShouldEqual, http.StatusOK)

		var result challenge.ReplayResult
		So(json.Unmarshal(rec.Body.Bytes(), &result), ShouldBeNil)
		So(result.Valid, ShouldBeTrue)
		So(result.Success, ShouldBeTrue)
		So(result.Steps, ShouldEqual, 6)
	})

	Convey("An unreadable replay payload is a 400", t, func() {
		req := httptest.NewRequest(http.MethodPost, "/api/challenge/2025-01-18/replay", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		srv.router().ServeHTTP(rec, req)

		So(rec.Code, ShouldEqual, http.StatusBadRequest)
	})
}

func TestSnapshotRoutes(t *testing.T) {
	Convey("Before any snapshot the layout route is a 404", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		srv := testServer(ctx, make(chan Snapshot))

		req := httptest.NewRequest(http.MethodGet, "/api/layout", nil)
		rec := httptest.NewRecorder()
		srv.router().ServeHTTP(rec, req)

		So(rec.Code, ShouldEqual, http.StatusNotFound)
	})

	Convey("After a snapshot arrives the layout route serves it", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		updates := make(chan Snapshot)
		srv := testServer(ctx, updates)
		// Drain the websocket branch so the broadcast never stalls.
		go func() {
			for range srv.wsFeed {
			}
		}()

		g := grid_world.NewEmpty(4)
		snap := Snapshot{
			Mode:   "playground",
			Layout: grid_world.ToLayout(g, grid_world.Position{X: 0, Y: 3}, []grid_world.Position{{X: 3, Y: 0}}),
		}
		updates <- snap

		// The cache consumer runs concurrently; poll until it lands.
		var rec *httptest.ResponseRecorder
		for i := 0; i < 100; i++ {
			rec = httptest.NewRecorder()
			srv.router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/layout", nil))
			if rec.Code == http.StatusOK {
				break
			}
			time.Sleep(time.Millisecond)
		}
		So(rec.Code, ShouldEqual, http.StatusOK)

		var layout grid_world.Layout
		So(json.Unmarshal(rec.Body.Bytes(), &layout), ShouldBeNil)
		So(layout.Size, ShouldEqual, 4)
		So(layout.Agent, ShouldResemble, grid_world.LayoutPosition{X: 0, Y: 3})
	})
}
