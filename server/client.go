package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"
)

const (
	writeWait = time.Second
	// Snapshots arriving faster than this are dropped; each snapshot fully
	// describes the run, so only the latest matters.
	pubResolution  = 100 * time.Millisecond
	pingResolution = 200 * time.Millisecond
	pongWait       = 4 * pingResolution
)

var upgrader = websocket.Upgrader{}

// ErrPongDeadlineExceeded indicates the peer stopped answering pings.
var ErrPongDeadlineExceeded = errors.New("client disconnect, pong deadline exceeded")

// client publishes snapshots unidirectionally to one websocket peer, with a
// ping-pong liveness check. Snapshots are idempotent descriptions of the
// run, so rate-limited publication can discard intermediates safely.
type client struct {
	updates <-chan Snapshot
	ws      *websocket.Conn
	rootCtx context.Context
}

func newClient(
	updates <-chan Snapshot,
	w http.ResponseWriter,
	r *http.Request,
) (*client, error) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, err
	}
	return &client{
		updates: updates,
		ws:      ws,
		rootCtx: r.Context(),
	}, nil
}

// sync runs the read, ping, and publish loops until the peer disconnects
// or one loop fails. Gorilla permits WriteControl concurrently with other
// writes, so no extra serialization is needed here.
func (cli *client) sync() error {
	defer cli.close()

	group, ctx := errgroup.WithContext(cli.rootCtx)
	group.Go(func() error { return cli.readMessages(ctx) })
	group.Go(func() error { return cli.pingPong(ctx) })
	group.Go(func() error { return cli.publish(ctx) })
	return group.Wait()
}

// pingPong enforces the liveness check. Requires readMessages to be
// running, since the pong handler fires from the read loop.
func (cli *client) pingPong(ctx context.Context) error {
	pong := make(chan struct{}, 1)
	cli.ws.SetPongHandler(func(_ string) error {
		select {
		case pong <- struct{}{}:
		default:
		}
		return nil
	})

	pinger := channerics.NewTicker(ctx.Done(), pingResolution)
	lastPong := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pinger:
			if time.Since(lastPong) > pongWait {
				return ErrPongDeadlineExceeded
			}
			if err := cli.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return err
			}
		case <-pong:
			lastPong = time.Now()
		}
	}
}

// readMessages drains inbound frames so control handlers run. Read errors
// are permanent per gorilla's contract, so any error tears the client down.
func (cli *client) readMessages(ctx context.Context) error {
	for {
		if _, _, err := cli.ws.ReadMessage(); err != nil {
			if isClosure(err) {
				return nil
			}
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}

func (cli *client) publish(ctx context.Context) error {
	lastSync := time.Time{}
	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-cli.updates:
			if !ok {
				return nil
			}
			if time.Since(lastSync) < pubResolution {
				continue
			}

			lastSync = time.Now()
			if err := cli.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}
			if err := cli.ws.WriteJSON(snap); err != nil {
				return err
			}
		}
	}
}

func (cli *client) close() {
	_ = cli.ws.SetWriteDeadline(time.Now().Add(writeWait))
	_ = cli.ws.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	cli.ws.Close()
}

func isClosure(err error) bool {
	return websocket.IsCloseError(
		err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway)
}
