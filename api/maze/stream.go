package mazeapi

import (
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// stream upgrades to a websocket and pushes the current frame, then one
// message per change until the client goes away.
func (mc *MazeController) stream(ctx *gin.Context) {
	conn, err := mc.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		mc.logger.Warning(fmt.Sprintf("stream upgrade failed: %v", err))
		return
	}
	defer conn.Close()

	updates, cancel := mc.generator.Subscribe()
	defer cancel()

	// The client never sends anything; reading only detects that it left.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := send(conn, mc.generator.Snapshot()); err != nil {
		return
	}
	for {
		select {
		case <-gone:
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := send(conn, snap); err != nil {
				mc.logger.Info(fmt.Sprintf("stream closed: %v", err))
				return
			}
		}
	}
}

func send(conn *websocket.Conn, snap i.Snapshot) error {
	msg := StreamMessage{
		GenerationID: snap.GenerationID,
		State:        snap.State,
		RemovedWalls: snap.RemovedWalls,
		Frame:        snap.Frame,
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}
