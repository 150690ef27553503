package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/FamilyQT/services"
)

const realtimePingInterval = 25 * time.Second

var realtimeTables = map[string]bool{
	services.TableQtRecords:    true,
	services.TablePrayers:      true,
	services.TableAttendance:   true,
	services.TableMembers:      true,
	services.TableSystemStatus: true,
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RealtimeWS streams change notifications for one table (or all tables when
// table is empty). Messages only name the table; clients re-fetch.
func RealtimeWS(c *gin.Context) {
	table := c.Query("table")
	if table != "" && !realtimeTables[table] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown table"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	rt := services.GetRealtimeHub()
	cl := services.NewWSClient(table, conn)
	rt.Register(cl)

	done := make(chan struct{})
	defer close(done)

	go func() {
		t := time.NewTicker(realtimePingInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second)); err != nil {
					rt.Unregister(cl)
					return
				}
			}
		}
	}()

	// read loop ends on client close/error
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			rt.Unregister(cl)
			return
		}
	}
}
