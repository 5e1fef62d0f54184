package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/comedor/lunch-orders-api/config"
	"github.com/comedor/lunch-orders-api/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dateSelection is the only message the client sends on the day board socket.
type dateSelection struct {
	Date string `json:"date"`
}

// DayBoardWS handles GET /api/v1/ws/day - a websocket that pushes a
// DaySnapshot (menu + the user's orders) every time the client selects a
// date. Fetches are keyed by selection generation, so a response for a date
// the user has already moved past is dropped instead of overwriting the
// current view.
func DayBoardWS(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	db := config.GetDB()
	fetch := services.DayFetch(services.NewMenuService(db), services.NewOrderService(db), user.ID)
	board := services.NewDayBoard(fetch, func(snapshot services.DaySnapshot) {
		// Called with the board mutex held: writes never interleave.
		_ = conn.WriteJSON(snapshot)
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var selection dateSelection
		if err := json.Unmarshal(message, &selection); err != nil {
			continue
		}
		board.Select(selection.Date)
	}
}
