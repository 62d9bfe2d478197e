package scores

import (
	"net/http"

	"judgeapi/middleware"
	"judgeapi/realtime"
	"judgeapi/utils/permissions"
	"judgeapi/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GroupScoreWebSocket streams live score activity of a group
// @Summary Watch scores over WebSocket
// @Description Upgrade the connection and push score and status events for the group, admin only
// @Tags Scores
// @Param group_id path string true "Group ID"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} response.ErrorResponse
// @Router /scores/group/{group_id}/ws [get]
// @Security Bearer
func GroupScoreWebSocket(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !permissions.IsAdmin(user) {
		response.Error(c, http.StatusUnauthorized, ErrNoPermissionView)
		return
	}

	groupID := c.Param("group_id")
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	realtime.RegisterClient(groupID, conn)
	defer realtime.UnregisterClient(groupID, conn)

	// Keep reading until the client goes away, messages are ignored
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
