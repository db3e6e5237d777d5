package server

import (
	"net/http"

	. "DeepInvaders/internal/game"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the HTTP surface: a health probe, the lobby listing,
// and the websocket endpoint everything else runs over.
func NewRouter(hub *Hub, sockets *SocketServer) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/api/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": hub.RoomList()})
	})

	router.GET("/ws", func(c *gin.Context) {
		sockets.ServeWS(c.Writer, c.Request)
	})

	return router
}
