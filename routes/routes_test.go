package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"edrina-resto/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter mirrors main.go's registration order: public routes
// first, then the authentication middleware, then everything else.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	AuthRoutes(router)
	router.Use(middleware.Authentication())
	UserRoutes(router)
	MenuRoutes(router)
	OrderRoutes(router)
	StatsRoutes(router)
	return router
}

// A browser WebSocket handshake cannot carry an Authorization header, so
// the dashboards can only receive order events if the endpoint sits ahead
// of the token check.
func TestWebSocketConnectsWithoutToken(t *testing.T) {
	srv := httptest.NewServer(newTestRouter())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
}

func TestOrdersRequireToken(t *testing.T) {
	srv := httptest.NewServer(newTestRouter())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/orders")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
