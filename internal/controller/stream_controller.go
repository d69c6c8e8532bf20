package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rmorales-dev/tienda-sync/internal/middleware"
	"github.com/rmorales-dev/tienda-sync/internal/model"
	"github.com/rmorales-dev/tienda-sync/internal/projection"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamController pushes live projection snapshots to WebSocket
// observers. Closing the socket cancels the subscription.
type StreamController struct {
	projector *projection.Projector
}

func NewStreamController(projector *projection.Projector) *StreamController {
	return &StreamController{projector: projector}
}

type cartSnapshot struct {
	Lines []model.CartLine `json:"lines"`
	Count int              `json:"count"`
	Total float64          `json:"total"`
}

type catalogSnapshot struct {
	Products []model.Product `json:"products"`
	Count    int             `json:"count"`
}

// CartStream streams the cart line list and total on every cart change.
// GET /ws/cart
func (ctrl *StreamController) CartStream(c *gin.Context) {
	ctrl.stream(c, func(ctx context.Context) <-chan []byte {
		out := make(chan []byte, 1)
		updates := ctrl.projector.WatchCart(ctx)
		go func() {
			defer close(out)
			for lines := range updates {
				cart := model.Cart{Lines: lines}
				payload, err := json.Marshal(cartSnapshot{
					Lines: lines,
					Count: cart.TotalQuantity(),
					Total: cart.TotalPrice(),
				})
				if err != nil {
					continue
				}
				out <- payload
			}
		}()
		return out
	})
}

// CatalogStream streams the local product list on every catalog change.
// GET /ws/catalog
func (ctrl *StreamController) CatalogStream(c *gin.Context) {
	ctrl.stream(c, func(ctx context.Context) <-chan []byte {
		out := make(chan []byte, 1)
		updates := ctrl.projector.WatchCatalog(ctx)
		go func() {
			defer close(out)
			for products := range updates {
				payload, err := json.Marshal(catalogSnapshot{
					Products: products,
					Count:    len(products),
				})
				if err != nil {
					continue
				}
				out <- payload
			}
		}()
		return out
	})
}

func (ctrl *StreamController) stream(c *gin.Context, subscribe func(context.Context) <-chan []byte) {
	log := middleware.GetLoggerFromContext(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade WebSocket connection", err, nil)
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	defer conn.Close()

	// Reader: the observer never sends data, but reading is what detects
	// a closed peer and keeps pong handling alive.
	go func() {
		defer cancel()
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	updates := subscribe(ctx)
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case payload, ok := <-updates:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Debug("WebSocket write failed, closing stream", map[string]interface{}{
					"error": err.Error(),
				})
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
