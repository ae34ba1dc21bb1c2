package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"shoplite/internal/logging"
	"shoplite/internal/models"
	"shoplite/internal/services"
)

// Status simulation delays: PENDING -> PROCESSING -> SHIPPED -> DELIVERED
const (
	delayToProcessing = 3 * time.Second
	delayToShipped    = 5 * time.Second
	delayToDelivered  = 5 * time.Second
)

type statusStep struct {
	from  string
	to    string
	delay time.Duration
}

var statusProgression = []statusStep{
	{models.OrderStatusPending, models.OrderStatusProcessing, delayToProcessing},
	{models.OrderStatusProcessing, models.OrderStatusShipped, delayToShipped},
	{models.OrderStatusShipped, models.OrderStatusDelivered, delayToDelivered},
}

// OrderStreamHandler streams simulated order status progression over SSE
type OrderStreamHandler struct {
	orders  *services.OrderService
	metrics *services.MetricsService
}

// NewOrderStreamHandler creates a new order stream handler
func NewOrderStreamHandler(orders *services.OrderService, metrics *services.MetricsService) *OrderStreamHandler {
	return &OrderStreamHandler{orders: orders, metrics: metrics}
}

type statusEvent struct {
	OrderID   string `json:"orderId"`
	Status    string `json:"status"`
	Final     bool   `json:"final"`
	Timestamp string `json:"timestamp"`
}

// Stream sends the order's current status immediately, then advances it
// through the progression with fixed delays, emitting an event per change.
// Status writes are conditional updates, so two concurrent streams for the
// same order never double-advance it.
// GET /api/orders/:ref/stream
func (h *OrderStreamHandler) Stream(c *fiber.Ctx) error {
	order, err := h.orders.FindByReference(c.Context(), c.Params("ref"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	orderID := order.OrderID
	status := order.Status
	done := c.Context().Done()
	orders := h.orders
	metrics := h.metrics

	metrics.StreamConnected()
	logging.WithStream(orderID).Debug("client connected", "status", status)
	log.Printf("📡 [STREAM] Client connected for %s (status %s)", orderID, status)

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		var cleanup sync.Once
		disconnect := func() {
			cleanup.Do(func() {
				metrics.StreamDisconnected()
				log.Printf("📡 [STREAM] Client disconnected from %s", orderID)
			})
		}
		defer disconnect()

		if err := writeStatusEvent(w, orderID, status, status == models.OrderStatusDelivered); err != nil {
			return
		}

		for _, step := range statusProgression {
			if status != step.from {
				continue
			}

			select {
			case <-done:
				return
			case <-time.After(step.delay):
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			advanced, err := orders.AdvanceStatus(ctx, orderID, step.from, step.to)
			cancel()
			if err != nil {
				log.Printf("❌ [STREAM] Failed to advance %s: %v", orderID, err)
				return
			}

			if advanced {
				status = step.to
			} else {
				// Another writer moved the order; emit its actual status.
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				current, err := orders.GetByOrderID(ctx, orderID)
				cancel()
				if err != nil {
					return
				}
				status = current.Status
			}

			final := status == models.OrderStatusDelivered
			if err := writeStatusEvent(w, orderID, status, final); err != nil {
				return
			}
			if final {
				return
			}
		}
	}))

	return nil
}

func writeStatusEvent(w *bufio.Writer, orderID, status string, final bool) error {
	payload, err := json.Marshal(statusEvent{
		OrderID:   orderID,
		Status:    status,
		Final:     final,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "event: status\ndata: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}
