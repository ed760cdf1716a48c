package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/text/language"

	"compass.qibla.app/internal/bearing"
	"compass.qibla.app/internal/heading"
	"compass.qibla.app/internal/logging"
	"compass.qibla.app/internal/tracker"
	"compass.qibla.app/internal/utils"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = (streamPongWait * 9) / 10
	streamReadLimit  = 4096
	streamBuffer     = 16
)

// Message types exchanged on the stream
const (
	MessageLocation     = "location"
	MessageHeading      = "heading"
	MessageMagnetometer = "magnetometer"
	MessageReading      = "reading"
	MessageError        = "error"
)

var errIncompleteMessage = errors.New("incomplete message")

// streamRequest is a client sensor update
type streamRequest struct {
	Type    string   `json:"type"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
	// Heading is relative to magnetic north.
	Heading *float64 `json:"heading,omitempty"`
	X       float64  `json:"x,omitempty"`
	Y       float64  `json:"y,omitempty"`
	Z       float64  `json:"z,omitempty"`
}

type streamReading struct {
	Type string `json:"type"`
	tracker.Reading
	LocalizedDirection string `json:"localizedDirection"`
	Language           string `json:"language"`
}

type streamError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// streamHandler upgrades to a WebSocket and runs one compass session per connection
func (api *RestAPI) streamHandler(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context()).With(slog.String("component", "stream"))
	tag := utils.NegotiateLanguage(r)

	session, err := api.NewTracker()
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	conn, err := api.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error
		logging.LogError(logger, "websocket upgrade failed", err)
		return
	}

	api.Metrics.StreamOpened()
	defer api.Metrics.StreamClosed()

	api.serveStream(r.Context(), conn, session, tag, logger)
}

// serveStream runs the reader on the calling goroutine and the writer on its own.
// It returns once both are done and conn is closed.
func (api *RestAPI) serveStream(ctx context.Context, conn *websocket.Conn, session *tracker.Tracker, tag language.Tag, logger *slog.Logger) {
	readings, unsubscribe := session.Subscribe(streamBuffer)
	defer unsubscribe()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rejections := make(chan streamError)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		defer cancel()
		api.writeStream(ctx, conn, readings, rejections, tag, logger)
		// Closing here unblocks a reader still waiting in ReadMessage.
		logging.SafeCloseWithLogging(conn, logger, "stream_connection")
	}()

	readStream(ctx, conn, session, rejections, logger)
	cancel()
	<-writerDone
}

// readStream applies client updates to the session until the connection fails or closes
func readStream(ctx context.Context, conn *websocket.Conn, session *tracker.Tracker, rejections chan<- streamError, logger *slog.Logger) {
	conn.SetReadLimit(streamReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.LogError(logger, "stream read failed", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))

		if err := applyStreamMessage(session, data); err != nil {
			logger.Debug("rejected stream message", slog.String("error", err.Error()))
			select {
			case rejections <- streamError{Type: MessageError, Message: err.Error()}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func applyStreamMessage(session *tracker.Tracker, data []byte) error {
	var msg streamRequest
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("malformed message: %w", err)
	}

	switch msg.Type {
	case MessageLocation:
		if msg.Lat == nil || msg.Lon == nil {
			return fmt.Errorf("%w: location requires lat and lon", errIncompleteMessage)
		}
		return session.UpdateLocation(bearing.GeoCoordinate{Lat: *msg.Lat, Lon: *msg.Lon})
	case MessageHeading:
		if msg.Heading == nil {
			return fmt.Errorf("%w: heading requires heading", errIncompleteMessage)
		}
		return session.UpdateMagneticHeading(*msg.Heading)
	case MessageMagnetometer:
		return session.UpdateMagnetometer(heading.MagnetometerSample{X: msg.X, Y: msg.Y, Z: msg.Z})
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
}

// writeStream is the only goroutine writing data frames to conn
func (api *RestAPI) writeStream(ctx context.Context, conn *websocket.Conn, readings <-chan tracker.Reading, rejections <-chan streamError, tag language.Tag, logger *slog.Logger) {
	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()

	write := func(v interface{}) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		if err := conn.WriteJSON(v); err != nil {
			logging.LogError(logger, "stream write failed", err)
			return false
		}
		return true
	}

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(streamWriteWait))
			return
		case reading, ok := <-readings:
			if !ok {
				return
			}
			if !write(streamReading{
				Type:               MessageReading,
				Reading:            reading,
				LocalizedDirection: bearing.LocalizedCompassLabel(reading.Bearing, tag),
				Language:           tag.String(),
			}) {
				return
			}
			api.Metrics.ReadingSent()
		case rejection := <-rejections:
			if !write(rejection) {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
				return
			}
		}
	}
}
