package tracking

import (
	"net/http"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/matst80/slask-discovery/pkg/messaging"
	"github.com/matst80/slask-discovery/pkg/types"
)

const (
	sessionEvent uint16 = 0
	searchEvent  uint16 = 1
)

type RabbitTracking struct {
	country    string
	connection *amqp.Connection
	logger     zerolog.Logger
}

func NewRabbitTracking(conn *amqp.Connection, country string, logger zerolog.Logger) (*RabbitTracking, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	defer ch.Close()
	if err := messaging.DefineTopic(ch, country, messaging.Tracking); err != nil {
		return nil, err
	}
	return &RabbitTracking{
		connection: conn,
		country:    country,
		logger:     logger.With().Str("component", "tracking").Logger(),
	}, nil
}

// Close is a no-op, the connection is owned by the caller.
func (t *RabbitTracking) Close() error {
	return nil
}

func (t *RabbitTracking) send(data any) error {
	return messaging.SendChange(t.connection, t.country, messaging.Tracking, data)
}

type BaseEvent struct {
	SessionId string `json:"session_id"`
	Country   string `json:"country,omitempty"`
	Context   string `json:"context,omitempty"`
	Event     uint16 `json:"event"`
}

type Session struct {
	*BaseEvent
	UserAgent    string `json:"user_agent,omitempty"`
	Ip           string `json:"ip,omitempty"`
	Language     string `json:"language,omitempty"`
	PragmaHeader string `json:"pragma,omitempty"`
}

type SearchEventData struct {
	*BaseEvent
	*types.FilterRequest
	NumberOfResults int `json:"noi"`
}

func clientIp(r *http.Request) string {
	ip := r.Header.Get("X-Real-Ip")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	return ip
}

func (t *RabbitTracking) TrackSession(sessionId string, r *http.Request) {
	err := t.send(Session{
		BaseEvent:    &BaseEvent{Event: sessionEvent, SessionId: sessionId, Country: t.country, Context: "b2c"},
		Language:     r.Header.Get("Accept-Language"),
		UserAgent:    r.UserAgent(),
		Ip:           clientIp(r),
		PragmaHeader: r.Header.Get("Pragma"),
	})
	if err != nil {
		t.logger.Warn().Err(err).Msg("error sending session event")
	}
}

func (t *RabbitTracking) TrackSearch(sessionId string, req types.FilterRequest, totalCount int) {
	err := t.send(&SearchEventData{
		BaseEvent:       &BaseEvent{Event: searchEvent, SessionId: sessionId, Country: t.country, Context: "b2c"},
		FilterRequest:   &req,
		NumberOfResults: totalCount,
	})
	if err != nil {
		t.logger.Warn().Err(err).Msg("error sending search event")
	}
}
