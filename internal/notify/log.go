package notify

import (
	"github.com/rs/zerolog/log"
)

// LogSender writes fired alerts to the application log. It stands in
// when no MQTT broker is configured.
type LogSender struct{}

func (LogSender) Send(userID int, e Entry) error {
	log.Info().
		Int("user", userID).
		Str("prayer", string(e.Prayer)).
		Str("title", e.Title).
		Str("body", e.Body).
		Msg("prayer alert")
	return nil
}
