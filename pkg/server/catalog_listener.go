package server

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/matst80/slask-discovery/pkg/common/jsoncompat"
	"github.com/matst80/slask-discovery/pkg/messaging"
	"github.com/matst80/slask-discovery/pkg/types"
)

// ListenForCatalogChanges refreshes every live session when products change
// on the <country>_catalog_changed topic. Messages carry the changed
// products, upsert receives them when the service owns its catalog.
func (r *Registry) ListenForCatalogChanges(conn *amqp.Connection, country string, logger zerolog.Logger, upsert func(...types.Product)) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	return messaging.ListenToTopic(ch, country, messaging.CatalogChanged, logger, func(d amqp.Delivery) error {
		if upsert != nil {
			var products []types.Product
			if err := jsoncompat.Unmarshal(d.Body, &products); err != nil {
				logger.Warn().Err(err).Msg("failed to unmarshal catalog change")
				return nil
			}
			upsert(products...)
			logger.Info().Int("products", len(products)).Msg("got catalog upserts")
		}
		n := r.RefreshAll()
		logger.Debug().Int("sessions", n).Msg("sessions refreshed")
		return nil
	})
}
