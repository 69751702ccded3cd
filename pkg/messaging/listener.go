package messaging

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

func DeclareBindAndConsume(ch *amqp.Channel, prefix string, topic ChangeTopic) (<-chan amqp.Delivery, error) {
	name := getName(prefix, topic)
	if err := ch.ExchangeDeclare(name, "topic", true, false, false, false, nil); err != nil {
		return nil, err
	}
	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}
	err = ch.QueueBind(q.Name, name, name, false, nil)
	if err != nil {
		return nil, err
	}
	return ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
}

// ListenToTopic consumes topic until the channel closes. A handler error
// stops the consumer, the delivery is left unacknowledged.
func ListenToTopic(ch *amqp.Channel, prefix string, topic ChangeTopic, logger zerolog.Logger, handler func(amqp.Delivery) error) error {
	deliveries, err := DeclareBindAndConsume(ch, prefix, topic)
	if err != nil {
		return err
	}

	go func(msgs <-chan amqp.Delivery) {
		defer ch.Close()
		for d := range msgs {
			if err := handler(d); err != nil {
				logger.Error().Err(err).Str("topic", string(topic)).Msg("error processing message")
				return
			}
			d.Ack(false)
		}
	}(deliveries)
	return nil
}
