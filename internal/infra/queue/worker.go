package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadNotifier es quien avisa a ventas que entró un lead nuevo.
type LeadNotifier interface {
	SendLeadNotification(payload LeadCapturedPayload) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier LeadNotifier
}

func NewWorker(ch *amqp.Channel, notifier LeadNotifier) *Worker {
	return &Worker{Channel: ch, Notifier: notifier}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack manual: sólo se confirma tras enviar el aviso
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Fatalf("[worker] no se pudo registrar el consumidor: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadCapturedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("[worker] mensaje malformado, va a la DLQ: %s", err)
				d.Nack(false, false)
				continue
			}

			if err := w.Notifier.SendLeadNotification(payload); err != nil {
				log.Printf("[worker] fallo el aviso del lead %s: %s", payload.ContactID, err)
				d.Nack(false, false)
				continue
			}

			log.Printf("[worker] aviso enviado para el lead %s (%s)", payload.FullName, payload.Source)
			d.Ack(false)
		}
	}()

	log.Printf("[worker] esperando mensajes en la cola %q", queueName)
	<-forever
}
