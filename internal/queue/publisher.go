package queue

import (
    "context"
    "encoding/json"
    "errors"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/carlosargenal/enlaceibabackend/internal/config"
)

// ErrPublisherBusy is returned when the outgoing buffer is full.
var ErrPublisherBusy = errors.New("rabbitmq: publish buffer full")

// Publisher sends PasswordResetRequested messages to the reset-mail queue.
// PublishPasswordReset only enqueues; Run drains the buffer and dials the
// broker per message, so a slow or absent broker never delays the request
// that asked for the mail.
type Publisher struct {
    URL         string
    Queue       string
    DialTimeout time.Duration

    pending chan PasswordResetRequested
}

func NewPublisher(cfg config.AMQPConfig) *Publisher {
    size := cfg.PublishBuffer
    if size <= 0 {
        size = 64
    }
    timeout := cfg.DialTimeout
    if timeout <= 0 {
        timeout = 3 * time.Second
    }
    return &Publisher{
        URL:         cfg.URL,
        Queue:       cfg.ResetQueue,
        DialTimeout: timeout,
        pending:     make(chan PasswordResetRequested, size),
    }
}

// PublishPasswordReset queues ev for delivery and returns at once.  It never
// touches the network.
func (p *Publisher) PublishPasswordReset(ctx context.Context, ev PasswordResetRequested) error {
    select {
    case p.pending <- ev:
        return nil
    case <-ctx.Done():
        return ctx.Err()
    default:
        return ErrPublisherBusy
    }
}

// Run publishes queued events until ctx is cancelled.  Failed deliveries are
// logged and dropped; the user can ask for another reset mail.
func (p *Publisher) Run(ctx context.Context) {
    for {
        select {
        case <-ctx.Done():
            return
        case ev := <-p.pending:
            sendCtx, cancel := context.WithTimeout(ctx, 2*p.DialTimeout)
            if err := p.publish(sendCtx, ev); err != nil {
                log.Printf("rabbitmq: reset mail for user %d dropped: %v", ev.UserID, err)
            }
            cancel()
        }
    }
}

// publish sends ev as a persistent JSON message over a fresh connection.
func (p *Publisher) publish(ctx context.Context, ev PasswordResetRequested) error {
    pub, err := newPublishing(ev)
    if err != nil {
        return err
    }

    conn, err := amqp.DialConfig(p.URL, amqp.Config{Dial: amqp.DefaultDial(p.DialTimeout)})
    if err != nil {
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        return err
    }
    defer func() { _ = ch.Close() }()

    // durable so messages survive broker restarts
    if _, err := ch.QueueDeclare(p.Queue, true, false, false, false, nil); err != nil {
        return err
    }

    return ch.PublishWithContext(ctx,
        "",      // default exchange
        p.Queue, // routing key = queue name
        false,   // mandatory
        false,   // immediate
        pub,
    )
}

func newPublishing(ev PasswordResetRequested) (amqp.Publishing, error) {
    body, err := json.Marshal(ev)
    if err != nil {
        return amqp.Publishing{}, err
    }
    return amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Type:         "password.reset.requested",
        Body:         body,
    }, nil
}
