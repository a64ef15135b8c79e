package queue

import (
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/carlosargenal/enlaceibabackend/internal/config"
)

// StartResetMailConsumer consumes the reset-mail queue and appends every
// message to <MailLogDir>/mail.log, which serves as the development outbox
// until a real mailer is attached.  It reconnects with exponential backoff
// and never returns while the process is alive.
func StartResetMailConsumer(cfg config.AMQPConfig) {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(cfg.URL)
        if err != nil {
            log.Printf("mail-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            time.Sleep(backoff)
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        if err := consumeLoop(conn, cfg); err != nil {
            log.Printf("mail-consumer: consume loop ended: %v; reconnecting", err)
            time.Sleep(2 * time.Second)
        }
        _ = conn.Close()
    }
}

func consumeLoop(conn *amqp.Connection, cfg config.AMQPConfig) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(20, 0, false); err != nil {
        log.Printf("mail-consumer: set QoS failed: %v", err)
    }
    if _, err := ch.QueueDeclare(cfg.ResetQueue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(cfg.ResetQueue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := writeResetMail(cfg.MailLogDir, d.Body); err != nil {
            log.Printf("mail-consumer: handle message failed: %v", err)
            _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

func writeResetMail(dir string, body []byte) error {
    var ev PasswordResetRequested
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if ev.Email == "" || ev.Token == "" {
        return errors.New("message without recipient or token")
    }
    if err := os.MkdirAll(dir, 0o755); err != nil {
        return fmt.Errorf("mkdir %s: %w", dir, err)
    }
    f, err := os.OpenFile(filepath.Join(dir, "mail.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
    if err != nil {
        return fmt.Errorf("open mail log: %w", err)
    }
    defer f.Close()

    line := fmt.Sprintf("[%s] Password reset | user_id=%d | to=%q | name=%q | token=%s | expires=%s\n",
        ev.RequestedAt.Format(time.RFC3339), ev.UserID, ev.Email, ev.FirstName, ev.Token,
        ev.ExpiresAt.Format(time.RFC3339))
    if _, err := f.WriteString(line); err != nil {
        return fmt.Errorf("write mail log: %w", err)
    }
    return nil
}
