package feed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"
	mqtt "github.com/soypat/natiu-mqtt"
)

// Subscriber maintains an MQTT connection to the command feed and
// delivers incoming payloads to a Mailbox. It reconnects with backoff
// until its context is cancelled.
type Subscriber struct {
	BrokerAddr string // host:port
	Username   string
	Password   string
	ClientID   string
	Topic      string
	Timeout    time.Duration
	Logger     *slog.Logger

	mailbox *Mailbox
}

func NewSubscriber(mailbox *Mailbox, logger *slog.Logger) *Subscriber {
	return &Subscriber{
		Timeout: 10 * time.Second,
		Logger:  logger,
		mailbox: mailbox,
	}
}

// Run drives the connect/subscribe/read loop until ctx is cancelled.
// Each broken session is torn down and redialed after a short pause.
func (s *Subscriber) Run(ctx context.Context) {
	const reconnectDelay = 5 * time.Second

	for ctx.Err() == nil {
		err := s.session(ctx)
		if err != nil && ctx.Err() == nil {
			s.Logger.Error("mqtt:session-ended", slog.String("err", err.Error()))
		}
		select {
		case <-ctx.Done():
		case <-time.After(reconnectDelay):
		}
	}
}

// session dials the broker, performs the MQTT connect and subscribe
// handshakes, then reads publishes until the connection drops.
func (s *Subscriber) session(ctx context.Context) error {
	dialer := net.Dialer{Timeout: s.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", s.BrokerAddr)
	if err != nil {
		return errors.New("dial " + s.BrokerAddr + ": " + err.Error())
	}
	defer conn.Close()

	// Close the socket when ctx ends so blocked reads unwind.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	cfg := mqtt.ClientConfig{
		Decoder: mqtt.DecoderNoAlloc{UserBuffer: make([]byte, 4096)},
		OnPub: func(pubHead mqtt.Header, varPub mqtt.VariablesPublish, r io.Reader) error {
			payload, err := io.ReadAll(r)
			if err != nil {
				return err
			}
			s.Logger.Info("received command",
				slog.String("topic", string(varPub.TopicName)),
				slog.Int("bytes", len(payload)),
			)
			s.mailbox.Put(string(payload))
			return nil
		},
	}
	client := mqtt.NewClient(cfg)

	// Brokers drop duplicate client IDs, so each session gets a fresh
	// suffix and reconnects never race a half-dead predecessor.
	id := s.ClientID + "-" + uuid.NewString()[:8]
	var varconn mqtt.VariablesConnect
	varconn.SetDefaultMQTT([]byte(id))
	if s.Username != "" {
		varconn.Username = []byte(s.Username)
		if s.Password != "" {
			varconn.Password = []byte(s.Password)
		}
	}

	s.Logger.Info("mqtt:start-connecting", slog.String("broker", s.BrokerAddr))
	conn.SetDeadline(time.Now().Add(s.Timeout))
	if err := client.StartConnect(conn, &varconn); err != nil {
		return errors.New("mqtt connect: " + err.Error())
	}
	if err := s.await(conn, client.IsConnected, func() error { return client.HandleNext() }); err != nil {
		return errors.New("mqtt connack: " + errString(err, client.Err()))
	}

	vsub := mqtt.VariablesSubscribe{
		PacketIdentifier: 23,
		TopicFilters: []mqtt.SubscribeRequest{
			{TopicFilter: []byte(s.Topic), QoS: mqtt.QoS0},
		},
	}
	conn.SetDeadline(time.Now().Add(s.Timeout))
	if err := client.StartSubscribe(vsub); err != nil {
		return errors.New("mqtt subscribe: " + err.Error())
	}
	if err := s.await(conn, func() bool { return !client.AwaitingSuback() }, func() error { return client.HandleNext() }); err != nil {
		return errors.New("mqtt suback: " + errString(err, client.Err()))
	}

	s.Logger.Info("mqtt:subscribed", slog.String("topic", s.Topic))

	// Read loop. Short deadlines keep HandleNext from blocking forever
	// so broker pings and ctx cancellation are noticed promptly.
	for client.IsConnected() {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		err := client.HandleNext()
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			return errors.New("mqtt read: " + err.Error())
		}
	}
	return errors.New("mqtt disconnected: " + errString(nil, client.Err()))
}

// await pumps HandleNext until ready() or the deadline budget runs out.
func (s *Subscriber) await(conn net.Conn, ready func() bool, handle func() error) error {
	for retries := 50; retries > 0 && !ready(); retries-- {
		conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
		if err := handle(); err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			s.Logger.Error("mqtt:handle-next-failed", slog.String("err", err.Error()))
		}
	}
	if !ready() {
		return errors.New("timed out")
	}
	return nil
}

func errString(errs ...error) string {
	for _, err := range errs {
		if err != nil {
			return err.Error()
		}
	}
	return "unknown"
}
