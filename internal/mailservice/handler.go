package mailservice

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/sushihentaime/bloglist/internal/common"
)

const (
	defaultMaxRetries = 5
	defaultBaseDelay  = 500 * time.Millisecond
)

func NewMailService(mb common.MessageConsumer, cfg SMTPConfig, logger zerolog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:         mb,
		m:          NewMailer(cfg, NewTemplate()),
		logger:     logger.With().Str("component", "mailservice").Logger(),
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// SendWelcomeEmails consumes user.created events in the background until Close is called.
func (s *MailService) SendWelcomeEmails() error {
	msgs, err := s.mb.Consume(common.UserCreatedKey, common.UserExchange, common.UserCreatedQueue)
	if err != nil {
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.consume(msgs)
	}()

	return nil
}

func (s *MailService) consume(msgs <-chan amqp.Delivery) {
	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			s.handle(msg)

		case <-s.ctx.Done():
			s.logger.Info().Msg("stopping welcome email consumer")
			return
		}
	}
}

func (s *MailService) handle(msg amqp.Delivery) {
	var event common.UserCreatedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		s.logger.Error().Err(err).Msg("could not unmarshal user.created event")
		msg.Reject(false)
		return
	}

	logger := s.logger.With().Int("user_id", event.UserID).Str("email", event.Email).Logger()

	if event.Email == "" {
		logger.Warn().Msg("user.created event without email address")
		msg.Ack(false)
		return
	}

	data := welcomeData{Username: event.Username, Name: event.Name}

	// exponential backoff with jitter
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err := s.m.send(event.Email, data, welcomeTemplate)
		if err == nil {
			logger.Info().Msg("welcome email sent")
			msg.Ack(false)
			return
		}

		delay := time.Duration(rand.Int63n(int64(s.baseDelay) << uint(attempt)))
		logger.Info().Err(err).Int("attempt", attempt).Dur("delay", delay).Msg("delaying welcome email")

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			msg.Nack(false, true)
			return
		}
	}

	logger.Error().Int("attempts", s.maxRetries).Msg("could not send welcome email")
	msg.Ack(false)
}

// Close stops the consumer and waits for the message in flight.
func (s *MailService) Close() {
	s.cancel()
	s.wg.Wait()
}
