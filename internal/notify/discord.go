package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Discord delivers notifications to a single Discord channel over the
// REST API. No gateway connection is held: delivery is one-way push.
//
// The REST send endpoint has no dedup token, so idempotency is
// enforced here: a delivered key is remembered and any repeat of it is
// dropped before the API call. Keys are (date, job id) pairs, a
// handful per day, so the set stays small for the life of the process.
type Discord struct {
	session   *discordgo.Session
	channelID string

	mu        sync.Mutex
	delivered map[string]bool

	post func(channelID string, data *discordgo.MessageSend, opts ...discordgo.RequestOption) (*discordgo.Message, error)
}

// NewDiscord creates a Discord notifier.
func NewDiscord(token, channelID string) (*Discord, error) {
	if token == "" {
		return nil, fmt.Errorf("discord bot token not configured")
	}
	if channelID == "" {
		return nil, fmt.Errorf("discord channel id not configured")
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	session.Client.Timeout = 30 * time.Second
	return &Discord{
		session:   session,
		channelID: channelID,
		delivered: make(map[string]bool),
		post:      session.ChannelMessageSendComplex,
	}, nil
}

func (d *Discord) Name() string { return "discord" }

// Send posts the message unless its idempotency key has already been
// delivered, in which case it reports success without a second post.
func (d *Discord) Send(ctx context.Context, msg *Message) error {
	d.mu.Lock()
	if d.delivered[msg.IdempotencyKey] {
		d.mu.Unlock()
		slog.Debug("Discord: duplicate send dropped", "key", msg.IdempotencyKey)
		return nil
	}
	d.mu.Unlock()

	_, err := d.post(d.channelID, &discordgo.MessageSend{
		Content: msg.Body,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("discord send: %w", err)
	}

	d.mu.Lock()
	d.delivered[msg.IdempotencyKey] = true
	d.mu.Unlock()

	slog.Debug("Discord: message delivered", "category", msg.Category, "key", msg.IdempotencyKey)
	return nil
}
