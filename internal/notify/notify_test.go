package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestConsoleSend(t *testing.T) {
	var sb strings.Builder
	c := NewConsole(&sb)

	err := c.Send(context.Background(), &Message{
		Body:           "Your morning brief is ready.",
		Category:       "brief",
		IdempotencyKey: "20260826:morning-brief",
	})
	if err != nil {
		t.Fatal(err)
	}

	out := sb.String()
	if !strings.Contains(out, "Your morning brief is ready.") {
		t.Fatalf("body missing from output: %q", out)
	}
	if !strings.Contains(out, "20260826:morning-brief") {
		t.Fatalf("idempotency key missing from output: %q", out)
	}
}

func TestConsoleName(t *testing.T) {
	if got := NewConsole(nil).Name(); got != "console" {
		t.Fatalf("name: got %q", got)
	}
}

func testDiscord(post func(string, *discordgo.MessageSend, ...discordgo.RequestOption) (*discordgo.Message, error)) *Discord {
	return &Discord{
		channelID: "chan-1",
		delivered: make(map[string]bool),
		post:      post,
	}
}

func TestDiscordSendDropsDuplicateKey(t *testing.T) {
	var posts []string
	d := testDiscord(func(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
		posts = append(posts, data.Content)
		return &discordgo.Message{}, nil
	})

	msg := &Message{Body: "brief", Category: "brief", IdempotencyKey: "20260826:morning-brief"}
	if err := d.Send(context.Background(), msg); err != nil {
		t.Fatal(err)
	}
	if err := d.Send(context.Background(), msg); err != nil {
		t.Fatal(err)
	}

	if len(posts) != 1 {
		t.Fatalf("duplicate key posted %d times", len(posts))
	}

	other := &Message{Body: "market", Category: "market", IdempotencyKey: "20260826:market-open"}
	if err := d.Send(context.Background(), other); err != nil {
		t.Fatal(err)
	}
	if len(posts) != 2 {
		t.Fatalf("distinct key not posted, got %d posts", len(posts))
	}
}

func TestDiscordSendFailureAllowsRetry(t *testing.T) {
	fail := true
	var posts int
	d := testDiscord(func(string, *discordgo.MessageSend, ...discordgo.RequestOption) (*discordgo.Message, error) {
		posts++
		if fail {
			return nil, errors.New("api down")
		}
		return &discordgo.Message{}, nil
	})

	msg := &Message{Body: "brief", IdempotencyKey: "20260826:morning-brief"}
	if err := d.Send(context.Background(), msg); err == nil {
		t.Fatal("want error from failed post")
	}

	// A failed post must not claim the key.
	fail = false
	if err := d.Send(context.Background(), msg); err != nil {
		t.Fatal(err)
	}
	if posts != 2 {
		t.Fatalf("posts: got %d", posts)
	}
}
