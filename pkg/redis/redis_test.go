package redis

import (
	"context"
	"errors"
	"testing"
	"time"
)

// A nil client is what the server runs with when Redis is unreachable.

func TestNilClient_Degrades(t *testing.T) {
	var c *Client
	ctx := context.Background()

	if err := c.BlacklistToken(ctx, "jti", time.Minute); err != nil {
		t.Errorf("BlacklistToken on nil client: %v", err)
	}

	revoked, err := c.IsBlacklisted(ctx, "jti")
	if err != nil || revoked {
		t.Errorf("expected not blacklisted, got %v, %v", revoked, err)
	}

	allowed, err := c.CheckRateLimit(ctx, "k", 1, time.Second)
	if err != nil || !allowed {
		t.Errorf("expected allowed, got %v, %v", allowed, err)
	}

	var out []string
	if err := c.GetJSON(ctx, "k", &out); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
	if err := c.SetJSON(ctx, "k", []string{"a"}, time.Minute); err != nil {
		t.Errorf("SetJSON on nil client: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close on nil client: %v", err)
	}
}
