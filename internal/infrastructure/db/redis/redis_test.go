package redis

import (
	"testing"
	"time"
)

func TestConfigOptions(t *testing.T) {
	opts := Config{Addr: "cache:6379", Password: "pw", DB: 2}.options()
	if opts.Addr != "cache:6379" || opts.Password != "pw" || opts.DB != 2 {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.DialTimeout != dialTimeout || opts.ReadTimeout != dialTimeout || opts.WriteTimeout != dialTimeout {
		t.Fatalf("expected default timeouts, got %s/%s/%s", opts.DialTimeout, opts.ReadTimeout, opts.WriteTimeout)
	}

	opts = Config{Addr: "cache:6379", Timeout: time.Second}.options()
	if opts.ReadTimeout != time.Second {
		t.Fatalf("expected custom timeout, got %s", opts.ReadTimeout)
	}
}

func TestTokenBlocklistKey(t *testing.T) {
	b := NewTokenBlocklist(nil)
	if got := b.key("abc"); got != "revoked:abc" {
		t.Fatalf("unexpected key %q", got)
	}
}
