package middleware

import (
	"testing"
	"time"
)

func TestRateLimiter_AllowWithinLimit(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Max: 3, Window: time.Minute})

	for i := 0; i < 3; i++ {
		if !rl.Allow("ip:1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("ip:1.2.3.4") {
		t.Error("request over the limit should be denied")
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Max: 1, Window: time.Minute})

	if !rl.Allow("ip:1.1.1.1") {
		t.Error("first key should be allowed")
	}
	if rl.Allow("ip:1.1.1.1") {
		t.Error("first key should now be limited")
	}
	if !rl.Allow("ip:2.2.2.2") {
		t.Error("second key should be unaffected")
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Max: 1, Window: 10 * time.Millisecond})

	if !rl.Allow("ip:1.2.3.4") {
		t.Error("first request should be allowed")
	}
	if rl.Allow("ip:1.2.3.4") {
		t.Error("second request should be denied")
	}

	time.Sleep(15 * time.Millisecond)

	if !rl.Allow("ip:1.2.3.4") {
		t.Error("request after window reset should be allowed")
	}
}
