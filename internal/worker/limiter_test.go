package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	l := NewLimiter(2, 0)
	if l.burst != 4 {
		t.Errorf("burst = %d, want default of 4", l.burst)
	}

	l = NewLimiter(2, 10)
	if l.burst != 10 {
		t.Errorf("burst = %d, want 10", l.burst)
	}
}

func TestLimiter_Allow(t *testing.T) {
	l := NewLimiter(1, 2)
	url := "https://api.libreborme.net/api/v1/borme"

	if !l.Allow(url) {
		t.Error("first request should be allowed")
	}
	if !l.Allow(url) {
		t.Error("second request should fit the burst")
	}
	if l.Allow(url) {
		t.Error("third request should exceed the burst")
	}
}

func TestLimiter_PerHost(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("https://host-a.example/x") {
		t.Error("host A should be allowed")
	}
	if !l.Allow("https://host-b.example/x") {
		t.Error("host B has its own budget")
	}
	if l.Allow("https://host-a.example/y") {
		t.Error("host A budget should be exhausted")
	}
}

func TestLimiter_WaitCanceled(t *testing.T) {
	l := NewLimiter(0.1, 1)
	url := "https://api.libreborme.net/api/v1/borme"

	if err := l.Wait(context.Background(), url); err != nil {
		t.Fatalf("first Wait: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, url); err == nil {
		t.Error("expected Wait to fail on canceled context")
	}
}

func TestLimiter_BadURL(t *testing.T) {
	l := NewLimiter(1, 1)
	if l.Allow("://not a url") {
		t.Error("unparseable URL should not be allowed")
	}
}
