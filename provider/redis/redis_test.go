package redis

import (
	"context"
	"testing"

	goredis "github.com/redis/go-redis/v9"
)

func TestEscapeGlob(t *testing.T) {
	cases := map[string]string{
		"rec:ns:net:":  "rec:ns:net:",
		"rec:a*b:":     `rec:a\*b:`,
		"q?[x]":        `q\?\[x\]`,
		`back\slash`:   `back\\slash`,
		"unicodé:chan": "unicodé:chan",
	}
	for in, want := range cases {
		if got := escapeGlob(in); got != want {
			t.Fatalf("escapeGlob(%q)=%q want %q", in, got, want)
		}
	}
}

func TestNewAndClose(t *testing.T) {
	if _, err := New(Config{}); err != ErrNilClient {
		t.Fatalf("expected ErrNilClient, got %v", err)
	}

	rdb := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	p, err := New(Config{Client: rdb, CloseClient: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetMany(context.Background(), nil, 0); err != nil {
		t.Fatalf("empty SetMany must not touch redis: %v", err)
	}
	if err := p.Close(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(context.Background()); err != nil {
		t.Fatalf("second Close should be a no-op: %v", err)
	}
}
