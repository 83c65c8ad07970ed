package mocks

import (
	"context"
	"errors"
	"testing"
)

func TestFetcher_Get(t *testing.T) {
	f := NewFetcher()
	f.AddResponse("https://example.com/tool.rpm", 200, "rpm-bytes")

	resp, err := f.Get(context.Background(), "https://example.com/tool.rpm")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !resp.OK() || string(resp.Body) != "rpm-bytes" {
		t.Errorf("Get() = %d %q", resp.StatusCode, resp.Body)
	}
	if r := f.Requests(); len(r) != 1 {
		t.Errorf("Requests() = %v", r)
	}
}

func TestFetcher_Errors(t *testing.T) {
	f := NewFetcher()
	wantErr := errors.New("connection refused")
	f.AddError("https://down.example.com/x.rpm", wantErr)

	if _, err := f.Get(context.Background(), "https://down.example.com/x.rpm"); !errors.Is(err, wantErr) {
		t.Errorf("Get() error = %v, want %v", err, wantErr)
	}
	if _, err := f.Get(context.Background(), "https://unknown.example.com"); err == nil {
		t.Error("Get() should fail for unregistered url")
	}
}
