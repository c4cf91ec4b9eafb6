package browser

import (
	"context"
	"errors"
	"testing"

	"github.com/a11yscan/a11yscan/internal/config"
)

func TestNewDriverRejectsEmptyScript(t *testing.T) {
	t.Parallel()

	_, err := NewDriver(context.Background(), "   ", config.Device{Name: "chromium"})
	if !errors.Is(err, ErrEmptyScript) {
		t.Errorf("NewDriver() error = %v, want ErrEmptyScript", err)
	}
}

func TestCookieParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cookie  string
		url     string
		want    map[string]string
		wantErr bool
	}{
		{
			name:   "single pair",
			cookie: "session=abc123",
			url:    "https://www.example.com/about/",
			want:   map[string]string{"session": "abc123"},
		},
		{
			name:   "multiple pairs with spacing",
			cookie: "session=abc123; theme=dark",
			url:    "https://www.example.com/",
			want:   map[string]string{"session": "abc123", "theme": "dark"},
		},
		{
			name:   "value containing equals sign",
			cookie: "token=a=b=c",
			url:    "https://www.example.com/",
			want:   map[string]string{"token": "a=b=c"},
		},
		{
			name:   "trailing semicolon",
			cookie: "session=abc123;",
			url:    "https://www.example.com/",
			want:   map[string]string{"session": "abc123"},
		},
		{
			name:    "pair without equals",
			cookie:  "garbage",
			url:     "https://www.example.com/",
			wantErr: true,
		},
		{
			name:    "empty name",
			cookie:  "=value",
			url:     "https://www.example.com/",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			params, err := cookieParams(tt.cookie, tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("cookieParams failed: %v", err)
			}

			got := make(map[string]string, len(params))
			for _, p := range params {
				got[p.Name] = p.Value
				if p.Domain != "www.example.com" {
					t.Errorf("cookie %s domain = %q, want page host", p.Name, p.Domain)
				}
				if p.Path != "/" {
					t.Errorf("cookie %s path = %q, want /", p.Name, p.Path)
				}
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parsed %v, want %v", got, tt.want)
			}
			for name, value := range tt.want {
				if got[name] != value {
					t.Errorf("cookie %s = %q, want %q", name, got[name], value)
				}
			}
		})
	}
}
