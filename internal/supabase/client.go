package supabase

import (
	"fmt"
	"strings"

	"github.com/supabase-community/supabase-go"
)

type Client struct {
	Supabase *supabase.Client
	BaseURL  string
}

func NewClient(supabaseURL, serviceKey string) (*Client, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client, err := supabase.NewClient(baseURL, serviceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &Client{
		Supabase: client,
		BaseURL:  baseURL,
	}, nil
}
