package main

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

// newClient builds a resty client from the persistent flags.
func newClient(cmd *cobra.Command) (*resty.Client, error) {
	baseURL, err := cmd.Flags().GetString("url")
	if err != nil {
		return nil, err
	}
	authKey, err := cmd.Flags().GetString("auth-key")
	if err != nil {
		return nil, err
	}
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", "mockctl/"+version).
		SetHeader("Authorization", "DeepL-Auth-Key "+authKey)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return client, nil
}

// pollInterval bounds how often document status is requested.
func pollInterval(secondsRemaining *int) time.Duration {
	if secondsRemaining == nil || *secondsRemaining <= 0 {
		return 200 * time.Millisecond
	}
	if *secondsRemaining > 5 {
		return 5 * time.Second
	}
	return time.Duration(*secondsRemaining) * time.Second
}
