package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var smokeCmd = &cobra.Command{
	Use:   "smoke",
	Short: "Check that the server answers",
	Long:  `Request /v2/usage with a fixed key and fail unless the server returns 200.`,
	RunE:  runSmoke,
}

func runSmoke(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	resp, err := client.R().
		SetContext(cmd.Context()).
		SetQueryParam("auth_key", "smoke_test").
		Get("/v2/usage")
	if err != nil {
		return fmt.Errorf("request usage: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode(), resp.String())
	}

	fmt.Println("OK")
	return nil
}
