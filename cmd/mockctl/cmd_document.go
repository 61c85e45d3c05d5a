package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"

	"github.com/janhq/translate-mock/internal/domain/session"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/responses"
)

var documentCmd = &cobra.Command{
	Use:   "document [file]",
	Short: "Upload, await and download a document translation",
	Long: `Upload a file to /v2/document, poll its status until it is done or has
failed, then download the result next to the input.

Session flags are sent as mock-server-session headers so a run can exercise
simulated timing and forced failures.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocument,
}

func init() {
	documentCmd.Flags().String("target-lang", "DE", "Target language")
	documentCmd.Flags().String("source-lang", "", "Source language")
	documentCmd.Flags().String("output", "", "Output path (defaults to <file>.<target-lang>)")
	documentCmd.Flags().String("session", "", "Session token")
	documentCmd.Flags().Int("doc-failure", 0, "Number of documents the session fails")
	documentCmd.Flags().Int("queue-time", 0, "Simulated queue time in milliseconds")
	documentCmd.Flags().Int("translate-time", 0, "Simulated translation time in milliseconds")
	documentCmd.Flags().Duration("wait", 2*time.Minute, "Maximum time to wait for the translation")
}

func runDocument(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	targetLang, _ := flags.GetString("target-lang")
	sourceLang, _ := flags.GetString("source-lang")
	output, _ := flags.GetString("output")
	wait, _ := flags.GetDuration("wait")

	headers, err := sessionHeaders(cmd)
	if err != nil {
		return err
	}
	client.SetHeaders(headers)

	path := args[0]
	if output == "" {
		output = path + "." + targetLang
	}

	form := map[string]string{"target_lang": targetLang}
	if sourceLang != "" {
		form["source_lang"] = sourceLang
	}

	var handle responses.DocumentHandleResponse
	resp, err := client.R().
		SetContext(cmd.Context()).
		SetFile("file", path).
		SetFormData(form).
		SetResult(&handle).
		Post("/v2/document")
	if err != nil {
		return fmt.Errorf("upload %s: %w", filepath.Base(path), err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("upload failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	fmt.Printf("uploaded %s as %s\n", filepath.Base(path), handle.DocumentID)

	if err := awaitDocument(cmd, client, handle, wait); err != nil {
		return err
	}

	resp, err = client.R().
		SetContext(cmd.Context()).
		SetFormData(map[string]string{"document_key": handle.DocumentKey}).
		SetDoNotParseResponse(true).
		Post("/v2/document/" + handle.DocumentID + "/result")
	if err != nil {
		return fmt.Errorf("download result: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("download failed with status %d", resp.StatusCode())
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.ReadFrom(body); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	fmt.Printf("wrote %s\n", output)
	return nil
}

func awaitDocument(cmd *cobra.Command, client *resty.Client, handle responses.DocumentHandleResponse, wait time.Duration) error {
	deadline := time.Now().Add(wait)
	for {
		var status responses.DocumentStatusResponse
		resp, err := client.R().
			SetContext(cmd.Context()).
			SetFormData(map[string]string{"document_key": handle.DocumentKey}).
			SetResult(&status).
			Post("/v2/document/" + handle.DocumentID)
		if err != nil {
			return fmt.Errorf("request status: %w", err)
		}
		if resp.StatusCode() != http.StatusOK {
			return fmt.Errorf("status failed with status %d: %s", resp.StatusCode(), resp.String())
		}

		fmt.Printf("%s: %s\n", handle.DocumentID, status.Status)
		switch status.Status {
		case "done":
			return nil
		case "error":
			return fmt.Errorf("translation failed: %s", status.ErrorMessage)
		}

		if time.Now().After(deadline) {
			return errors.New("timed out waiting for translation")
		}
		select {
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		case <-time.After(pollInterval(status.SecondsRemaining)):
		}
	}
}

func sessionHeaders(cmd *cobra.Command) (map[string]string, error) {
	flags := cmd.Flags()
	token, _ := flags.GetString("session")
	if token == "" {
		return nil, nil
	}

	headers := map[string]string{session.TokenHeader: token}
	ints := map[string]string{
		"doc-failure":    session.HeaderDocFailure,
		"queue-time":     session.HeaderDocQueueTime,
		"translate-time": session.HeaderDocTranslateTime,
	}
	for flag, header := range ints {
		v, err := flags.GetInt(flag)
		if err != nil {
			return nil, err
		}
		if v > 0 {
			headers[header] = strconv.Itoa(v)
		}
	}
	return headers, nil
}
