package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// -----------------------------------------------------------------------------

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the backpressure counters of a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			return getAndPrint(cmd.OutOrStdout(), addr, "/backpressure/stats")
		},
	}
	cmd.Flags().String("addr", "http://127.0.0.1:8080", "server base URL")
	return cmd
}

// -----------------------------------------------------------------------------

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the backpressure counters of a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			return getAndPrint(cmd.OutOrStdout(), addr, "/backpressure/reset")
		},
	}
	cmd.Flags().String("addr", "http://127.0.0.1:8080", "server base URL")
	return cmd
}

// -----------------------------------------------------------------------------

func getAndPrint(out io.Writer, addr, path string) error {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(strings.TrimRight(addr, "/") + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	text := string(body)
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err = io.WriteString(out, text)
	return err
}
