package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerlens/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Inspect the local API request log",
}

// openLog opens only the local store; the request log needs no session.
func openLog(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return openStore(cfg)
}

var requestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent API requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		failed, _ := cmd.Flags().GetBool("failed")

		s, err := openLog(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.RequestRepo().QueryRequests(ctxOf(cmd), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query requests: %w", err)
		}
		if len(events) == 0 {
			fmt.Fprintln(cmdOut(cmd), "No requests recorded.")
			return nil
		}

		fmt.Fprintf(cmdOut(cmd), "%-5s  %-19s  %-6s  %-32s  %-6s  %-6s  %s\n",
			"ID", "Timestamp", "Method", "Path", "Status", "Ms", "OK")
		fmt.Fprintln(cmdOut(cmd), strings.Repeat("─", 90))

		for _, e := range events {
			if failed && e.Success {
				continue
			}
			ok := green("✓")
			if !e.Success {
				ok = red("✗")
			}
			fmt.Fprintf(cmdOut(cmd), "%-5d  %-19s  %-6s  %-32s  %-6s  %-6d  %s\n",
				e.ID,
				e.Timestamp.Local().Format(timeLayout),
				e.Method,
				truncate(e.Path, 32),
				statusText(e.Status),
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var requestsViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View one recorded request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openLog(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.RequestRepo().GetRequest(ctxOf(cmd), id)
		if err != nil {
			return fmt.Errorf("get request: %w", err)
		}
		if e == nil {
			return fmt.Errorf("request %d not found", id)
		}

		fmt.Fprintf(cmdOut(cmd), "ID:         %d\n", e.ID)
		fmt.Fprintf(cmdOut(cmd), "Time:       %s\n", e.Timestamp.Local().Format(timeLayout))
		fmt.Fprintf(cmdOut(cmd), "Request ID: %s\n", e.RequestID)
		fmt.Fprintf(cmdOut(cmd), "Call:       %s %s\n", e.Method, e.Path)
		fmt.Fprintf(cmdOut(cmd), "Status:     %s\n", statusText(e.Status))
		fmt.Fprintf(cmdOut(cmd), "Latency:    %dms\n", e.LatencyMs)
		fmt.Fprintf(cmdOut(cmd), "Success:    %v\n", e.Success)
		if e.ErrorMessage != "" {
			fmt.Fprintf(cmdOut(cmd), "Error:      %s\n", e.ErrorMessage)
		}
		return nil
	},
}

// statusText shows "-" for calls that never got a response.
func statusText(code int) string {
	if code == 0 {
		return "-"
	}
	return strconv.Itoa(code)
}

func init() {
	requestsListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	requestsListCmd.Flags().Bool("failed", false, "Only show failed requests")

	requestsCmd.AddCommand(requestsListCmd)
	requestsCmd.AddCommand(requestsViewCmd)
}
