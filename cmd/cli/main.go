package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/config"
	"github.com/iho/corebank/internal/infrastructure/logger"
	"github.com/iho/corebank/internal/infrastructure/postgres"
)

type options struct {
	baseURL string
	timeout time.Duration
	user    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "corebank-cli",
		Short:         "Core banking operations CLI",
		Long:          `A command line interface for running batches and maintaining the business date of the core banking API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the core banking API")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&opts.user, "user", "", "Operator sent as X-User-ID")

	rootCmd.AddCommand(
		migrateCmd(),
		eodCmd(opts),
		bodCmd(opts),
		batchCmd(opts),
		systemDateCmd(opts),
	)

	return rootCmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	newMigrator := func() (*postgres.Migrator, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		log := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console"})
		return postgres.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath, log), nil
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMigrator()
			if err != nil {
				return err
			}
			return m.Up()
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMigrator()
			if err != nil {
				return err
			}
			return m.Down(steps)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMigrator()
			if err != nil {
				return err
			}
			v, dirty, err := m.Version()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version: %d dirty: %t\n", v, dirty)
			return nil
		},
	}

	cmd.AddCommand(up, down, version)
	return cmd
}

func eodCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eod",
		Short: "End-of-day batch",
	}

	run := &cobra.Command{
		Use:   "run",
		Short: "Run end of day for the current business date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.user == "" {
				return fmt.Errorf("--user is required to run EOD")
			}
			return newClient(opts).do(cmd, http.MethodPost, "/api/v1/eod/run", nil)
		},
	}

	summary := &cobra.Command{
		Use:   "summary DATE",
		Short: "Show the EOD summary for a business date (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := domain.ParseDate(args[0]); err != nil {
				return err
			}
			return newClient(opts).do(cmd, http.MethodGet, "/api/v1/eod/"+args[0], nil)
		},
	}

	cmd.AddCommand(run, summary)
	return cmd
}

func bodCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bod",
		Short: "Beginning-of-day batch",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Promote future-dated transactions due today",
		RunE: func(cmd *cobra.Command, args []string) error {
			return newClient(opts).do(cmd, http.MethodPost, "/api/v1/bod/run", nil)
		},
	})
	return cmd
}

func batchCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run a single posting batch outside EOD",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "movements",
			Short: "Post verified transactions to GL movements",
			RunE: func(cmd *cobra.Command, args []string) error {
				return newClient(opts).do(cmd, http.MethodPost, "/api/v1/batches/movements", nil)
			},
		},
		&cobra.Command{
			Use:   "accruals",
			Short: "Post pending interest accruals",
			RunE: func(cmd *cobra.Command, args []string) error {
				return newClient(opts).do(cmd, http.MethodPost, "/api/v1/batches/accruals", nil)
			},
		},
	)
	return cmd
}

func systemDateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "system-date",
		Short: "Read or set the business date",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Print the current business date",
		RunE: func(cmd *cobra.Command, args []string) error {
			return newClient(opts).do(cmd, http.MethodGet, "/api/v1/system-date", nil)
		},
	}

	set := &cobra.Command{
		Use:   "set DATE",
		Short: "Set the business date (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.user == "" {
				return fmt.Errorf("--user is required to set the system date")
			}
			if _, err := domain.ParseDate(args[0]); err != nil {
				return err
			}
			return newClient(opts).do(cmd, http.MethodPut, "/api/v1/system-date", map[string]string{"system_date": args[0]})
		},
	}

	cmd.AddCommand(get, set)
	return cmd
}

type apiClient struct {
	baseURL string
	user    string
	http    *http.Client
}

func newClient(opts *options) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(opts.baseURL, "/"),
		user:    opts.user,
		http:    &http.Client{Timeout: opts.timeout},
	}
}

// do sends the request and pretty-prints the JSON response. Mutating
// requests carry a fresh idempotency key.
func (c *apiClient) do(cmd *cobra.Command, method, path string, body any) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.user != "" {
		req.Header.Set("X-User-ID", c.user)
	}
	if method != http.MethodGet {
		req.Header.Set("Idempotency-Key", ulid.Make().String())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if err := printJSON(cmd.OutOrStdout(), raw); err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s %s failed with status %d", method, path, resp.StatusCode)
	}
	return nil
}

func printJSON(w io.Writer, raw []byte) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		_, werr := fmt.Fprintln(w, strings.TrimSpace(string(raw)))
		return werr
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}
