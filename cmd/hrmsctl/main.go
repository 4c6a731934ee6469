package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/locvowork/hrms_gateway/internal/bootstrap"
	"github.com/locvowork/hrms_gateway/internal/client"
	"github.com/locvowork/hrms_gateway/internal/config"
	"github.com/locvowork/hrms_gateway/internal/credential"
	"github.com/locvowork/hrms_gateway/internal/logger"
	"github.com/locvowork/hrms_gateway/internal/service"
	"github.com/locvowork/hrms_gateway/internal/transport"
)

// args carries the parsed flags to every action.
type args struct {
	id       int
	offset   int
	limit    int
	month    string
	status   string
	role     string
	action   string
	resource string
	reason   string
	token    string
	data     string
	format   string
	out      string
}

// env is what an action runs against.
type env struct {
	args  args
	store credential.Store
	svc   *service.Services
}

type actionFunc func(ctx context.Context, e *env) (interface{}, error)

func main() {
	os.Exit(run())
}

// run returns the exit code so deferred cleanup happens before exiting.
func run() int {
	var a args
	action := flag.String("action", "", "Action to perform (see -help for the list)")
	flag.IntVar(&a.id, "id", 0, "Entity id (employee, leave, user, audit log or notification)")
	flag.IntVar(&a.offset, "offset", 0, "Page offset")
	flag.IntVar(&a.limit, "limit", 0, "Page size (0 = backend default)")
	flag.StringVar(&a.month, "month", "", "Month as YYYY-MM")
	flag.StringVar(&a.status, "status", "", "Status filter")
	flag.StringVar(&a.role, "role", "", "Role filter or new role")
	flag.StringVar(&a.action, "audit-action", "", "Audit action filter (CREATE, UPDATE, DELETE, LOGIN, LOGOUT)")
	flag.StringVar(&a.resource, "resource-type", "", "Audit resource type filter")
	flag.StringVar(&a.reason, "reason", "", "Reason for suspend or delete")
	flag.StringVar(&a.token, "token", "", "Bearer token for login")
	flag.StringVar(&a.data, "data", "", "JSON payload, or @file to read it from a file")
	flag.StringVar(&a.format, "format", "xlsx", "Export format: xlsx or csv")
	flag.StringVar(&a.out, "out", "", "Export output file (default stdout)")
	flag.Usage = usage
	flag.Parse()

	ctx := context.Background()

	if err := config.LoadEnvConfig(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := config.DefaultEnvConfig
	initLogging(cfg)

	act, ok := actions[*action]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown action %q\n\n", *action)
		usage()
		return 2
	}

	store, closeStore, err := bootstrap.OpenCredentialStore(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.ErrorLog(ctx, "close credential store: %v", err)
		}
	}()

	clients, err := client.New(cfg.Endpoints, credential.StoreProvider(store),
		transport.WithTimeout(cfg.HTTP_TIMEOUT),
		transport.WithObserver(transport.LogObserver()),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	e := &env{
		args:  a,
		store: store,
		svc:   service.NewServices(clients, cfg.EXPORT_PAGE_SIZE, cfg.EXPORT_WORKERS),
	}
	result, err := act(ctx, e)
	if err != nil {
		logger.ErrorLog(ctx, "%s failed: %v", *action, err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", *action, err)
		return 1
	}
	if result != nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	return 0
}

// initLogging keeps stdout for results and export bytes; logs go to stderr.
func initLogging(cfg *config.EnvConfig) {
	logger.InitLoggingTo(os.Stderr, cfg.LOG_FILE_PATH, cfg.LOG_LEVEL)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: hrmsctl -action <action> [flags]\n\nActions:\n")
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(os.Stderr, "  %s\n\nFlags:\n", strings.Join(names, "\n  "))
	flag.PrintDefaults()
}

// payload decodes -data into v. "@path" reads the JSON from a file.
func (e *env) payload(v interface{}) error {
	raw := e.args.data
	if raw == "" {
		return fmt.Errorf("-data is required")
	}
	if strings.HasPrefix(raw, "@") {
		b, err := os.ReadFile(strings.TrimPrefix(raw, "@"))
		if err != nil {
			return err
		}
		raw = string(b)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode -data: %w", err)
	}
	return nil
}

// output opens -out, or stdout when unset.
func (e *env) output() (io.WriteCloser, error) {
	if e.args.out == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(e.args.out)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// pageLimit falls back to the given default for calls that require a limit.
func (e *env) pageLimit(def int) int {
	if e.args.limit > 0 {
		return e.args.limit
	}
	return def
}
