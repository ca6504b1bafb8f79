package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/example/inkcalc/internal/recognize"
)

// varFlags collects repeated -var name=value assignments.
type varFlags map[string]string

func (v varFlags) String() string {
	parts := make([]string, 0, len(v))
	for k, val := range v {
		parts = append(parts, k+"="+val)
	}
	return strings.Join(parts, ",")
}

func (v varFlags) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	v[strings.TrimSpace(name)] = strings.TrimSpace(value)
	return nil
}

// solveCmd submits a PNG drawing to the recognition service.
type solveCmd struct {
	file    string
	vars    varFlags
	timeout time.Duration
	retries int
	*root
	fs *flag.FlagSet
}

func (s *solveCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseSolveCmd(args []string, r *root) (*solveCmd, error) {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	cmd := &solveCmd{root: r, fs: fs, vars: varFlags{}}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.file, "file", "", "PNG drawing to submit")
	fs.Var(cmd.vars, "var", "variable binding as name=value (repeatable)")
	fs.DurationVar(&cmd.timeout, "timeout", recognize.DefaultTimeout, "overall request timeout")
	fs.IntVar(&cmd.retries, "retries", 3, "how many attempts before giving up")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cmd.file == "" || fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	if cmd.retries < 1 {
		cmd.retries = 1
	}
	return cmd, nil
}

func (s *solveCmd) Run() error {
	if s.serviceURL == "" {
		return fmt.Errorf("no recognition service configured: set -service, INKCALC_SERVICE_URL or service_url")
	}
	data, err := os.ReadFile(s.file)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	client := recognize.NewClient(s.serviceURL)
	results, err := client.SolveWithRetry(ctx, data, s.vars, s.retries)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("no expressions recognized")
		return nil
	}
	for _, r := range results {
		marker := ""
		if r.Assign {
			marker = "  (assigned)"
		}
		fmt.Printf("%s = %s%s\n", r.Expr, r.Result, marker)
	}
	return nil
}
