package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/inkcalc/internal/board"
	"github.com/example/inkcalc/internal/export"
)

// noteFlags collects repeated -note values for the PDF annotation table.
type noteFlags []string

func (n *noteFlags) String() string { return strings.Join(*n, "; ") }

func (n *noteFlags) Set(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("note cannot be empty")
	}
	*n = append(*n, s)
	return nil
}

// exportCmd writes the drawing PNG into a PDF.
type exportCmd struct {
	file   string
	output string
	notes  noteFlags
	*root
	fs *flag.FlagSet
}

func (e *exportCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	cmd := &exportCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.file, "file", "", "PNG drawing to embed")
	fs.StringVar(&cmd.output, "output", "", "PDF file to write")
	fs.Var(&cmd.notes, "note", "note row for the annotation table (repeatable)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cmd.file == "" || cmd.output == "" || fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (e *exportCmd) Run() error {
	data, err := os.ReadFile(e.file)
	if err != nil {
		return err
	}
	annotations := make([]board.Annotation, 0, len(e.notes))
	for _, n := range e.notes {
		annotations = append(annotations, board.Annotation{Kind: board.TextAnnotation, Content: n})
	}
	if err := export.PDF(e.output, data, annotations); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", e.output)
	return nil
}
