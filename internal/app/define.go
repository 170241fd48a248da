package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Adda-Baaj/shabd-relay/internal/domain"
	"github.com/Adda-Baaj/shabd-relay/pkg/urban"
)

// Definer is the lookup surface the define command needs.
type Definer interface {
	Lookup(ctx context.Context, term string, index int) (domain.DefinitionEntry, bool, error)
	Definitions(ctx context.Context, term string) ([]domain.DefinitionEntry, error)
}

var _ Definer = (*urban.Client)(nil)

// DefineOptions selects what the define command prints.
type DefineOptions struct {
	Term  string
	Index int
	All   bool
}

// Define looks up opts.Term and writes the result to out as indented JSON.
// Absence prints a message and is not an error.
func Define(ctx context.Context, d Definer, opts DefineOptions, out io.Writer) error {
	term := strings.TrimSpace(opts.Term)

	var result any
	if opts.All {
		list, err := d.Definitions(ctx, term)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			_, err := fmt.Fprintf(out, "no definition found for %q\n", term)
			return err
		}
		result = list
	} else {
		entry, found, err := d.Lookup(ctx, term, opts.Index)
		if err != nil {
			return err
		}
		if !found {
			_, err := fmt.Fprintf(out, "no definition found for %q at position %d\n", term, urban.Cursor{Term: term, Index: opts.Index}.Position())
			return err
		}
		result = entry
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode definition: %w", err)
	}
	return nil
}
