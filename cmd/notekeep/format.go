package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/notekeep"
	"github.com/aretw0/notekeep/pkg/core"
)

func printNotes(w io.Writer, notes []core.Note) {
	for _, n := range notes {
		printNote(w, n)
	}
}

func printNote(w io.Writer, n core.Note) {
	line := fmt.Sprintf("%s - %s", n.Key(), n.Title)
	if len(n.Tags) > 0 {
		line += " [" + strings.Join(n.Tags, ", ") + "]"
	}
	if n.IsArchived {
		line += " (archived)"
	}
	fmt.Fprintln(w, line)
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// failure prefixes err with the message the App recorded for it, if any.
func failure(a *notekeep.App, err error) error {
	if msg := a.Error(); msg != "" {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return err
}
