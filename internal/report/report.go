// Package report builds and prints selector snapshots of whole documents.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"selector-inspector/internal/dom"
	"selector-inspector/internal/entity"
	"selector-inspector/internal/inference"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Filter decides which elements are part of a snapshot.
type Filter func(el *dom.Element) bool

var skipped = map[string]bool{
	"html": true, "head": true, "meta": true, "link": true, "script": true,
	"style": true, "title": true, "noscript": true, "template": true,
}

// Visible keeps every element that can be rendered in the body.
func Visible(el *dom.Element) bool {
	return !skipped[el.TagName()]
}

var interactive = map[string]bool{
	"a": true, "button": true, "input": true, "select": true, "textarea": true,
	"details": true, "summary": true, "dialog": true, "label": true, "option": true,
}

// Interactive keeps form controls, links and anything carrying a role or a
// test id.
func Interactive(el *dom.Element) bool {
	if interactive[el.TagName()] {
		return true
	}
	if _, ok := el.Attribute("role"); ok {
		return true
	}
	_, ok := el.Attribute("data-testid")

	return ok
}

// Tags keeps elements whose tag is in the list.
func Tags(tags ...string) Filter {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[strings.ToLower(strings.TrimSpace(t))] = true
	}

	return func(el *dom.Element) bool {
		return set[el.TagName()]
	}
}

// Build computes a selector for every element of doc accepted by filter.
func Build(engine *inference.Engine, doc *dom.Document, source string, filter Filter) *entity.Snapshot {
	if filter == nil {
		filter = Visible
	}

	snap := &entity.Snapshot{
		Source:    source,
		Title:     doc.Title(),
		Timestamp: time.Now().UTC(),
	}

	doc.Walk(func(el *dom.Element) bool {
		if !filter(el) {
			return true
		}

		entry := entity.SnapshotEntry{
			Tag:      el.TagName(),
			Path:     engine.Path(el),
			Selector: engine.Compute(el),
		}
		if role, ok := engine.Role(el); ok {
			entry.Role = role
			entry.Name = inference.AccessibleName(el)
		}

		snap.Entries = append(snap.Entries, entry)

		return true
	})

	return snap
}

func Write(w io.Writer, snap *entity.Snapshot, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		return writeText(w, snap)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeText(w io.Writer, snap *entity.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "# %s", snap.Source)
	if snap.Title != "" {
		fmt.Fprintf(tw, " (%s)", snap.Title)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "TAG\tKIND\tSELECTOR")

	for _, e := range snap.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Tag, e.Selector.Kind, e.Selector.Text)
	}

	return tw.Flush()
}
