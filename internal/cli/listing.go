package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
)

// ListParams contains shared parameters for the catalog listing commands
type ListParams struct {
	ConfigPath string
	CachePath  string
	Filter     string // fuzzy filter over names/subjects
	Format     string // "", "id", "name", "name-id"
	One        bool   // print only the best match
	Threshold  int    // minimum fuzzy match score, 0 keeps everything
	Project    string // issues/activities: scope to a project (ID or Name:ID)
	Out        io.Writer
}

type listItem struct {
	ID   int
	Name string
}

// Projects lists the Redmine projects visible to the configured account
func Projects(params ListParams) error {
	source, err := newCatalogSource(params.ConfigPath, params.CachePath)
	if err != nil {
		return err
	}
	defer func() { _ = source.Save() }()

	projects, err := source.Projects(context.Background())
	if err != nil {
		return err
	}

	items := make([]listItem, 0, len(projects))
	for _, p := range projects {
		items = append(items, listItem{ID: p.ID, Name: p.Name})
	}
	return renderList(params, items)
}

// Issues lists open issues, optionally scoped to a project
func Issues(params ListParams) error {
	source, err := newCatalogSource(params.ConfigPath, params.CachePath)
	if err != nil {
		return err
	}
	defer func() { _ = source.Save() }()

	issues, err := source.Issues(context.Background(), parseProjectRef(params.Project))
	if err != nil {
		return err
	}

	items := make([]listItem, 0, len(issues))
	for _, i := range issues {
		items = append(items, listItem{ID: i.ID, Name: i.Subject})
	}
	return renderList(params, items)
}

// Activities lists time entry activities, project-scoped when a project ref
// is given, otherwise the global enumeration
func Activities(params ListParams) error {
	source, err := newCatalogSource(params.ConfigPath, params.CachePath)
	if err != nil {
		return err
	}
	defer func() { _ = source.Save() }()

	activities, err := source.Activities(context.Background(), parseProjectRef(params.Project))
	if err != nil {
		return err
	}

	items := make([]listItem, 0, len(activities))
	for _, a := range activities {
		items = append(items, listItem{ID: a.ID, Name: a.Name})
	}
	return renderList(params, items)
}

// parseProjectRef accepts a plain numeric ID or the Name:ID form the
// completion candidates produce. Anything else means unscoped.
func parseProjectRef(ref string) int {
	if ref == "" {
		return 0
	}
	if id, err := strconv.Atoi(ref); err == nil {
		return id
	}
	if idx := strings.LastIndex(ref, ":"); idx >= 0 {
		if id, err := strconv.Atoi(ref[idx+1:]); err == nil {
			return id
		}
	}
	return 0
}

func renderList(params ListParams, items []listItem) error {
	out := params.Out
	if out == nil {
		out = os.Stdout
	}

	if params.Filter != "" {
		names := make([]string, len(items))
		for i, item := range items {
			names[i] = item.Name
		}
		matches := fuzzy.Find(params.Filter, names)
		filtered := make([]listItem, 0, len(matches))
		for _, m := range matches {
			if m.Score < params.Threshold {
				continue
			}
			filtered = append(filtered, items[m.Index])
		}
		items = filtered
	}

	if params.One && len(items) > 1 {
		items = items[:1]
	}

	for _, item := range items {
		var err error
		switch params.Format {
		case "id":
			_, err = fmt.Fprintf(out, "%d\n", item.ID)
		case "name":
			_, err = fmt.Fprintln(out, item.Name)
		case "name-id":
			_, err = fmt.Fprintf(out, "%s:%d\n", item.Name, item.ID)
		default:
			_, err = fmt.Fprintf(out, "%d\t%s\n", item.ID, item.Name)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
