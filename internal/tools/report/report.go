// Package report generates markdown inventory reports for tracked
// repositories.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	md "github.com/nao1215/markdown"
	"github.com/samber/lo"

	"github.com/agentstation/docsync/pkg/constants"
	"github.com/agentstation/docsync/pkg/repos"
)

// Generator writes repository inventory reports.
type Generator struct {
	now func() time.Time
}

// New creates a report generator.
func New() *Generator {
	return &Generator{now: time.Now}
}

// WriteFile generates a report and writes it to path, creating parent
// directories as needed.
func (g *Generator) WriteFile(path string, views []repos.View) error {
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()
	return g.Write(f, views)
}

// Write generates the inventory report to w.
func (g *Generator) Write(w io.Writer, views []repos.View) error {
	sorted := make([]repos.View, len(views))
	copy(sorted, views)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	documented := 0
	generating := 0
	pending := 0
	for _, v := range sorted {
		switch v.DocStatus {
		case repos.Documented:
			documented++
		case repos.Generating:
			generating++
		}
		if v.Pending() {
			pending++
		}
	}

	doc := md.NewMarkdown(w)
	doc.H1("Repository Inventory").LF()
	doc.PlainTextf("_Generated: %s_", g.now().UTC().Format("January 2, 2006 15:04 UTC")).LF()

	doc.H2("Summary").LF()
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Repositories", fmt.Sprintf("%d", len(sorted))},
			{"Documented", fmt.Sprintf("%d", documented)},
			{"Generating", fmt.Sprintf("%d", generating)},
			{"Pending clones", fmt.Sprintf("%d", pending)},
		},
	}).LF()

	doc.H2("Repositories").LF()
	rows := make([][]string, 0, len(sorted))
	for _, v := range sorted {
		added := ""
		if !v.AddedAt.IsZero() {
			added = v.AddedAt.Format("2006-01-02")
		}
		rows = append(rows, []string{
			v.Name,
			v.URL,
			string(v.Status),
			string(v.DocStatus),
			added,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Name", "URL", "Status", "Docs", "Added"},
		Rows:   rows,
	}).LF()

	if pending > 0 {
		doc.H2("In-Flight Clones").LF()
		pendingRows := lo.FilterMap(sorted, func(v repos.View, _ int) ([]string, bool) {
			return []string{v.Name, v.URL, v.TaskID, string(v.Status)}, v.Pending()
		})
		doc.Table(md.TableSet{
			Header: []string{"Name", "URL", "Task", "Status"},
			Rows:   pendingRows,
		}).LF()
	}

	return doc.Build()
}
