package output

import (
	"github.com/samber/lo"

	"github.com/agentstation/docsync/internal/backend"
	"github.com/agentstation/docsync/pkg/repos"
)

// ViewsToTableData converts repository views to table data. Wide mode
// adds the task, working directory, and branch columns.
func ViewsToTableData(views []repos.View, wide bool) Data {
	headers := []string{"NAME", "URL", "STATUS", "DOCS", "ADDED"}
	if wide {
		headers = append(headers, "TASK", "DIR", "BRANCH")
	}

	rows := lo.Map(views, func(v repos.View, _ int) []string {
		row := []string{
			v.Name,
			v.URL,
			string(v.Status),
			string(v.DocStatus),
			v.AddedAt.Format("2006-01-02 15:04"),
		}
		if wide {
			row = append(row, v.TaskID, v.WorkingDir, v.Branch)
		}
		return row
	})

	return Data{Headers: headers, Rows: rows}
}

// PendingToTableData converts tracked pending clones to table data.
func PendingToTableData(pending []repos.PendingClone) Data {
	headers := []string{"URL", "TASK", "STATUS", "SUBMITTED"}

	rows := lo.Map(pending, func(p repos.PendingClone, _ int) []string {
		return []string{
			p.URL,
			p.TaskID,
			string(p.Status),
			p.CreatedAt.Format("2006-01-02 15:04"),
		}
	})

	return Data{Headers: headers, Rows: rows}
}

// DocsToTableData converts documentation listings to table data.
func DocsToTableData(docs []backend.DocumentListItem) Data {
	headers := []string{"REPO", "TITLE", "STATUS", "UPDATED"}

	rows := lo.Map(docs, func(d backend.DocumentListItem, _ int) []string {
		return []string{d.RepoName, d.Title, d.Status, d.UpdatedAt}
	})

	return Data{Headers: headers, Rows: rows}
}
