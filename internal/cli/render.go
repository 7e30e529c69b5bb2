package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"tusk/internal/handlers"
	"tusk/internal/models"
)

// printer renders results. Styles degrade to plain text when w is not a
// terminal.
type printer struct {
	w      io.Writer
	header lipgloss.Style
	done   lipgloss.Style
	muted  lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:      w,
		header: r.NewStyle().Bold(true),
		done:   r.NewStyle().Foreground(lipgloss.Color("2")),
		muted:  r.NewStyle().Faint(true),
	}
}

func (p *printer) result(res *handlers.Result) {
	switch c := res.Command.(type) {
	case handlers.Add:
		fmt.Fprintf(p.w, "Task %d added to account '%s'.\n", res.Task.ID, c.Account)
	case handlers.Delete:
		fmt.Fprintf(p.w, "Task %d deleted from account '%s'.\n", c.ID, c.Account)
	case handlers.Clear:
		fmt.Fprintf(p.w, "Cleared the account '%s'.\n", c.Account)
	case handlers.Complete, handlers.Uncomplete, handlers.List:
		p.tasks(c.AccountName(), res.Tasks)
	}
}

func (p *printer) tasks(account string, tasks []models.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(p.w, p.muted.Render(fmt.Sprintf("No tasks available for account '%s'!", account)))
		return
	}

	fmt.Fprintln(p.w, p.header.Render(fmt.Sprintf("Tasks for account '%s':", account)))
	for _, task := range tasks {
		mark := task.Mark()
		if task.Completed {
			mark = p.done.Render(mark)
		}
		fmt.Fprintf(p.w, "%3d. %s %s\n", task.ID, mark, task.Description)
	}
}
