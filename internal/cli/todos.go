package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Makepad-fr/tada-remote/internal/api"
	"github.com/Makepad-fr/tada-remote/internal/model"
	"github.com/Makepad-fr/tada-remote/internal/ui"

	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireSession(); err != nil {
				return err
			}
			todos, err := app.client.ListTodos(cmd.Context())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("group") {
				group = app.cfg.UI.Group
			}
			renderList(cmd.OutOrStdout(), todos, group)
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "Group output by pending/done")
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a todo (title can be multiple words)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return usagef("add: empty title")
			}
			if err := app.requireSession(); err != nil {
				return err
			}
			t, err := app.client.CreateTodo(cmd.Context(), model.CreateTodo{Todo: title})
			if err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added #%d", t.ID))
			return nil
		},
	}
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle done for the todo with this id",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("done", args[0])
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}
			t, err := findTodo(cmd, app, id)
			if err != nil {
				return err
			}
			body := model.UpdateTodo{Todo: t.Todo, IsCompleted: !t.IsCompleted}
			if _, err := app.client.UpdateTodo(cmd.Context(), id, body); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "toggled")
			return nil
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <title...>",
		Short: "Replace the text of a todo",
		Args:  usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("edit", args[0])
			if err != nil {
				return err
			}
			title := strings.TrimSpace(strings.Join(args[1:], " "))
			if title == "" {
				return usagef("edit: empty title")
			}
			if err := app.requireSession(); err != nil {
				return err
			}
			t, err := findTodo(cmd, app, id)
			if err != nil {
				return err
			}
			body := model.UpdateTodo{Todo: title, IsCompleted: t.IsCompleted}
			if _, err := app.client.UpdateTodo(cmd.Context(), id, body); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "updated")
			return nil
		},
	}
}

func newRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove the todo with this id",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("rm", args[0])
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}
			if err := app.client.DeleteTodo(cmd.Context(), id); err != nil {
				if errors.Is(err, api.ErrNotFound) {
					return errNoSuchTodo(id)
				}
				return err
			}
			ui.OK(cmd.OutOrStdout(), "removed")
			return nil
		},
	}
}

func parseID(verb, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, usagef("%s: not a todo id: %s", verb, s)
	}
	return n, nil
}

func errNoSuchTodo(id int) error {
	return usagef("no todo with id %d (run `tada ls` to see ids)", id)
}

// findTodo reads the current record so partial updates can carry the other field.
func findTodo(cmd *cobra.Command, app *App, id int) (model.Todo, error) {
	todos, err := app.client.ListTodos(cmd.Context())
	if err != nil {
		return model.Todo{}, err
	}
	for _, t := range todos {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Todo{}, errNoSuchTodo(id)
}

// -------------- rendering helpers --------------

func renderList(w io.Writer, todos []model.Todo, group bool) {
	d, p := stats(todos)
	th := ui.Current()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(th.Title, "Todos"),
		ui.C(th.Success, th.SymDone), d,
		ui.C(th.Pending, th.SymUnchecked), p,
		ui.C(th.Accent, "Total"), len(todos),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(th.Muted, ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	if group {
		lines = append(lines, groupLines(todos)...)
	} else {
		lines = append(lines, flatLines(todos)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(th.Muted, "Tip: add with `tada add \"Buy milk\"`"))
	ui.Panel(w, lines)
}

func stats(todos []model.Todo) (done, pending int) {
	for _, t := range todos {
		if t.IsCompleted {
			done++
		} else {
			pending++
		}
	}
	return
}

func flatLines(todos []model.Todo) []string {
	th := ui.Current()
	if len(todos) == 0 {
		return []string{ui.C(th.Muted, "no todos")}
	}
	out := make([]string, 0, len(todos))
	for _, t := range todos {
		idx := fmt.Sprintf("%3d.", t.ID)
		box, color := th.BoxUnchecked, th.Muted
		if t.IsCompleted {
			box, color = th.BoxChecked, th.Success
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			ui.C(ui.Dim, idx), ui.C(color, box), ui.Truncate(t.Todo, 80)))
	}
	return out
}

func groupLines(todos []model.Todo) []string {
	th := ui.Current()
	var pend, done []model.Todo
	for _, t := range todos {
		if t.IsCompleted {
			done = append(done, t)
		} else {
			pend = append(pend, t)
		}
	}
	var lines []string
	lines = append(lines, ui.C(th.Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(th.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(th.Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(th.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
