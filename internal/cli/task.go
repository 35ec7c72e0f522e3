package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nhle/timely/internal/model"
	"github.com/nhle/timely/internal/store"
)

func taskCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(taskListCmd(rt))
	cmd.AddCommand(taskAddCmd(rt))
	cmd.AddCommand(taskShowCmd(rt))
	cmd.AddCommand(taskDeleteCmd(rt))

	return cmd
}

func taskListCmd(rt *runtime) *cobra.Command {
	var status, tags, output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in board order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := newPrinter(cmd.OutOrStdout(), output)
			if err != nil {
				return err
			}

			filter := store.TaskFilter{Tags: store.ParseTagList(tags)}
			if status != "" {
				s, err := model.ParseStatus(status)
				if err != nil {
					return err
				}
				filter.Status = &s
			}

			return rt.withStore(func(st *store.SQLiteStore) error {
				tasks, err := st.ListTasks(cmd.Context(), filter)
				if err != nil {
					return err
				}
				return p.tasks(tasks)
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "only tasks with this status")
	cmd.Flags().StringVar(&tags, "tags", "", "comma-separated tags; matches tasks carrying any of them")
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "output format: table, json, yaml")

	return cmd
}

func taskAddCmd(rt *runtime) *cobra.Command {
	var (
		description, status, tags, output string
		order                             float64
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPrinter(cmd.OutOrStdout(), output)
			if err != nil {
				return err
			}

			in := model.TaskInput{
				Title:  args[0],
				Status: model.TaskStatus(status),
				Order:  order,
				Tags:   store.ParseTagList(tags),
			}
			if cmd.Flags().Changed("description") {
				in.Description = &description
			}

			return rt.withStore(func(st *store.SQLiteStore) error {
				task, err := st.CreateTask(cmd.Context(), in)
				if err != nil {
					return err
				}
				return p.task(task)
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "task description")
	cmd.Flags().StringVar(&status, "status", string(model.StatusBacklog), "backlog, todo, working or done")
	cmd.Flags().Float64Var(&order, "order", 0, "position within the status column")
	cmd.Flags().StringVar(&tags, "tags", "", "comma-separated tags")
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "output format: table, json, yaml")

	return cmd
}

func taskShowCmd(rt *runtime) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			p, err := newPrinter(cmd.OutOrStdout(), output)
			if err != nil {
				return err
			}

			return rt.withStore(func(st *store.SQLiteStore) error {
				task, err := st.GetTask(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("task %d: %w", id, err)
				}
				return p.task(task)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "output format: table, json, yaml")

	return cmd
}

func taskDeleteCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task and its linked events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			return rt.withStore(func(st *store.SQLiteStore) error {
				if err := st.DeleteTask(cmd.Context(), id); err != nil {
					return fmt.Errorf("task %d: %w", id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted task %d\n", id)
				return nil
			})
		},
	}
}

func parseIDArg(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
