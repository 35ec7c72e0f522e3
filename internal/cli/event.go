package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/timely/internal/model"
	"github.com/nhle/timely/internal/store"
)

func eventCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage calendar events",
	}

	cmd.AddCommand(eventListCmd(rt))
	cmd.AddCommand(eventAddCmd(rt))
	cmd.AddCommand(eventDeleteCmd(rt))

	return cmd
}

// parseTimeFlag parses an optional timestamp flag value.
func parseTimeFlag(name, raw string) (*model.Timestamp, error) {
	if raw == "" {
		return nil, nil
	}
	ts, err := model.ParseTimestamp(raw)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &ts, nil
}

func eventListCmd(rt *runtime) *cobra.Command {
	var start, end, output string
	var taskID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events, optionally within a time window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := newPrinter(cmd.OutOrStdout(), output)
			if err != nil {
				return err
			}

			var filter store.EventFilter
			if filter.Start, err = parseTimeFlag("start", start); err != nil {
				return err
			}
			if filter.End, err = parseTimeFlag("end", end); err != nil {
				return err
			}
			if cmd.Flags().Changed("task") {
				filter.TaskID = &taskID
			}

			return rt.withStore(func(st *store.SQLiteStore) error {
				events, err := st.ListEvents(cmd.Context(), filter)
				if err != nil {
					return err
				}
				return p.events(events)
			})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "only events ending at or after this time")
	cmd.Flags().StringVar(&end, "end", "", "only events starting at or before this time")
	cmd.Flags().Int64Var(&taskID, "task", 0, "only events linked to this task id")
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "output format: table, json, yaml")

	return cmd
}

func eventAddCmd(rt *runtime) *cobra.Command {
	var start, end, output string
	var allDay bool
	var taskID int64

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPrinter(cmd.OutOrStdout(), output)
			if err != nil {
				return err
			}

			startTS, err := parseTimeFlag("start", start)
			if err != nil {
				return err
			}
			endTS, err := parseTimeFlag("end", end)
			if err != nil {
				return err
			}
			if startTS == nil || endTS == nil {
				return errors.New("--start and --end must not be empty")
			}

			in := model.EventInput{
				Title:  args[0],
				Start:  *startTS,
				End:    *endTS,
				AllDay: allDay,
			}
			if cmd.Flags().Changed("task") {
				in.TaskID = &taskID
			}

			return rt.withStore(func(st *store.SQLiteStore) error {
				event, err := st.CreateEvent(cmd.Context(), in)
				if err != nil {
					return err
				}
				return p.event(event)
			})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start time, e.g. 2024-01-01T09:00 (required)")
	cmd.Flags().StringVar(&end, "end", "", "end time (required)")
	cmd.Flags().BoolVar(&allDay, "all-day", false, "mark as an all-day event")
	cmd.Flags().Int64Var(&taskID, "task", 0, "link to this task id")
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "output format: table, json, yaml")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func eventDeleteCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			return rt.withStore(func(st *store.SQLiteStore) error {
				if err := st.DeleteEvent(cmd.Context(), id); err != nil {
					return fmt.Errorf("event %d: %w", id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted event %d\n", id)
				return nil
			})
		},
	}
}
