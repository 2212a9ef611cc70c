package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/questforge/questforge/internal/daemon"
	"github.com/questforge/questforge/internal/domain"
)

var taskAt string

func init() {
	taskAddCmd.Flags().StringVar(&taskAt, "at", "", "reminder time (HH:MM)")
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskRmCmd)
	rootCmd.AddCommand(taskCmd)
}

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "List scheduled tasks",
	RunE:  runTaskList,
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a scheduled task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskAdd,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task completed for today",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskRm,
}

func runTaskList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	tasks, err := d.Trackers.Tasks()
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks. Run 'questforge task add <title>' to create one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tTITLE\tLAST DONE")
	for _, t := range tasks {
		at := t.AtHHMM
		if at == "" {
			at = "—"
		}
		done := t.LastCompleted
		if done == "" {
			done = "never"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.ID, at, t.Title, done)
	}
	return w.Flush()
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	t := domain.Task{
		Title:    strings.Join(args, " "),
		AtHHMM:   taskAt,
		DaysMask: 127, // every day
		Enabled:  true,
	}
	created, err := d.Trackers.AddTask(t)
	if err != nil {
		return err
	}
	fmt.Printf("Added task %d: %s (+10 XP)\n", created.ID, created.Title)
	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid task id %q", args[0])
	}
	if err := d.Trackers.CompleteTask(id); err != nil {
		return err
	}
	fmt.Println("Task completed (+15 XP).")
	return nil
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid task id %q", args[0])
	}
	if err := d.Trackers.DeleteTask(id); err != nil {
		return err
	}
	fmt.Println("Task deleted (-10 XP).")
	return nil
}
