package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/questforge/questforge/internal/daemon"
	"github.com/questforge/questforge/internal/domain"
)

// The "log" group covers the daily trackers that do not warrant their
// own top-level command: food, water, sport, weight, habits.

var (
	logFoodKcal       int
	logSportIntensity string
)

func init() {
	logFoodCmd.Flags().IntVar(&logFoodKcal, "kcal", 0, "calories")
	logSportCmd.Flags().StringVar(&logSportIntensity, "intensity", "medium", "light | medium | heavy")

	logCmd.AddCommand(logFoodCmd)
	logCmd.AddCommand(logWaterCmd)
	logCmd.AddCommand(logSportCmd)
	logCmd.AddCommand(logWeightCmd)
	rootCmd.AddCommand(logCmd)

	habitCmd.AddCommand(habitToggleCmd)
	rootCmd.AddCommand(habitCmd)
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log food, water, workouts, and weight",
}

var logFoodCmd = &cobra.Command{
	Use:   "food <name>",
	Short: "Log a meal (+5 XP)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLogFood,
}

var logWaterCmd = &cobra.Command{
	Use:   "water <ml>",
	Short: "Set today's running water total",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogWater,
}

var logSportCmd = &cobra.Command{
	Use:   "sport <name>",
	Short: "Log a workout (XP scales with intensity)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLogSport,
}

var logWeightCmd = &cobra.Command{
	Use:   "weight <kg>",
	Short: "Record a body-weight measurement",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogWeight,
}

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Show today's habit checklist",
	RunE:  runHabitList,
}

var habitToggleCmd = &cobra.Command{
	Use:   "toggle <name>",
	Short: "Toggle a habit's done mark for today",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHabitToggle,
}

func runLogFood(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	e := domain.FoodEntry{
		Name:  strings.Join(args, " "),
		Phase: "day",
		Kcal:  logFoodKcal,
	}
	created, err := d.Trackers.AddFood(e)
	if err != nil {
		return err
	}
	fmt.Printf("Logged %s, %d kcal (+5 XP)\n", created.Name, created.Kcal)
	return nil
}

func runLogWater(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	ml, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[0])
	}
	if err := d.Trackers.SetWater(ml); err != nil {
		return err
	}
	fmt.Printf("Water total: %d ml\n", ml)
	return nil
}

func runLogSport(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	e := domain.SportEntry{
		Name:      strings.Join(args, " "),
		Intensity: domain.Intensity(logSportIntensity),
	}
	created, err := d.Trackers.AddSport(e)
	if err != nil {
		return err
	}
	fmt.Printf("Logged workout: %s (%s)\n", created.Name, created.Intensity)
	return nil
}

func runLogWeight(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	kg, err := strconv.ParseFloat(args[0], 64)
	if err != nil || kg <= 0 {
		return fmt.Errorf("invalid weight %q", args[0])
	}
	if err := d.Trackers.LogWeight(kg); err != nil {
		return err
	}
	fmt.Printf("Recorded %.1f kg\n", kg)
	return nil
}

func runHabitList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	habits, err := d.Trackers.Habits()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(habits))
	for name := range habits {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		mark := "[ ]"
		if habits[name] {
			mark = "[x]"
		}
		fmt.Printf("%s %s\n", mark, name)
	}
	return nil
}

func runHabitToggle(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	name := strings.Join(args, " ")
	done, err := d.Trackers.ToggleHabit(name)
	if err != nil {
		return err
	}
	if done {
		fmt.Printf("%s: done (+10 XP)\n", name)
	} else {
		fmt.Printf("%s: unmarked (-10 XP)\n", name)
	}
	return nil
}
