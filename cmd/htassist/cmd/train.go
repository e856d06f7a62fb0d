package cmd

import (
	"fmt"
	"strings"

	"htassist/lib/hattrick"
	"htassist/lib/training"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type trainFlags struct {
	level     float64
	coach     int
	assistant int
	intensity int
	stamina   int
	trainType string
	full      bool
	age       string
	playTime  int
}

var train trainFlags

func init() {
	rootCmd.AddCommand(trainCmd)
	trainCmd.AddCommand(trainWeeklyCmd)
	trainCmd.AddCommand(trainSeasonCmd)

	f := trainCmd.PersistentFlags()
	f.Float64Var(&train.level, "level", 5, "current skill level, fractions allowed")
	f.IntVar(&train.coach, "coach", 7, "coach level (4-8)")
	f.IntVar(&train.assistant, "assistant", 0, "sum of the assistant coach levels (0-10)")
	f.IntVar(&train.intensity, "intensity", 100, "training intensity in percent")
	f.IntVar(&train.stamina, "stamina", 10, "stamina share in percent")
	f.StringVar(&train.trainType, "type", string(training.Playmaking), "training type, one of "+trainTypeChoices())
	f.BoolVar(&train.full, "full", true, "trained on a full slot, false for a background slot")
	f.StringVar(&train.age, "age", "17.0", fmt.Sprintf("the player's age in '%s' format", hattrick.AgeFormat))
	f.IntVar(&train.playTime, "play-time", 90, "minutes played in the trained position")
}

func trainTypeChoices() string {
	names := make([]string, len(training.TrainTypes()))
	for i, t := range training.TrainTypes() {
		names[i] = string(t)
	}
	return strings.Join(names, "/")
}

func (f trainFlags) params() (training.Params, error) {
	trainType, err := training.ParseTrainType(f.trainType)
	if err != nil {
		return training.Params{}, err
	}
	age, err := hattrick.ParseAge(f.age)
	if err != nil {
		return training.Params{}, err
	}
	return training.Params{
		Level:     f.level,
		Coach:     f.coach,
		Assistant: f.assistant,
		Intensity: f.intensity,
		Stamina:   f.stamina,
		TrainType: trainType,
		Full:      f.full,
		Age:       age.InYears(),
		PlayTime:  f.playTime,
	}, nil
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Estimates training progress.",
}

var trainWeeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Prints the fraction of a level gained in a week.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := train.params()
		if err != nil {
			return err
		}
		progress, err := training.Progress(params)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Type", "Level", "Progress", "Weeks per level"})
		weeks := "-"
		if progress > 0 {
			weeks = fmt.Sprintf("%.1f", 1/progress)
		}
		t.AppendRow(table.Row{params.TrainType, params.Level, fmt.Sprintf("%.3f", progress), weeks})
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}

var trainSeasonCmd = &cobra.Command{
	Use:   "season",
	Short: "Prints the level reached after a season of training.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := train.params()
		if err != nil {
			return err
		}
		level, err := training.NextLevelAfterSeason(params)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Type", "Level", "Weeks", "Level after"})
		t.AppendRow(table.Row{params.TrainType, params.Level, training.SeasonWeeks, level})
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}
