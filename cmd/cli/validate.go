package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/rhyrak/exam-scheduler/internal/csvio"
	"github.com/rhyrak/exam-scheduler/internal/scheduler"
	"github.com/rhyrak/exam-scheduler/pkg/model"
)

var errInvalidSchedule = errors.New("schedule has critical conflicts")

func newValidateCmd(opts *options) *cobra.Command {
	var (
		schedulePath string
		withRoster   bool
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Re-check an exported or hand-written schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			if cmd.Flags().Changed("schedule") {
				cfg.ScheduleFile = schedulePath
			}

			var roster *model.Roster
			if withRoster {
				roster, err = csvio.LoadRoster(cfg.CoursesFile, cfg.StudentsFile, cfg.ClassroomsFile, cfg.Comma())
				if err != nil {
					return err
				}
			}
			schedule, err := csvio.LoadSchedule(cfg.ScheduleFile, cfg.Comma(), roster, cfg.NumberOfDays, cfg.SlotLabels)
			if err != nil {
				return err
			}
			schedule.WithDayLabels(cfg.DayLabels)

			var unplaced []string
			if roster != nil {
				unplaced = scheduler.MissingCourses(roster.Courses(), schedule)
			}
			report := scheduler.NewValidator(log).Validate(schedule, unplaced)
			printSummary(cmd.OutOrStdout(), scheduler.Summarize(nil, report), report)
			if report.Status == scheduler.StatusInvalid {
				return errInvalidSchedule
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&schedulePath, "schedule", "s", "", "schedule csv file to validate")
	cmd.Flags().BoolVar(&withRoster, "with-roster", true, "resolve enrollments from the roster files")
	return cmd
}
