package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rhyrak/exam-scheduler/internal/scheduler"
	"github.com/rhyrak/exam-scheduler/pkg/logger"
)

// options holds the flags shared by every subcommand.
type options struct {
	configPath     string
	coursesFile    string
	studentsFile   string
	classroomsFile string
	days           int
	slots          []string
	delimiter      string
	logLevel       string
}

// Execute runs the CLI.
func Execute() error { return newRootCmd().Execute() }

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "examsched",
		Short:        "Exam period scheduler",
		SilenceUsage: true,
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "configuration file (yaml, json or toml)")
	flags.StringVar(&opts.coursesFile, "courses", "", "courses csv file")
	flags.StringVar(&opts.studentsFile, "students", "", "student enrollments csv file")
	flags.StringVar(&opts.classroomsFile, "classrooms", "", "classrooms csv file")
	flags.IntVar(&opts.days, "days", 0, "number of exam days")
	flags.StringSliceVar(&opts.slots, "slots", nil, "slot labels, e.g. 09:00,14:00")
	flags.StringVar(&opts.delimiter, "delimiter", "", "csv delimiter")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newGenerateCmd(opts), newValidateCmd(opts))
	return root
}

// load reads the configuration and lets explicitly set flags win.
func (o *options) load(cmd *cobra.Command) (*scheduler.Configuration, *zap.Logger, error) {
	cfg, err := scheduler.LoadConfiguration(o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("courses") {
		cfg.CoursesFile = o.coursesFile
	}
	if flags.Changed("students") {
		cfg.StudentsFile = o.studentsFile
	}
	if flags.Changed("classrooms") {
		cfg.ClassroomsFile = o.classroomsFile
	}
	if flags.Changed("days") {
		cfg.NumberOfDays = o.days
	}
	if flags.Changed("slots") {
		cfg.SlotLabels = o.slots
	}
	if flags.Changed("delimiter") {
		cfg.Delimiter = o.delimiter
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	log, err := logger.New(logger.Config{Env: cfg.Env, Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}
