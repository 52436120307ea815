package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rhyrak/exam-scheduler/internal/csvio"
	"github.com/rhyrak/exam-scheduler/internal/export"
	"github.com/rhyrak/exam-scheduler/internal/scheduler"
)

func newGenerateCmd(opts *options) *cobra.Command {
	var (
		seed  int64
		out   string
		pdf   string
		quiet bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an exam schedule from the roster files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}
			if cmd.Flags().Changed("out") {
				cfg.ExportFile = out
			}
			if cmd.Flags().Changed("pdf") {
				cfg.PDFFile = pdf
			}
			return runGenerate(cmd, cfg, log, quiet)
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for the room shuffle, 0 picks one from the clock")
	cmd.Flags().StringVarP(&out, "out", "o", "", "schedule csv output file")
	cmd.Flags().StringVar(&pdf, "pdf", "", "optional pdf output file")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the timetable")
	return cmd
}

func runGenerate(cmd *cobra.Command, cfg *scheduler.Configuration, log *zap.Logger, quiet bool) error {
	w := cmd.OutOrStdout()
	roster, err := csvio.LoadRoster(cfg.CoursesFile, cfg.StudentsFile, cfg.ClassroomsFile, cfg.Comma())
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	engine := scheduler.NewSeededEngine(seed, log)
	res, err := engine.GenerateFromRoster(cmd.Context(), roster, cfg)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	report := scheduler.NewValidator(log).Validate(res.Schedule, res.Unplaced)

	if !quiet {
		csvio.PrintSchedule(w, res.Schedule)
	}
	printSummary(w, scheduler.Summarize(res, report), report)
	if len(res.Unplaced) > 0 {
		fmt.Fprintf(w, "Unassigned: %v\n", res.Unplaced)
	}
	fmt.Fprintf(w, "Seed: %d\n", seed)
	fmt.Fprintf(w, "Timer: %f ms\n", float64(res.Elapsed.Nanoseconds())/1000000.0)

	if cfg.ExportFile != "" {
		outPath, err := csvio.ExportSchedule(res.Schedule, cfg.ExportFile, cfg.Comma())
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "Exported output to: "+outPath)
	}
	if cfg.PDFFile != "" {
		outPath, err := export.NewPDFExporter().WriteSchedulePDF(cfg.PDFFile, res.Schedule, report)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "Exported pdf to: "+outPath)
	}
	return nil
}

func printSummary(w io.Writer, s scheduler.Summary, report *scheduler.Report) {
	switch report.Status {
	case scheduler.StatusClean:
		fmt.Fprintln(w, "Passed all tests")
	case scheduler.StatusNothingToValidate:
		fmt.Fprintln(w, "Nothing to validate")
	case scheduler.StatusWarnings:
		fmt.Fprintln(w, "Passed with warnings:")
	default:
		fmt.Fprintln(w, "Invalid schedule:")
	}
	for _, line := range report.Lines() {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "Placed: %d  Unplaced: %d  Critical: %d  Advisory: %d\n", s.Placed, s.Unplaced, s.Critical, s.Advisory)
}
