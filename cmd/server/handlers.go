package main

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rhyrak/exam-scheduler/internal/csvio"
	"github.com/rhyrak/exam-scheduler/internal/export"
	"github.com/rhyrak/exam-scheduler/internal/metrics"
	"github.com/rhyrak/exam-scheduler/internal/scheduler"
	"github.com/rhyrak/exam-scheduler/internal/store"
	appErrors "github.com/rhyrak/exam-scheduler/pkg/errors"
	"github.com/rhyrak/exam-scheduler/pkg/model"
	"github.com/rhyrak/exam-scheduler/pkg/response"
)

type server struct {
	cfg     *scheduler.Configuration
	store   *store.Store
	metrics *metrics.Recorder
	logger  *zap.Logger
	seed    func() int64
}

func newServer(cfg *scheduler.Configuration, st *store.Store, rec *metrics.Recorder, logger *zap.Logger) *server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &server{
		cfg:     cfg,
		store:   st,
		metrics: rec,
		logger:  logger,
		seed:    func() int64 { return time.Now().UnixNano() },
	}
}

type generateRequest struct {
	Courses    *multipart.FileHeader `form:"courses" binding:"required"`
	Students   *multipart.FileHeader `form:"students" binding:"required"`
	Classrooms *multipart.FileHeader `form:"classrooms" binding:"required"`
	Days       int                   `form:"days" binding:"omitempty,gte=1"`
	Slots      []string              `form:"slots"`
	Seed       int64                 `form:"seed"`
}

type regenerateRequest struct {
	Seed int64 `form:"seed"`
}

type examView struct {
	CourseCode string         `json:"courseCode"`
	CourseName string         `json:"courseName,omitempty"`
	TimeSlot   model.TimeSlot `json:"timeSlot"`
	DayLabel   string         `json:"dayLabel"`
	SlotLabel  string         `json:"slotLabel"`
	Classroom  string         `json:"classroom"`
	Students   int            `json:"students"`
	Instructor string         `json:"instructor,omitempty"`
}

type scheduleView struct {
	store.Meta
	Days       int               `json:"days"`
	SlotLabels []string          `json:"slotLabels"`
	Summary    scheduler.Summary `json:"summary"`
	Unplaced   []string          `json:"unplacedCourses"`
	Exams      []examView        `json:"exams"`
}

func (s *server) handlePostSchedule(ctx *gin.Context) {
	var req generateRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.Error(ctx, appErrors.WithCause(appErrors.ErrInvalidRequest, err))
		return
	}
	roster, err := loadRoster(req, s.cfg.Comma())
	if err != nil {
		response.Error(ctx, appErrors.WithCause(appErrors.ErrInvalidRoster, err))
		return
	}

	grid := *s.cfg
	if req.Days > 0 {
		grid.NumberOfDays = req.Days
	}
	if slots := splitSlots(req.Slots); len(slots) > 0 {
		grid.SlotLabels = slots
	}
	res, report, err := s.generate(ctx, roster, &grid, req.Seed)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	run := s.store.Create(roster, res, report)
	s.logger.Info("schedule_created", zap.String("id", run.ID), zap.String("status", string(report.Status)))
	response.Created(ctx, run.Meta())
}

func (s *server) handleRegenerate(ctx *gin.Context) {
	run, ok := s.lookup(ctx)
	if !ok {
		return
	}
	var req regenerateRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.Error(ctx, appErrors.Wrap(err, appErrors.ErrInvalidRequest.Code, appErrors.ErrInvalidRequest.Status, "seed must be an integer"))
		return
	}
	grid := *s.cfg
	if run.Result != nil && run.Result.Schedule != nil {
		grid.NumberOfDays = run.Result.Schedule.Days()
		grid.SlotLabels = run.Result.Schedule.SlotLabels()
	}
	res, report, err := s.generate(ctx, run.Roster, &grid, req.Seed)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	updated, err := s.store.Replace(run.ID, res, report)
	if err != nil {
		response.Error(ctx, mapStoreError(err))
		return
	}
	response.JSON(ctx, http.StatusOK, updated.Meta())
}

func (s *server) handleGetSchedules(ctx *gin.Context) {
	runs := s.store.List()
	response.JSON(ctx, http.StatusOK, runs, map[string]interface{}{"total": len(runs)})
}

func (s *server) handleGetSchedule(ctx *gin.Context) {
	run, ok := s.lookup(ctx)
	if !ok {
		return
	}
	response.JSON(ctx, http.StatusOK, newScheduleView(run))
}

func (s *server) handleDeleteSchedule(ctx *gin.Context) {
	if err := s.store.Delete(ctx.Param("id")); err != nil {
		response.Error(ctx, mapStoreError(err))
		return
	}
	response.NoContent(ctx)
}

func (s *server) handleGetValidation(ctx *gin.Context) {
	run, ok := s.lookup(ctx)
	if !ok {
		return
	}
	response.JSON(ctx, http.StatusOK, run.Report)
}

func (s *server) handleExportCSV(ctx *gin.Context) {
	run, ok := s.lookup(ctx)
	if !ok {
		return
	}
	content, err := csvio.ExportScheduleString(run.Result.Schedule, s.cfg.Comma())
	if err != nil {
		response.Error(ctx, appErrors.WithCause(appErrors.ErrExportFailed, err))
		return
	}
	response.Attachment(ctx, run.ID+"-schedule.csv", "text/csv; charset=utf-8", []byte(content))
}

func (s *server) handleExportPDF(ctx *gin.Context) {
	run, ok := s.lookup(ctx)
	if !ok {
		return
	}
	content, err := export.NewPDFExporter().RenderSchedule(run.Result.Schedule, run.Report)
	if err != nil {
		response.Error(ctx, appErrors.WithCause(appErrors.ErrExportFailed, err))
		return
	}
	response.Attachment(ctx, run.ID+"-schedule.pdf", "application/pdf", content)
}

func (s *server) generate(ctx *gin.Context, roster *model.Roster, grid *scheduler.Configuration, seed int64) (*scheduler.Result, *scheduler.Report, error) {
	if seed == 0 {
		seed = s.seed()
	}
	res, err := scheduler.NewSeededEngine(seed, s.logger).GenerateFromRoster(ctx.Request.Context(), roster, grid)
	s.metrics.RecordGeneration(res, err)
	if err != nil {
		return nil, nil, mapEngineError(err)
	}
	report := scheduler.NewValidator(s.logger).Validate(res.Schedule, res.Unplaced)
	s.metrics.RecordValidation(report)
	return res, report, nil
}

var enginePreconditions = []struct {
	sentinel error
	public   *appErrors.Error
}{
	{scheduler.ErrNoCourses, appErrors.ErrNoCourses},
	{scheduler.ErrNoClassrooms, appErrors.ErrNoClassrooms},
	{scheduler.ErrNoTimeSlots, appErrors.ErrNoTimeSlots},
	{scheduler.ErrInvalidDays, appErrors.ErrInvalidDays},
}

func mapEngineError(err error) error {
	for _, p := range enginePreconditions {
		if errors.Is(err, p.sentinel) {
			return appErrors.WithCause(p.public, err)
		}
	}
	return err
}

func (s *server) lookup(ctx *gin.Context) (*store.Run, bool) {
	run, err := s.store.Get(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, mapStoreError(err))
		return nil, false
	}
	return run, true
}

func mapStoreError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return appErrors.WithCause(appErrors.ErrScheduleNotFound, err)
	}
	return err
}

func newScheduleView(run *store.Run) scheduleView {
	view := scheduleView{
		Meta:    run.Meta(),
		Summary: scheduler.Summarize(run.Result, run.Report),
		Exams:   []examView{},
	}
	if run.Result == nil || run.Result.Schedule == nil {
		return view
	}
	schedule := run.Result.Schedule
	view.Days = schedule.Days()
	view.SlotLabels = schedule.SlotLabels()
	view.Unplaced = run.Result.Unplaced
	for _, row := range csvio.ScheduleRows(schedule) {
		e, _ := schedule.ExamFor(row.CourseCode)
		t := model.TimeSlot{Day: row.Day, Slot: row.Slot}
		view.Exams = append(view.Exams, examView{
			CourseCode: row.CourseCode,
			CourseName: row.CourseName,
			TimeSlot:   t,
			DayLabel:   schedule.DayLabel(row.Day),
			SlotLabel:  row.SlotLabel,
			Classroom:  row.Classroom,
			Students:   e.StudentCount(),
			Instructor: row.Instructor,
		})
	}
	return view
}

func loadRoster(req generateRequest, delim rune) (*model.Roster, error) {
	courses, err := req.Courses.Open()
	if err != nil {
		return nil, err
	}
	defer courses.Close()
	students, err := req.Students.Open()
	if err != nil {
		return nil, err
	}
	defer students.Close()
	classrooms, err := req.Classrooms.Open()
	if err != nil {
		return nil, err
	}
	defer classrooms.Close()
	return csvio.LoadRosterFrom(courses, students, classrooms, delim)
}

// splitSlots accepts repeated slots fields as well as one comma separated value.
func splitSlots(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
