package scheduler

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/rhyrak/exam-scheduler/pkg/model"
)

// MaxExamsPerDay is the hard cap of exams a student may sit on one day.
const MaxExamsPerDay = 2

var (
	ErrNoCourses    = errors.New("no courses to schedule")
	ErrNoClassrooms = errors.New("no classrooms available")
	ErrNoTimeSlots  = errors.New("no time slots per day")
	ErrInvalidDays  = errors.New("number of days must be positive")
)

// Shuffler randomizes room search order. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Rejection reasons, in the order they are tested.
const (
	reasonStudent     = "student_conflict"
	reasonDailyLimit  = "daily_limit"
	reasonConsecutive = "consecutive_slot"
	reasonInstructor  = "instructor_conflict"
	reasonNoRoom      = "no_room"
)

// Result is the outcome of one generation run.
type Result struct {
	Schedule *model.Schedule
	Unplaced []string
	Elapsed  time.Duration
}

// Engine places exams greedily, largest courses first, first fit over
// (day, slot) with a freshly shuffled room order per exam.
type Engine struct {
	rng    Shuffler
	logger *zap.Logger
}

// NewEngine wires the randomness source and logger. A nil rng draws from a
// time-seeded source.
func NewEngine(rng Shuffler, logger *zap.Logger) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{rng: rng, logger: logger}
}

// NewSeededEngine returns an engine whose room order is reproducible for the
// same seed. A zero seed falls back to a time-seeded source.
func NewSeededEngine(seed int64, logger *zap.Logger) *Engine {
	if seed == 0 {
		return NewEngine(nil, logger)
	}
	return NewEngine(rand.New(rand.NewSource(seed)), logger)
}

// GenerateFromRoster runs Generate over every course and classroom of the
// roster with the time grid of cfg.
func (e *Engine) GenerateFromRoster(ctx context.Context, roster *model.Roster, cfg *Configuration) (*Result, error) {
	res, err := e.Generate(ctx, roster.Courses(), roster.Classrooms(), cfg.NumberOfDays, cfg.SlotLabels)
	if err != nil {
		return nil, err
	}
	res.Schedule.WithDayLabels(cfg.DayLabels)
	return res, nil
}

// Generate builds a fresh schedule. Courses without students are skipped.
// Exams that fit nowhere are reported in Result.Unplaced; that is not an
// error. The context is checked between exams only, a cancelled run returns
// no schedule.
func (e *Engine) Generate(ctx context.Context, courses []*model.Course, rooms []*model.Classroom, days int, slotLabels []string) (*Result, error) {
	switch {
	case len(courses) == 0:
		return nil, ErrNoCourses
	case len(rooms) == 0:
		return nil, ErrNoClassrooms
	case len(slotLabels) == 0:
		return nil, ErrNoTimeSlots
	case days < 1:
		return nil, ErrInvalidDays
	}
	schedule, err := model.NewSchedule(days, slotLabels)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	exams := buildExams(courses)
	occ := NewOccupancy()
	res := &Result{Schedule: schedule}
	seen := make(map[string]bool)

	for _, exam := range exams {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rejections := e.placeExam(exam, schedule, rooms, occ)
		if exam.IsScheduled() {
			continue
		}
		code := exam.Course().Code()
		if !seen[code] {
			seen[code] = true
			res.Unplaced = append(res.Unplaced, code)
		}
		e.logger.Debug("exam_unplaced",
			zap.String("course", code),
			zap.Int("students", exam.StudentCount()),
			zap.Any("rejections", rejections),
		)
	}

	res.Elapsed = time.Since(start)
	e.logger.Info("schedule_generated",
		zap.Int("exams", len(exams)),
		zap.Int("placed", schedule.Len()),
		zap.Int("unplaced", len(res.Unplaced)),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// buildExams creates one exam per course with students, ordered by student
// count descending. Ties keep input order.
func buildExams(courses []*model.Course) []*model.Exam {
	exams := make([]*model.Exam, 0, len(courses))
	for _, c := range courses {
		if c == nil || c.Enrollment() == 0 {
			continue
		}
		exams = append(exams, model.NewExam(c))
	}
	sort.SliceStable(exams, func(i, j int) bool {
		return exams[i].StudentCount() > exams[j].StudentCount()
	})
	return exams
}

// placeExam searches day by day, slot by slot, for the first acceptable slot
// and room. Returns the tally of rejection reasons seen on the way.
func (e *Engine) placeExam(exam *model.Exam, schedule *model.Schedule, rooms []*model.Classroom, occ *Occupancy) map[string]int {
	order := make([]*model.Classroom, len(rooms))
	copy(order, rooms)
	e.rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	rejections := make(map[string]int)
	students := exam.Course().Students()
	for day := 1; day <= schedule.Days(); day++ {
		for slot := 1; slot <= schedule.SlotsPerDay(); slot++ {
			t := model.TimeSlot{Day: day, Slot: slot}
			if reason := checkSlot(exam, students, t, occ); reason != "" {
				rejections[reason]++
				continue
			}
			room := findRoom(order, exam.StudentCount(), t, occ)
			if room == nil {
				rejections[reasonNoRoom]++
				continue
			}
			exam.Assign(t, room)
			schedule.Add(exam)
			markPlaced(exam, students, occ)
			return rejections
		}
	}
	return rejections
}

// checkSlot tests the student and instructor constraints in priority order.
// Returns the first failing reason, or "" if t is acceptable.
func checkSlot(exam *model.Exam, students []*model.Student, t model.TimeSlot, occ *Occupancy) string {
	for _, s := range students {
		if occ.StudentBusy(s.ID(), t) {
			return reasonStudent
		}
	}
	for _, s := range students {
		if occ.StudentExamsOnDay(s.ID(), t.Day) >= MaxExamsPerDay {
			return reasonDailyLimit
		}
	}
	if prev, ok := t.Previous(); ok {
		for _, s := range students {
			if occ.StudentBusy(s.ID(), prev) {
				return reasonConsecutive
			}
		}
	}
	course := exam.Course()
	if course.HasInstructor() && occ.InstructorBusy(t, course.Instructor()) {
		return reasonInstructor
	}
	return ""
}

// Find the first free classroom that seats n students.
func findRoom(rooms []*model.Classroom, n int, t model.TimeSlot, occ *Occupancy) *model.Classroom {
	for _, c := range rooms {
		if !c.CanAccommodate(n) || occ.RoomBusy(t, c.ID()) {
			continue
		}
		return c
	}
	return nil
}

func markPlaced(exam *model.Exam, students []*model.Student, occ *Occupancy) {
	t := exam.TimeSlot()
	code := exam.Course().Code()
	for _, s := range students {
		occ.MarkStudent(s.ID(), t, code)
	}
	occ.MarkRoom(t, exam.Classroom().ID(), code)
	occ.MarkInstructor(t, exam.Course().Instructor(), code)
}
