package model

// CourseCSVRow is one line of the courses file.
type CourseCSVRow struct {
	CourseCode string `csv:"course_code" validate:"required"`
	CourseName string `csv:"course_name"`
	Instructor string `csv:"instructor"`
	Duration   int    `csv:"duration" validate:"gte=0"`
}

// ClassroomCSVRow is one line of the classrooms file.
type ClassroomCSVRow struct {
	ID       string `csv:"classroom_id" validate:"required"`
	Capacity int    `csv:"capacity" validate:"gt=0"`
}

// EnrollmentCSVRow is one line of the students file. A student enrolled in
// several courses appears on several lines.
type EnrollmentCSVRow struct {
	StudentID   string `csv:"student_id" validate:"required"`
	StudentName string `csv:"student_name"`
	CourseCode  string `csv:"course_code" validate:"required"`
}

type ScheduleCSVRow struct {
	CourseCode string `csv:"course_code" validate:"required"`
	CourseName string `csv:"course_name"`
	Day        int    `csv:"day" validate:"gte=1"`
	Slot       int    `csv:"slot"`
	SlotLabel  string `csv:"slot_label"`
	Classroom  string `csv:"classroom" validate:"required"`
	Students   string `csv:"students"`
	Instructor string `csv:"instructor"`
}
