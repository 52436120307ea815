package main

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/exam-scheduler/internal/metrics"
	"github.com/rhyrak/exam-scheduler/internal/scheduler"
	"github.com/rhyrak/exam-scheduler/internal/store"
	appErrors "github.com/rhyrak/exam-scheduler/pkg/errors"
)

const (
	coursesCSV    = "course_code;course_name;instructor;duration\nMATH101;Calculus;Ada;1\nPHYS101;Physics;Grace;1\n"
	studentsCSV   = "student_id;student_name;course_code\ns1;Alice;MATH101\ns1;Alice;PHYS101\ns2;Bob;MATH101\n"
	classroomsCSV = "classroom_id;capacity\nA101;10\n"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	rec, err := metrics.NewRecorder(prometheus.NewRegistry())
	require.NoError(t, err)
	st := store.New()
	srv := newServer(scheduler.NewDefaultConfiguration(), st, rec, nil)
	srv.seed = func() int64 { return 42 }
	return newRouter(srv), st
}

func multipartBody(t *testing.T, files map[string]string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for name, content := range files {
		part, err := w.CreateFormFile(name, name+".csv")
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func postSchedule(t *testing.T, r *gin.Engine, files map[string]string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, files, fields)
	req := httptest.NewRequest(http.MethodPost, "/schedules", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func rosterFiles() map[string]string {
	return map[string]string{"courses": coursesCSV, "students": studentsCSV, "classrooms": classroomsCSV}
}

func createdID(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var body struct {
		Data store.Meta `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.ID)
	return body.Data.ID
}

func TestPostAndFetchSchedule(t *testing.T) {
	r, st := newTestRouter(t)

	w := postSchedule(t, r, rosterFiles(), map[string]string{"days": "2", "slots": "09:00,14:00"})
	id := createdID(t, w)
	assert.Equal(t, 1, st.Len())

	w = get(r, "/schedules/"+id)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data scheduleView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, scheduler.StatusClean, body.Data.Status)
	assert.Equal(t, 2, body.Data.Days)
	assert.Equal(t, []string{"09:00", "14:00"}, body.Data.SlotLabels)
	assert.Equal(t, 2, body.Data.Summary.Placed)
	require.Len(t, body.Data.Exams, 2)
	assert.Equal(t, "MATH101", body.Data.Exams[0].CourseCode)
	assert.Equal(t, "Monday", body.Data.Exams[0].DayLabel)
	assert.Equal(t, 2, body.Data.Exams[0].Students)

	w = get(r, "/schedules")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), id)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestPostScheduleRequiresFiles(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postSchedule(t, r, map[string]string{"courses": coursesCSV}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")

	files := rosterFiles()
	files["classrooms"] = "classroom_id;capacity\nA101;0\n"
	w = postSchedule(t, r, files, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ROSTER")
}

func TestPostScheduleWithoutClassrooms(t *testing.T) {
	r, _ := newTestRouter(t)
	files := rosterFiles()
	files["classrooms"] = "classroom_id;capacity\n"

	w := postSchedule(t, r, files, nil)
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"NO_CLASSROOMS"`)
}

func TestValidationAndExports(t *testing.T) {
	r, _ := newTestRouter(t)
	id := createdID(t, postSchedule(t, r, rosterFiles(), map[string]string{"days": "2", "slots": "09:00,14:00"}))

	w := get(r, "/schedules/"+id+"/validation")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"CLEAN"`)

	w = get(r, "/schedules/"+id+"/export.csv")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "course_code;course_name;day;slot"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), id)

	w = get(r, "/schedules/"+id+"/export.pdf")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestRegenerateAndDelete(t *testing.T) {
	r, st := newTestRouter(t)
	id := createdID(t, postSchedule(t, r, rosterFiles(), map[string]string{"days": "2", "slots": "09:00,14:00"}))
	before, err := st.Get(id)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/schedules/"+id+"/regenerate?seed=9", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	after, err := st.Get(id)
	require.NoError(t, err)
	assert.NotSame(t, before.Result, after.Result)
	assert.Equal(t, 2, after.Result.Schedule.Days())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/schedules/"+id, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = get(r, "/schedules/"+id)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "SCHEDULE_NOT_FOUND")
}

func TestMapEngineError(t *testing.T) {
	cases := map[error]string{
		scheduler.ErrNoCourses:    "NO_COURSES",
		scheduler.ErrNoClassrooms: "NO_CLASSROOMS",
		scheduler.ErrNoTimeSlots:  "NO_TIME_SLOTS",
		scheduler.ErrInvalidDays:  "INVALID_DAYS",
	}
	for sentinel, code := range cases {
		mapped := appErrors.FromError(mapEngineError(sentinel))
		assert.Equal(t, code, mapped.Code)
		assert.Equal(t, http.StatusPreconditionFailed, mapped.Status)
		assert.ErrorIs(t, mapped, sentinel)
	}
	assert.Equal(t, "INTERNAL_ERROR", appErrors.FromError(mapEngineError(context.Canceled)).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	createdID(t, postSchedule(t, r, rosterFiles(), nil))

	w := get(r, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `exam_schedule_generations_total{outcome="ok"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/schedules", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
