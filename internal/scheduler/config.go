package scheduler

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	CoursesFile    string
	StudentsFile   string
	ClassroomsFile string
	ScheduleFile   string
	ExportFile     string
	PDFFile        string
	Delimiter      string   `validate:"len=1"`
	NumberOfDays   int      `validate:"gte=1"`
	SlotLabels     []string `validate:"min=1,dive,required"`
	DayLabels      []string
	Seed           int64
	ListenAddr     string
	Env            string
	LogLevel       string
	LogFormat      string
}

func NewDefaultConfiguration() *Configuration {
	return &Configuration{
		CoursesFile:    "./res/private/courses.csv",
		StudentsFile:   "./res/private/students.csv",
		ClassroomsFile: "./res/private/classrooms.csv",
		ScheduleFile:   "./res/private/schedule.csv",
		ExportFile:     "schedule.csv",
		Delimiter:      ";",
		NumberOfDays:   5,
		SlotLabels:     []string{"09:00", "11:00", "14:00", "16:00"},
		DayLabels:      []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		ListenAddr:     ":3001",
		Env:            "development",
		LogLevel:       "info",
		LogFormat:      "console",
	}
}

// Comma returns the CSV delimiter as a rune.
func (c *Configuration) Comma() rune {
	if c.Delimiter == "" {
		return ';'
	}
	return []rune(c.Delimiter)[0]
}

// Validate checks the time grid and delimiter.
func (c *Configuration) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// LoadConfiguration reads an optional .env file, an optional config file at
// path and EXAM_-prefixed environment variables on top of the defaults.
func LoadConfiguration(path string) (*Configuration, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("EXAM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v, NewDefaultConfiguration())

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Configuration{
		CoursesFile:    v.GetString("courses_file"),
		StudentsFile:   v.GetString("students_file"),
		ClassroomsFile: v.GetString("classrooms_file"),
		ScheduleFile:   v.GetString("schedule_file"),
		ExportFile:     v.GetString("export_file"),
		PDFFile:        v.GetString("pdf_file"),
		Delimiter:      v.GetString("delimiter"),
		NumberOfDays:   v.GetInt("days"),
		SlotLabels:     stringList(v, "slot_labels"),
		DayLabels:      stringList(v, "day_labels"),
		Seed:           v.GetInt64("seed"),
		ListenAddr:     v.GetString("listen_addr"),
		Env:            v.GetString("env"),
		LogLevel:       v.GetString("log_level"),
		LogFormat:      v.GetString("log_format"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Configuration) {
	v.SetDefault("courses_file", d.CoursesFile)
	v.SetDefault("students_file", d.StudentsFile)
	v.SetDefault("classrooms_file", d.ClassroomsFile)
	v.SetDefault("schedule_file", d.ScheduleFile)
	v.SetDefault("export_file", d.ExportFile)
	v.SetDefault("pdf_file", d.PDFFile)
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("days", d.NumberOfDays)
	v.SetDefault("slot_labels", strings.Join(d.SlotLabels, ","))
	v.SetDefault("day_labels", strings.Join(d.DayLabels, ","))
	v.SetDefault("seed", d.Seed)
	v.SetDefault("listen_addr", d.ListenAddr)
	v.SetDefault("env", d.Env)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
}

// stringList accepts either a YAML list or a comma separated string.
func stringList(v *viper.Viper, key string) []string {
	if raw, ok := v.Get(key).(string); ok {
		return splitAndTrim(raw)
	}
	return v.GetStringSlice(key)
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
