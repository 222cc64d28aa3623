package student

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/portal/core"
	"github.com/trezcool/portal/core/schedule"
)

// IDMaxLen is the longest document number accepted as a student ID.
const IDMaxLen = 15

type Student struct {
	ID        string               `json:"id" bson:"_id"`
	Name      string               `json:"nombre" bson:"nombre"`
	Courses   []schedule.RawCourse `json:"cursos" bson:"cursos"`
	Batch     string               `json:"-" bson:"batch"`      // import that wrote the record
	UpdatedAt time.Time            `json:"-" bson:"updated_at"` // UTC
}

// SanitizeID keeps the digits of a document number, 15 at most.
func SanitizeID(raw string) string {
	return core.OnlyDigits(raw, IDMaxLen)
}

// NewStudent is one imported row. Rows sharing an ID are merged.
type NewStudent struct {
	ID      string               `json:"id" validate:"required,docid"`
	Name    string               `json:"nombre" validate:"required,notblank"`
	Courses []schedule.RawCourse `json:"cursos" validate:"dive"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.ID = SanitizeID(ns.ID)
	ns.Name = core.CleanString(ns.Name)
	for i := range ns.Courses {
		ns.Courses[i].Subject = core.CleanString(ns.Courses[i].Subject)
	}
	return validate.Struct(ns)
}

// Schedule is what a student sees: every course along with its parsed sessions.
type Schedule struct {
	ID      string            `json:"id"`
	Name    string            `json:"nombre"`
	Courses []schedule.Course `json:"cursos"`
}

// DirectoryEntry is the admin listing of a student.
type DirectoryEntry struct {
	ID      string `json:"id"`
	Name    string `json:"nombre"`
	Courses int    `json:"cursos"`
}

type ImportSummary struct {
	Batch      string    `json:"lote"`
	Students   int       `json:"estudiantes"`
	Courses    int       `json:"cursos"`
	ImportedAt time.Time `json:"fecha"`
}

// RadarEntry is an online session held today, as listed on the admin panel.
type RadarEntry struct {
	StudentID   string          `json:"id"`
	StudentName string          `json:"nombre"`
	Subjects    string          `json:"materia"`
	Kind        schedule.Kind   `json:"tipo"`
	TimeText    string          `json:"hora"`
	Week        int             `json:"numSemana"`
	Status      schedule.Status `json:"status"`
	MeetingLink string          `json:"zoomLink"`
	Date        time.Time       `json:"fechaObj"`
}
