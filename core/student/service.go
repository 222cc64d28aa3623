package student

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/portal/core"
	"github.com/trezcool/portal/core/schedule"
)

var (
	// errors
	ErrNotFound  = errors.New("student not found")
	ErrInvalidID = errors.New("invalid document number")
)

type (
	Repository interface {
		// ReplaceAll drops every stored student and saves `students` in their place.
		ReplaceAll(ctx context.Context, students []Student) error
		GetByID(ctx context.Context, id string) (Student, error)
		QueryAll(ctx context.Context) ([]Student, error)
	}

	Service struct {
		repo       Repository
		validate   *validator.Validate
		normalizer *schedule.Normalizer
		now        core.Clock
		maxWeeks   int
	}
)

func NewService(repo Repository, validate *validator.Validate, now core.Clock, opts schedule.Options) *Service {
	maxWeeks := opts.MaxWeeks
	if maxWeeks <= 0 {
		maxWeeks = 16
	}
	return &Service{
		repo:       repo,
		validate:   validate,
		normalizer: schedule.NewNormalizer(opts),
		now:        now,
		maxWeeks:   maxWeeks,
	}
}

// Lookup returns the schedule of the student with the given document number, as of now.
func (svc *Service) Lookup(ctx context.Context, rawID string) (Schedule, error) {
	id := SanitizeID(rawID)
	if id == "" {
		return Schedule{}, core.NewValidationError(ErrInvalidID, core.FieldError{Field: "id", Error: ErrInvalidID.Error()})
	}

	st, err := svc.repo.GetByID(ctx, id)
	if err != nil {
		return Schedule{}, err
	}
	return Schedule{
		ID:      st.ID,
		Name:    st.Name,
		Courses: svc.normalizer.Normalize(st.Courses, svc.now()),
	}, nil
}

// Import validates the rows, merges the ones sharing a document number and replaces the stored students.
func (svc *Service) Import(ctx context.Context, rows []NewStudent) (ImportSummary, error) {
	if len(rows) == 0 {
		return ImportSummary{}, core.NewValidationError(errors.New("nothing to import"))
	}

	batch := uuid.New().String()
	now := svc.now().UTC()
	students := make([]Student, 0, len(rows))
	index := make(map[string]int, len(rows)) // {id: position in students}
	var courses int

	for i := range rows {
		row := rows[i]
		if err := row.Validate(svc.validate); err != nil {
			return ImportSummary{}, pkgerrors.Wrapf(err, "validating row %d", i+1)
		}

		padded := make([]schedule.RawCourse, 0, len(row.Courses))
		for _, c := range row.Courses {
			c.WeeklyRaw = padWeeks(c.WeeklyRaw, svc.maxWeeks)
			padded = append(padded, c)
		}
		courses += len(padded)

		if pos, ok := index[row.ID]; ok {
			students[pos].Courses = append(students[pos].Courses, padded...)
			continue
		}
		index[row.ID] = len(students)
		students = append(students, Student{
			ID:        row.ID,
			Name:      row.Name,
			Courses:   padded,
			Batch:     batch,
			UpdatedAt: now,
		})
	}

	if err := svc.repo.ReplaceAll(ctx, students); err != nil {
		return ImportSummary{}, pkgerrors.Wrap(err, "replacing students")
	}
	return ImportSummary{
		Batch:      batch,
		Students:   len(students),
		Courses:    courses,
		ImportedAt: now,
	}, nil
}

// padWeeks returns exactly n slots: missing weeks are filled with the empty sentinel.
func padWeeks(weeks []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		if i < len(weeks) && strings.TrimSpace(weeks[i]) != "" {
			out[i] = strings.TrimSpace(weeks[i])
		} else {
			out[i] = schedule.EmptySlot
		}
	}
	return out
}

// Directory lists the students matching `search` on their document number or name.
// Without search, entries are sorted by name; otherwise the best name matches come first.
func (svc *Service) Directory(ctx context.Context, search string) ([]DirectoryEntry, error) {
	students, err := svc.repo.QueryAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "querying students")
	}

	search = core.CleanString(search, true /* lower */)
	entries := make([]DirectoryEntry, 0, len(students))
	scores := make(map[string]float64, len(students))
	for _, st := range students {
		if search != "" {
			name := strings.ToLower(st.Name)
			if !strings.Contains(st.ID, search) && !strings.Contains(name, search) {
				continue
			}
			scores[st.ID] = similarity(search, name)
		}
		entries = append(entries, DirectoryEntry{ID: st.ID, Name: st.Name, Courses: len(st.Courses)})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if scores[a.ID] != scores[b.ID] {
			return scores[a.ID] > scores[b.ID]
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return entries, nil
}

// similarity is the ratio of matching characters between a and b, in [0, 1].
func similarity(a, b string) float64 {
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}
