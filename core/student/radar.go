package student

import (
	"context"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/portal/core/schedule"
)

const subjectSeparator = " / "

// Radar lists the online sessions with a meeting link held today, across every student.
// Sessions of a student at the same time are merged into one entry.
// Entries in progress come first, then upcoming, then finished ones; each group in chronological order.
func (svc *Service) Radar(ctx context.Context) ([]RadarEntry, error) {
	students, err := svc.repo.QueryAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "querying students")
	}

	now := svc.now()
	found := make([][]RadarEntry, len(students)) // one slot per student: no locking needed

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := range students {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			found[i] = svc.activeToday(students[i], now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]RadarEntry, 0)
	for _, perStudent := range found {
		entries = append(entries, perStudent...)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Status.Weight() != b.Status.Weight() {
			return a.Status.Weight() < b.Status.Weight()
		}
		return a.Date.Before(b.Date)
	})
	return entries, nil
}

func (svc *Service) activeToday(st Student, now time.Time) []RadarEntry {
	var entries []RadarEntry
	index := make(map[string]int) // {student + exact time + time text: position in entries}

	ty, tm, td := now.Date()
	for _, course := range svc.normalizer.Normalize(st.Courses, now) {
		for _, s := range course.Sessions {
			if s.Kind != schedule.KindOnline || s.MeetingLink == "" || !s.IsDated() {
				continue
			}
			if y, m, d := s.Date.In(now.Location()).Date(); y != ty || m != tm || d != td {
				continue
			}

			key := st.ID + "_" + strconv.FormatInt(s.Date.Unix(), 10) + "_" + s.TimeText
			if pos, ok := index[key]; ok {
				if !strings.Contains(entries[pos].Subjects, course.Subject) {
					entries[pos].Subjects += subjectSeparator + course.Subject
				}
				continue
			}
			index[key] = len(entries)
			entries = append(entries, RadarEntry{
				StudentID:   st.ID,
				StudentName: st.Name,
				Subjects:    course.Subject,
				Kind:        s.Kind,
				TimeText:    s.TimeText,
				Week:        s.Num,
				Status:      s.Status,
				MeetingLink: s.MeetingLink,
				Date:        *s.Date,
			})
		}
	}
	return entries
}
