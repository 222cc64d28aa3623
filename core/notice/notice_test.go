package notice_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/portal/core"
	"github.com/trezcool/portal/core/notice"
	inmemdb "github.com/trezcool/portal/storage/database/inmem"
)

func tPtr(t time.Time) *time.Time { return &t }

func TestNotice_Visible(t *testing.T) {
	now := time.Date(2026, time.March, 7, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		notice notice.Notice
		want   bool
	}{
		{name: "empty text", notice: notice.Notice{Text: "  "}},
		{name: "no bounds", notice: notice.Notice{Text: "Hola"}, want: true},
		{name: "not started", notice: notice.Notice{Text: "Hola", StartsAt: tPtr(now.Add(time.Minute))}},
		{name: "started", notice: notice.Notice{Text: "Hola", StartsAt: tPtr(now)}, want: true},
		{name: "ended", notice: notice.Notice{Text: "Hola", EndsAt: tPtr(now.Add(-time.Minute))}},
		{name: "ends now", notice: notice.Notice{Text: "Hola", EndsAt: tPtr(now)}, want: true},
		{name: "within window", notice: notice.Notice{Text: "Hola", StartsAt: tPtr(now.Add(-time.Hour)), EndsAt: tPtr(now.Add(time.Hour))}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.notice.Visible(now))
		})
	}
}

func TestService(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 7, 8, 0, 0, 0, time.UTC)
	svc := notice.NewService(
		inmemdb.NewNoticeRepository(inmemdb.Open()),
		core.NewValidator(core.NewTranslator()),
		core.FixedClock(now),
	)

	// nothing saved yet
	pub, err := svc.Public(ctx)
	require.NoError(t, err)
	assert.Equal(t, notice.Public{}, pub)

	saved, err := svc.Save(ctx, notice.UpdateNotice{Text: " Cierre de notas el viernes ", Maintenance: true})
	require.NoError(t, err)
	assert.Equal(t, "Cierre de notas el viernes", saved.Text)
	assert.True(t, saved.UpdatedAt.Equal(now))

	pub, err = svc.Public(ctx)
	require.NoError(t, err)
	require.NotNil(t, pub.Announcement)
	assert.Equal(t, "Cierre de notas el viernes", *pub.Announcement)
	assert.True(t, pub.Maintenance)

	// out of its window the text is hidden, the maintenance flag is not
	_, err = svc.Save(ctx, notice.UpdateNotice{Text: "Más tarde", StartsAt: tPtr(now.Add(time.Hour)), Maintenance: true})
	require.NoError(t, err)
	pub, err = svc.Public(ctx)
	require.NoError(t, err)
	assert.Nil(t, pub.Announcement)
	assert.True(t, pub.Maintenance)

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Más tarde", current.Text)
}

func TestService_Save_invalid(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 7, 8, 0, 0, 0, time.UTC)
	svc := notice.NewService(
		inmemdb.NewNoticeRepository(inmemdb.Open()),
		core.NewValidator(core.NewTranslator()),
		core.FixedClock(now),
	)

	_, err := svc.Save(ctx, notice.UpdateNotice{Text: "x", StartsAt: tPtr(now), EndsAt: tPtr(now)})
	require.Error(t, err)
	require.True(t, core.IsValidation(err))
	assert.Contains(t, err.(*core.ValidationError).FieldMap(), "fin")

	long := make([]byte, 1001)
	for i := range long {
		long[i] = 'a'
	}
	_, err = svc.Save(ctx, notice.UpdateNotice{Text: string(long)})
	_, ok := err.(validator.ValidationErrors)
	assert.True(t, ok)
}
