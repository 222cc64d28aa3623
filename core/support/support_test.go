package support_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/portal/core"
	"github.com/trezcool/portal/core/support"
	appfs "github.com/trezcool/portal/fs"
	emailsvc "github.com/trezcool/portal/services/email"
)

func TestService_Submit(t *testing.T) {
	require.NoError(t, core.ParseEmailTemplates(appfs.FS, true /* strict */))

	conf := core.NewConfig()
	conf.SupportEmail = "soporte@portal.test"
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	now := time.Date(2026, time.March, 7, 8, 0, 0, 0, time.UTC)
	svc := support.NewService(mailSvc, core.NewValidator(core.NewTranslator()), conf, core.FixedClock(now))

	ticket, err := svc.Submit(context.Background(), support.Request{
		Name:    " Ana Pérez ",
		Code:    "2026-0042",
		Message: "No aparece mi curso de Física.",
	})
	require.NoError(t, err)
	_, err = uuid.Parse(ticket.ID)
	assert.NoError(t, err)
	assert.True(t, ticket.ReceivedAt.Equal(now))

	sent := mailSvc.SentMessages()
	require.Len(t, sent, 1)
	msg := sent[0]
	require.Len(t, msg.To, 1)
	assert.Equal(t, "soporte@portal.test", msg.To[0].Address)
	assert.True(t, strings.HasSuffix(msg.Subject, ": Ana Pérez"), msg.Subject)
	assert.Contains(t, msg.TextContent, "Nuevo reporte de soporte #"+ticket.ID)
	assert.Contains(t, msg.TextContent, "Código: 2026-0042")
	assert.Contains(t, msg.TextContent, "No aparece mi curso de Física.")
	assert.Contains(t, msg.HTMLContent, "<strong>Nombre:</strong> Ana Pérez")
}

func TestService_Submit_invalid(t *testing.T) {
	require.NoError(t, core.ParseEmailTemplates(appfs.FS, true /* strict */))

	conf := core.NewConfig()
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	svc := support.NewService(mailSvc, core.NewValidator(core.NewTranslator()), conf, core.FixedClock(time.Now()))

	tests := []struct {
		name     string
		req      support.Request
		wantFlds []string
	}{
		{name: "empty", req: support.Request{}, wantFlds: []string{"nombre", "codigo", "mensaje"}},
		{name: "blank message", req: support.Request{Name: "Ana", Code: "1", Message: "   "}, wantFlds: []string{"mensaje"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tt.req)
			vErrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok, "got %v", err)
			flds := make([]string, 0, len(vErrs))
			for _, fe := range vErrs {
				flds = append(flds, fe.Field())
			}
			assert.ElementsMatch(t, tt.wantFlds, flds)
		})
	}
	assert.Empty(t, mailSvc.SentMessages())
}
