package support

import (
	"context"
	"net/mail"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/trezcool/portal/core"
)

const templateName = "support_request"

// Request is a help message sent from the support form.
type Request struct {
	Name    string `json:"nombre" validate:"required,notblank,max=120"`
	Code    string `json:"codigo" validate:"required,notblank,max=40"`
	Message string `json:"mensaje" validate:"required,notblank,max=2000"`
}

func (r *Request) Validate(validate *validator.Validate) error {
	r.Name = core.CleanString(r.Name)
	r.Code = core.CleanString(r.Code)
	r.Message = core.CleanString(r.Message)
	return validate.Struct(r)
}

type Ticket struct {
	ID         string    `json:"ticket"`
	ReceivedAt time.Time `json:"fecha"`
}

// templateData is what the support_request email templates render.
type templateData struct {
	Ticket  string
	Name    string
	Code    string
	Message string
}

type Service struct {
	mailSvc  core.EmailService
	validate *validator.Validate
	to       mail.Address
	now      core.Clock
}

func NewService(mailSvc core.EmailService, validate *validator.Validate, conf *core.Config, now core.Clock) *Service {
	return &Service{
		mailSvc:  mailSvc,
		validate: validate,
		to:       mail.Address{Name: conf.AppName, Address: conf.SupportEmail},
		now:      now,
	}
}

// Submit validates the request and forwards it to the support mailbox.
// Sending is asynchronous: the ticket is returned as soon as the message is queued.
func (svc *Service) Submit(_ context.Context, req Request) (Ticket, error) {
	if err := req.Validate(svc.validate); err != nil {
		return Ticket{}, err
	}

	ticket := Ticket{ID: uuid.New().String(), ReceivedAt: svc.now().UTC()}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{svc.to},
		Subject:      "Soporte #" + ticket.ID[:8] + ": " + req.Name,
		TemplateName: templateName,
		TemplateData: templateData{
			Ticket:  ticket.ID,
			Name:    req.Name,
			Code:    req.Code,
			Message: req.Message,
		},
	})
	return ticket, nil
}
