package notice

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/portal/core"
)

var ErrNotFound = errors.New("notice not found")

// Notice is the site-wide announcement along with the maintenance switch.
type Notice struct {
	Text        string     `json:"texto" bson:"texto"`
	StartsAt    *time.Time `json:"inicio" bson:"inicio"`
	EndsAt      *time.Time `json:"fin" bson:"fin"`
	Maintenance bool       `json:"mantenimiento" bson:"mantenimiento"`
	UpdatedAt   time.Time  `json:"fechaActualizacion" bson:"updated_at"` // UTC
}

// Visible reports whether the announcement text must be shown at `now`. Both bounds are inclusive and optional.
func (n Notice) Visible(now time.Time) bool {
	if strings.TrimSpace(n.Text) == "" {
		return false
	}
	if n.StartsAt != nil && now.Before(*n.StartsAt) {
		return false
	}
	if n.EndsAt != nil && now.After(*n.EndsAt) {
		return false
	}
	return true
}

// Public is what every visitor receives.
type Public struct {
	Announcement *string `json:"anuncio"`
	Maintenance  bool    `json:"mantenimiento"`
}

type UpdateNotice struct {
	Text        string     `json:"texto" validate:"max=1000"`
	StartsAt    *time.Time `json:"inicio"`
	EndsAt      *time.Time `json:"fin"`
	Maintenance bool       `json:"mantenimiento"`
}

func (un *UpdateNotice) Validate(validate *validator.Validate) error {
	un.Text = core.CleanString(un.Text)
	if err := validate.Struct(un); err != nil {
		return err
	}
	if un.StartsAt != nil && un.EndsAt != nil && !un.EndsAt.After(*un.StartsAt) {
		return core.NewValidationError(nil, core.FieldError{Field: "fin", Error: "fin debe ser posterior a inicio"})
	}
	return nil
}

type (
	// Repository stores the single current notice.
	Repository interface {
		GetNotice(ctx context.Context) (Notice, error)
		SaveNotice(ctx context.Context, n Notice) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
		now      core.Clock
	}
)

func NewService(repo Repository, validate *validator.Validate, now core.Clock) *Service {
	return &Service{repo: repo, validate: validate, now: now}
}

// Current returns the stored notice; the zero Notice when none was ever saved.
func (svc *Service) Current(ctx context.Context) (Notice, error) {
	n, err := svc.repo.GetNotice(ctx)
	if errors.Is(err, ErrNotFound) {
		return Notice{}, nil
	}
	return n, err
}

func (svc *Service) Public(ctx context.Context) (Public, error) {
	n, err := svc.Current(ctx)
	if err != nil {
		return Public{}, err
	}
	pub := Public{Maintenance: n.Maintenance}
	if n.Visible(svc.now()) {
		text := n.Text
		pub.Announcement = &text
	}
	return pub, nil
}

func (svc *Service) Save(ctx context.Context, un UpdateNotice) (Notice, error) {
	if err := un.Validate(svc.validate); err != nil {
		return Notice{}, err
	}
	n := Notice{
		Text:        un.Text,
		StartsAt:    un.StartsAt,
		EndsAt:      un.EndsAt,
		Maintenance: un.Maintenance,
		UpdatedAt:   svc.now().UTC(),
	}
	if err := svc.repo.SaveNotice(ctx, n); err != nil {
		return Notice{}, err
	}
	return n, nil
}
