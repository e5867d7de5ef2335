package intake

import (
	"context"

	"cro-sprint-backend/internal/domain"
	"cro-sprint-backend/internal/logger"
)

// Authenticator is the visitor-scoped view of the authentication collaborator
type Authenticator interface {
	SignInWithPassword(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, email, password string, opts domain.SignUpOptions) error
	GetUser(ctx context.Context) (*domain.User, error)
}

// RecordStore inserts rows by table name
type RecordStore interface {
	Insert(ctx context.Context, table string, row domain.Row) error
}

// Form names
const (
	FormLogin   = "login"
	FormSignup  = "signup"
	FormProject = "project"
)

const (
	MsgLoggedIn     = "Logged in successfully."
	MsgSignedUp     = "Signup successful. Check your email for confirmation."
	MsgProjectSaved = "Project saved."
)

var (
	emailField    = Field{Name: "email", Label: "Email", Kind: KindEmail, Required: true}
	passwordField = Field{Name: "password", Label: "Password", Kind: KindPassword, Required: true}

	LoginFields = []Field{emailField, passwordField}

	SignupFields = []Field{
		{Name: "name", Label: "Name", Kind: KindText, Required: true},
		emailField,
		passwordField,
	}

	ProjectFields = []Field{
		{Name: domain.ColumnOfferName, Label: "Offer name", Kind: KindText, Required: true},
		{Name: domain.ColumnPromise, Label: "Promise", Kind: KindText, Required: true},
		{Name: domain.ColumnAudience, Label: "Audience", Kind: KindText, Required: true},
		{Name: domain.ColumnCalendlyURL, Label: "Calendly URL", Kind: KindURL, Required: true},
	}
)

func NewLoginController(auth Authenticator) *Controller {
	return NewController(FormLogin, LoginFields, func(ctx context.Context, v Values) (string, error) {
		if err := auth.SignInWithPassword(ctx, v["email"], v["password"]); err != nil {
			return "", err
		}
		return MsgLoggedIn, nil
	})
}

// NewSignupController passes the name as profile metadata, never as a credential
func NewSignupController(auth Authenticator) *Controller {
	return NewController(FormSignup, SignupFields, func(ctx context.Context, v Values) (string, error) {
		opts := domain.SignUpOptions{Data: domain.UserMetadata{FullName: v["name"]}}
		if err := auth.SignUp(ctx, v["email"], v["password"], opts); err != nil {
			return "", err
		}
		return MsgSignedUp, nil
	})
}

// NewProjectController resolves the owner at submission time and resets the
// form only after the row is stored
func NewProjectController(auth Authenticator, store RecordStore) *Controller {
	return NewController(FormProject, ProjectFields, func(ctx context.Context, v Values) (string, error) {
		var ownerID *string
		user, err := auth.GetUser(ctx)
		if err != nil {
			logger.WarnContext(ctx, "Could not resolve session identity, saving project without owner", "error", err)
		} else if user != nil {
			ownerID = &user.ID
		}

		row := domain.ProjectRow(
			v[domain.ColumnOfferName],
			v[domain.ColumnPromise],
			v[domain.ColumnAudience],
			v[domain.ColumnCalendlyURL],
			ownerID,
		)
		if err := store.Insert(ctx, domain.ProjectsTable, row); err != nil {
			return "", err
		}
		return MsgProjectSaved, nil
	}, WithResetOnSuccess())
}

// Dashboard groups the three independent controllers of one visitor
type Dashboard struct {
	Login   *Controller
	Signup  *Controller
	Project *Controller
}

func NewDashboard(auth Authenticator, store RecordStore) *Dashboard {
	return &Dashboard{
		Login:   NewLoginController(auth),
		Signup:  NewSignupController(auth),
		Project: NewProjectController(auth, store),
	}
}

// Controller looks up a controller by form name
func (d *Dashboard) Controller(name string) (*Controller, bool) {
	switch name {
	case FormLogin:
		return d.Login, true
	case FormSignup:
		return d.Signup, true
	case FormProject:
		return d.Project, true
	default:
		return nil, false
	}
}
