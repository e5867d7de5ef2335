package intake

import (
	"context"
	"errors"
	"testing"

	"cro-sprint-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fillProject(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.SetField(domain.ColumnOfferName, "CRO Sprint"))
	require.NoError(t, c.SetField(domain.ColumnPromise, "More booked calls"))
	require.NoError(t, c.SetField(domain.ColumnAudience, "Agencies"))
	require.NoError(t, c.SetField(domain.ColumnCalendlyURL, "https://calendly.com/acme/demo"))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	auth := new(MockAuthenticator)
	auth.On("SignInWithPassword", ctx, "you@agency.com", "wrong").Return(errors.New("Invalid credentials"))

	c := NewDashboard(auth, new(MockRecordStore)).Login
	require.NoError(t, c.SetField("email", "you@agency.com"))
	require.NoError(t, c.SetField("password", "wrong"))

	_, err := c.Submit(ctx)
	require.Error(t, err)

	snap := c.Snapshot()
	assert.Equal(t, "Invalid credentials", snap.Status.Text())
	assert.False(t, snap.Busy)
	auth.AssertExpectations(t)
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	auth := new(MockAuthenticator)
	auth.On("SignInWithPassword", ctx, "you@agency.com", "secret123").Return(nil)

	c := NewLoginController(auth)
	require.NoError(t, c.SetField("email", "you@agency.com"))
	require.NoError(t, c.SetField("password", "secret123"))

	status, err := c.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, MsgLoggedIn, status.Text())
	// login keeps its input
	assert.Equal(t, "you@agency.com", c.Snapshot().Values["email"])
}

func TestSignup_PassesNameAsMetadata(t *testing.T) {
	ctx := context.Background()
	auth := new(MockAuthenticator)
	opts := domain.SignUpOptions{Data: domain.UserMetadata{FullName: "Jordan Lee"}}
	auth.On("SignUp", ctx, "you@agency.com", "secret123", opts).Return(nil)

	c := NewSignupController(auth)
	require.NoError(t, c.SetField("name", "Jordan Lee"))
	require.NoError(t, c.SetField("email", "you@agency.com"))
	require.NoError(t, c.SetField("password", "secret123"))

	status, err := c.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Signup successful. Check your email for confirmation.", status.Text())
	auth.AssertExpectations(t)
}

func TestProject_NoSessionSavesNullOwner(t *testing.T) {
	ctx := context.Background()
	auth := new(MockAuthenticator)
	store := new(MockRecordStore)
	auth.On("GetUser", ctx).Return(nil, nil)
	store.On("Insert", ctx, "projects", domain.Row{
		"offer_name":   "CRO Sprint",
		"promise":      "More booked calls",
		"audience":     "Agencies",
		"calendly_url": "https://calendly.com/acme/demo",
		"owner_id":     nil,
	}).Return(nil)

	c := NewProjectController(auth, store)
	fillProject(t, c)

	status, err := c.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Project saved.", status.Text())

	snap := c.Snapshot()
	assert.False(t, snap.Busy)
	assert.Equal(t, NewForm(ProjectFields...).Values(), snap.Values)
	store.AssertExpectations(t)
}

func TestProject_OwnerFromSession(t *testing.T) {
	ctx := context.Background()
	auth := new(MockAuthenticator)
	store := new(MockRecordStore)
	auth.On("GetUser", ctx).Return(&domain.User{ID: "u-42"}, nil)
	store.On("Insert", ctx, "projects", mock.MatchedBy(func(row domain.Row) bool {
		return row["owner_id"] == "u-42"
	})).Return(nil)

	c := NewProjectController(auth, store)
	fillProject(t, c)

	_, err := c.Submit(ctx)
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestProject_IdentityFailureIsNoSession(t *testing.T) {
	ctx := context.Background()
	auth := new(MockAuthenticator)
	store := new(MockRecordStore)
	auth.On("GetUser", ctx).Return(nil, errors.New("auth down"))
	store.On("Insert", ctx, "projects", mock.MatchedBy(func(row domain.Row) bool {
		v, ok := row["owner_id"]
		return ok && v == nil
	})).Return(nil)

	c := NewProjectController(auth, store)
	fillProject(t, c)

	_, err := c.Submit(ctx)
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestProject_FailureKeepsForm(t *testing.T) {
	ctx := context.Background()
	auth := new(MockAuthenticator)
	store := new(MockRecordStore)
	auth.On("GetUser", ctx).Return(nil, nil)
	store.On("Insert", ctx, "projects", mock.Anything).Return(errors.New(`relation "public.projects" does not exist`))

	c := NewProjectController(auth, store)
	fillProject(t, c)
	before := c.Snapshot().Values

	_, err := c.Submit(ctx)
	require.Error(t, err)

	snap := c.Snapshot()
	assert.Equal(t, before, snap.Values)
	assert.Equal(t, `relation "public.projects" does not exist`, snap.Status.Text())
	assert.False(t, snap.Busy)
}

func TestDashboard_Controller(t *testing.T) {
	d := NewDashboard(new(MockAuthenticator), new(MockRecordStore))
	for _, name := range []string{FormLogin, FormSignup, FormProject} {
		c, ok := d.Controller(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}
	_, ok := d.Controller("billing")
	assert.False(t, ok)
}
