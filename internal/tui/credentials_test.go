package tui

import (
	"net/http"
	"testing"

	"github.com/Makepad-fr/tada-remote/internal/api"
	"github.com/Makepad-fr/tada-remote/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"abc@x.com", true},
		{"a1@x", true},
		{"x.abc@x.com", true},
		{"ABC@x.com", false},
		{"@x.com", false},
		{"abc", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidEmail(tt.in), "ValidEmail(%q)", tt.in)
	}
}

func TestValidPassword(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"password1", true},
		{"12345678", true},
		{"a.b_c%d+e-", true},
		{"short", false},
		{"seven77", false},
		{"", false},
		{"ab cd ef gh", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidPassword(tt.in), "ValidPassword(%q)", tt.in)
	}
}

// fill types the credentials into a fresh form page and returns it focused on email.
func fill(t *testing.T, p page, email, password string) page {
	t.Helper()
	p, _ = p.Update(runes(email))
	p, _ = p.Update(keyTab)
	p, _ = p.Update(runes(password))
	return p
}

func signupForm(p page) credentialsForm { return p.(*signupPage).form }

func TestSignup_ValidityGatesSubmit(t *testing.T) {
	auth := &fakeAuth{}
	p := newSignupPage(Deps{Auth: auth, Session: &fakeSession{}})

	p = fill(t, p, "abc@x.com", "short")
	assert.False(t, signupForm(p).valid())

	// enter on an invalid form moves focus instead of submitting
	p, cmd := p.Update(keyEnter)
	assert.Empty(t, auth.signups)
	assert.Equal(t, focusSubmit, signupForm(p).focus)
	_ = cmd

	p, cmd = p.Update(keyEnter)
	assert.Nil(t, cmd)
	assert.Empty(t, auth.signups)
}

func TestSignup_SubmitsOnce(t *testing.T) {
	auth := &fakeAuth{signupResult: api.SignupResult{StatusCode: http.StatusCreated}}
	p := newSignupPage(Deps{Auth: auth, Session: &fakeSession{}})
	p = fill(t, p, "abc@x.com", "password1")
	require.True(t, signupForm(p).valid())

	_, cmd := p.Update(keyEnter)
	require.NotNil(t, cmd)
	_ = cmd()
	require.Len(t, auth.signups, 1)
	assert.Equal(t, model.Credentials{Email: "abc@x.com", Password: "password1"}, auth.signups[0])
}

func TestSignup_BadRequestMarksEmail(t *testing.T) {
	auth := &fakeAuth{signupResult: api.SignupResult{StatusCode: http.StatusBadRequest}}
	p := newSignupPage(Deps{Auth: auth, Session: &fakeSession{}})
	p = fill(t, p, "abc@x.com", "password1")

	_, cmd := p.Update(keyEnter)
	p, cmd = p.Update(cmd())
	assert.Nil(t, cmd)

	form := signupForm(p)
	assert.Equal(t, errEmailInUse, form.emailErr)
	assert.Equal(t, "", form.passwordErr)
	assert.Equal(t, "abc@x.com", form.email.Value())
	assert.Equal(t, "password1", form.password.Value())
	assert.Contains(t, p.View(), "already in use")
}

func TestSignup_OtherStatusResetsAndNavigates(t *testing.T) {
	for _, status := range []int{http.StatusCreated, http.StatusOK, http.StatusInternalServerError} {
		auth := &fakeAuth{signupResult: api.SignupResult{StatusCode: status}}
		p := newSignupPage(Deps{Auth: auth, Session: &fakeSession{}})
		p = fill(t, p, "abc@x.com", "password1")

		_, cmd := p.Update(keyEnter)
		p, cmd = p.Update(cmd())
		require.NotNil(t, cmd, "status %d", status)
		assert.Equal(t, navigateMsg{to: routeSignin}, cmd(), "status %d", status)

		form := signupForm(p)
		assert.Equal(t, "", form.email.Value())
		assert.Equal(t, "", form.password.Value())
		assert.Equal(t, "", form.emailErr)
	}
}

func TestSignup_TransportErrorOnlyLogs(t *testing.T) {
	auth := &fakeAuth{signupErr: errBoom}
	p := newSignupPage(Deps{Auth: auth, Session: &fakeSession{}})
	p = fill(t, p, "abc@x.com", "password1")

	_, cmd := p.Update(keyEnter)
	p, cmd = p.Update(cmd())
	assert.Nil(t, cmd)
	form := signupForm(p)
	assert.Equal(t, "", form.emailErr)
	assert.Equal(t, "abc@x.com", form.email.Value())
}

func TestSignup_TypingClearsError(t *testing.T) {
	p := newSignupPage(Deps{Auth: &fakeAuth{}, Session: &fakeSession{}})
	p, _ = p.Update(signupDoneMsg{result: api.SignupResult{StatusCode: http.StatusBadRequest}})
	require.Equal(t, errEmailInUse, signupForm(p).emailErr)

	p, _ = p.Update(runes("z"))
	assert.Equal(t, "", signupForm(p).emailErr)
}

func TestSignup_SwitchToSignin(t *testing.T) {
	p := newSignupPage(Deps{Auth: &fakeAuth{}, Session: &fakeSession{}})
	_, cmd := p.Update(keyCtrlN)
	require.NotNil(t, cmd)
	assert.Equal(t, navigateMsg{to: routeSignin}, cmd())
}

func TestSignin_StoresTokenAndFlipsAuth(t *testing.T) {
	sess := &fakeSession{}
	auth := &fakeAuth{token: "tok"}
	p := newSigninPage(Deps{Auth: auth, Session: sess})
	p = fill(t, p, "abc@x.com", "password1")

	_, cmd := p.Update(keyEnter)
	require.NotNil(t, cmd)
	done := cmd()
	assert.Equal(t, signinDoneMsg{email: "abc@x.com"}, done)
	assert.Equal(t, "tok", sess.token)

	p, cmd = p.Update(done)
	require.NotNil(t, cmd)
	assert.Equal(t, authChangedMsg{loggedIn: true}, cmd())
	assert.Equal(t, "", p.(*signinPage).form.email.Value())
}

func TestSignin_RejectedCredentials(t *testing.T) {
	sess := &fakeSession{}
	auth := &fakeAuth{signinErr: &api.StatusError{Method: "POST", Path: "/auth/signin", StatusCode: http.StatusUnauthorized}}
	p := newSigninPage(Deps{Auth: auth, Session: sess})
	p = fill(t, p, "abc@x.com", "password1")

	_, cmd := p.Update(keyEnter)
	p, cmd = p.Update(cmd())
	assert.Nil(t, cmd)
	assert.Equal(t, errBadCredentials, p.(*signinPage).form.emailErr)
	assert.False(t, sess.LoggedIn())
}
