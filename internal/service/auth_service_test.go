package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	config "github.com/maheshrc27/dagbok/configs"
	"github.com/maheshrc27/dagbok/internal/models"
	"github.com/maheshrc27/dagbok/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestAuthService_ProvidersOnlyWhenConfigured(t *testing.T) {
	cfg := config.Config{
		BaseURL: "https://site.example",
		GitHub:  config.OAuthProvider{ClientID: "gh", ClientSecret: "ghs"},
		Google:  config.OAuthProvider{ClientID: "only-id"},
	}
	svc := NewAuthService(cfg, &mockUserRepo{}, nil)

	providers := svc.Providers()
	require.Len(t, providers, 1)
	assert.Equal(t, transfer.ProviderInfo{
		ID:          "github",
		Name:        "GitHub",
		Type:        "oauth",
		SigninURL:   "https://site.example/api/auth/signin/github",
		CallbackURL: "https://site.example/api/auth/callback/github",
	}, providers[0])

	_, err := svc.AuthCodeURL("google", "state")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestAuthService_GoogleAuthCodeURL(t *testing.T) {
	cfg := config.Config{
		BaseURL: "https://site.example",
		Google:  config.OAuthProvider{ClientID: "gid", ClientSecret: "gsecret"},
	}
	svc := NewAuthService(cfg, &mockUserRepo{}, nil)

	raw, err := svc.AuthCodeURL("google", "xyz")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "xyz", q.Get("state"))
	assert.Equal(t, "consent", q.Get("prompt"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, "https://site.example/api/auth/callback/google", q.Get("redirect_uri"))
	assert.Contains(t, q.Get("scope"), "userinfo.email")
}

func TestAuthService_OpenSession(t *testing.T) {
	sessions, _ := newTestSessions(t)
	var upserted *models.User
	users := &mockUserRepo{UpsertFunc: func(_ context.Context, u *models.User) (int64, error) {
		upserted = u
		return 12, nil
	}}
	svc := &authService{cfg: config.Config{SessionTTL: time.Hour}, u: users, sessions: sessions}

	_, err := svc.openSession(context.Background(), &transfer.OAuthProfile{Provider: "github"})
	assert.ErrorIs(t, err, ErrMissingEmail)
	assert.Nil(t, upserted)

	token, err := svc.openSession(context.Background(), &transfer.OAuthProfile{
		Provider: "github", ProviderID: "1", Email: " Ana@Example.com ", Name: "Ana", AccessToken: "tok",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", upserted.Email)

	session, err := sessions.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(12), session.UserID)
	assert.Equal(t, "Ana", session.Name)
}

func TestGitHubProfile_FallsBackToPrimaryEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user":
			json.NewEncoder(w).Encode(transfer.GitHubUser{ID: 99, Login: "ana-dev", AvatarURL: "https://avatars/99"})
		case "/user/emails":
			json.NewEncoder(w).Encode([]transfer.GitHubEmail{
				{Email: "old@example.com", Primary: false, Verified: true},
				{Email: "ana@example.com", Primary: true, Verified: true},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	profile, err := githubProfile(srv.URL)(context.Background(), srv.Client())
	require.NoError(t, err)
	assert.Equal(t, "99", profile.ProviderID)
	assert.Equal(t, "ana-dev", profile.Name)
	assert.Equal(t, "ana@example.com", profile.Email)
	assert.Equal(t, "https://avatars/99", profile.Image)
}

func TestLinkedInProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/userinfo" {
			http.Error(w, "nope", http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(transfer.LinkedInUserInfo{Sub: "li-1", Name: "Ana", Email: "ana@example.com", EmailVerified: true})
	}))
	defer srv.Close()

	profile, err := linkedinProfile(srv.URL)(context.Background(), srv.Client())
	require.NoError(t, err)
	assert.Equal(t, "linkedin", profile.Provider)
	assert.Equal(t, "li-1", profile.ProviderID)

	_, err = githubProfile(srv.URL)(context.Background(), srv.Client())
	assert.Error(t, err)
}

func TestLinkedInProfile_RejectsUnverifiedEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(transfer.LinkedInUserInfo{Sub: "li-2", Name: "Eve", Email: "ana@example.com"})
	}))
	defer srv.Close()

	profile, err := linkedinProfile(srv.URL)(context.Background(), srv.Client())
	assert.ErrorIs(t, err, ErrUnverifiedEmail)
	assert.Nil(t, profile)
}

func googleUserinfoServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oauth2/v2/userinfo" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogleProfile(t *testing.T) {
	srv := googleUserinfoServer(t, `{"id":"g-1","email":"ana@example.com","verified_email":true,"name":"Ana","picture":"https://img/ana"}`)

	profile, err := googleProfile(srv.URL+"/")(context.Background(), srv.Client())
	require.NoError(t, err)
	assert.Equal(t, "google", profile.Provider)
	assert.Equal(t, "g-1", profile.ProviderID)
	assert.Equal(t, "ana@example.com", profile.Email)
	assert.Equal(t, "https://img/ana", profile.Image)
}

func TestGoogleProfile_RejectsUnverifiedEmail(t *testing.T) {
	for name, body := range map[string]string{
		"flag false":   `{"id":"g-2","email":"ana@example.com","verified_email":false,"name":"Eve"}`,
		"flag missing": `{"id":"g-3","email":"ana@example.com","name":"Eve"}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := googleUserinfoServer(t, body)

			profile, err := googleProfile(srv.URL+"/")(context.Background(), srv.Client())
			assert.ErrorIs(t, err, ErrUnverifiedEmail)
			assert.Nil(t, profile)
		})
	}
}

func TestAuthService_SignInRejectsUnverifiedEmail(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":3600}`))
	}))
	defer tokenSrv.Close()

	users := &mockUserRepo{UpsertFunc: func(context.Context, *models.User) (int64, error) {
		t.Fatal("unverified profile must not be stored")
		return 0, nil
	}}
	svc := &authService{
		u: users,
		providers: []*oauthProvider{{
			id: ProviderLinkedIn,
			oauth: &oauth2.Config{
				ClientID:     "li",
				ClientSecret: "lis",
				Endpoint:     oauth2.Endpoint{TokenURL: tokenSrv.URL + "/token"},
			},
			profile: func(context.Context, *http.Client) (*transfer.OAuthProfile, error) {
				return nil, fmt.Errorf("linkedin userinfo li-9: %w", ErrUnverifiedEmail)
			},
		}},
	}

	token, err := svc.SignIn(context.Background(), ProviderLinkedIn, "code")
	assert.ErrorIs(t, err, ErrUnverifiedEmail)
	assert.NotErrorIs(t, err, ErrOAuthProfile)
	assert.Empty(t, token)
}
