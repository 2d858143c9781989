package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	config "github.com/maheshrc27/dagbok/configs"
	"github.com/maheshrc27/dagbok/internal/transfer"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/linkedin"
	googleoauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

const (
	ProviderGoogle   = "google"
	ProviderGitHub   = "github"
	ProviderLinkedIn = "linkedin"

	githubAPI   = "https://api.github.com"
	linkedinAPI = "https://api.linkedin.com"
)

type profileFetcher func(ctx context.Context, client *http.Client) (*transfer.OAuthProfile, error)

type oauthProvider struct {
	id          string
	name        string
	oauth       *oauth2.Config
	authOptions []oauth2.AuthCodeOption
	profile     profileFetcher
}

// configuredProviders returns the providers whose credentials are set, in a
// stable display order.
func configuredProviders(cfg config.Config) []*oauthProvider {
	redirect := func(id string) string {
		return cfg.BaseURL + "/api/auth/callback/" + id
	}

	var providers []*oauthProvider

	if cfg.Google.ClientID != "" && cfg.Google.ClientSecret != "" {
		providers = append(providers, &oauthProvider{
			id:   ProviderGoogle,
			name: "Google",
			oauth: &oauth2.Config{
				ClientID:     cfg.Google.ClientID,
				ClientSecret: cfg.Google.ClientSecret,
				RedirectURL:  redirect(ProviderGoogle),
				Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
				Endpoint:     google.Endpoint,
			},
			authOptions: []oauth2.AuthCodeOption{
				oauth2.AccessTypeOffline,
				oauth2.SetAuthURLParam("prompt", "consent"),
			},
			profile: googleProfile(""),
		})
	}

	if cfg.GitHub.ClientID != "" && cfg.GitHub.ClientSecret != "" {
		providers = append(providers, &oauthProvider{
			id:   ProviderGitHub,
			name: "GitHub",
			oauth: &oauth2.Config{
				ClientID:     cfg.GitHub.ClientID,
				ClientSecret: cfg.GitHub.ClientSecret,
				RedirectURL:  redirect(ProviderGitHub),
				Scopes:       []string{"read:user", "user:email"},
				Endpoint:     github.Endpoint,
			},
			profile: githubProfile(githubAPI),
		})
	}

	if cfg.LinkedIn.ClientID != "" && cfg.LinkedIn.ClientSecret != "" {
		providers = append(providers, &oauthProvider{
			id:   ProviderLinkedIn,
			name: "LinkedIn",
			oauth: &oauth2.Config{
				ClientID:     cfg.LinkedIn.ClientID,
				ClientSecret: cfg.LinkedIn.ClientSecret,
				RedirectURL:  redirect(ProviderLinkedIn),
				Scopes:       []string{"openid", "profile", "email"},
				Endpoint:     linkedin.Endpoint,
			},
			profile: linkedinProfile(linkedinAPI),
		})
	}

	return providers
}

// googleProfile reads the userinfo endpoint. An empty endpoint uses the
// client library default.
func googleProfile(endpoint string) profileFetcher {
	return func(ctx context.Context, client *http.Client) (*transfer.OAuthProfile, error) {
		opts := []option.ClientOption{option.WithHTTPClient(client)}
		if endpoint != "" {
			opts = append(opts, option.WithEndpoint(endpoint))
		}
		svc, err := googleoauth2.NewService(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("google userinfo service: %w", err)
		}

		info, err := svc.Userinfo.Get().Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("google userinfo: %w", err)
		}
		if info.Email != "" && (info.VerifiedEmail == nil || !*info.VerifiedEmail) {
			return nil, fmt.Errorf("google userinfo %s: %w", info.Id, ErrUnverifiedEmail)
		}

		return &transfer.OAuthProfile{
			Provider:   ProviderGoogle,
			ProviderID: info.Id,
			Email:      info.Email,
			Name:       info.Name,
			Image:      info.Picture,
		}, nil
	}
}

func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func githubProfile(base string) profileFetcher {
	return func(ctx context.Context, client *http.Client) (*transfer.OAuthProfile, error) {
		var user transfer.GitHubUser
		if err := getJSON(ctx, client, base+"/user", &user); err != nil {
			return nil, fmt.Errorf("github user: %w", err)
		}

		profile := &transfer.OAuthProfile{
			Provider:   ProviderGitHub,
			ProviderID: strconv.FormatInt(user.ID, 10),
			Email:      user.Email,
			Name:       user.Name,
			Image:      user.AvatarURL,
		}
		if profile.Name == "" {
			profile.Name = user.Login
		}

		// The public profile omits private addresses.
		if profile.Email == "" {
			var emails []transfer.GitHubEmail
			if err := getJSON(ctx, client, base+"/user/emails", &emails); err != nil {
				return nil, fmt.Errorf("github emails: %w", err)
			}
			for _, e := range emails {
				if e.Primary && e.Verified {
					profile.Email = e.Email
					break
				}
			}
		}
		return profile, nil
	}
}

func linkedinProfile(base string) profileFetcher {
	return func(ctx context.Context, client *http.Client) (*transfer.OAuthProfile, error) {
		var info transfer.LinkedInUserInfo
		if err := getJSON(ctx, client, base+"/v2/userinfo", &info); err != nil {
			return nil, fmt.Errorf("linkedin userinfo: %w", err)
		}
		if info.Sub == "" {
			return nil, errors.New("linkedin userinfo: missing subject")
		}
		if info.Email != "" && !info.EmailVerified {
			return nil, fmt.Errorf("linkedin userinfo %s: %w", info.Sub, ErrUnverifiedEmail)
		}
		return &transfer.OAuthProfile{
			Provider:   ProviderLinkedIn,
			ProviderID: info.Sub,
			Email:      info.Email,
			Name:       info.Name,
			Image:      info.Picture,
		}, nil
	}
}
