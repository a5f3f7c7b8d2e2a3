package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	DefaultEndpoint = "https://graphql.anilist.co"
	// DefaultRateLimit is AniList's documented budget of requests per minute.
	DefaultRateLimit = 90
	DefaultTimeout   = 15 * time.Second
)

// ErrNotFound is returned when AniList has no entity with the requested id.
var ErrNotFound = errors.New("anilist: not found")

// APIError is a non-successful GraphQL response other than not found.
type APIError struct {
	StatusCode int
	Messages   []string
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("anilist: unexpected status code %d", e.StatusCode)
	}
	return fmt.Sprintf("anilist: status %d: %s", e.StatusCode, strings.Join(e.Messages, "; "))
}

// Client talks to the AniList GraphQL API. It is safe for concurrent use.
type Client struct {
	log        zerolog.Logger
	httpClient *http.Client
	endpoint   string
	token      string
	limiter    *rate.Limiter
}

type Option func(*Client)

func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithRateLimit limits the client to perMinute requests. Zero or less disables limiting.
func WithRateLimit(perMinute int) Option {
	return func(c *Client) {
		if perMinute <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
	}
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log.With().Str("module", "anilist").Logger() }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		log:        zerolog.Nop(),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		endpoint:   DefaultEndpoint,
	}
	WithRateLimit(DefaultRateLimit)(c)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Authenticated returns a copy of the client that sends token as a bearer token.
// The copy shares the HTTP client and the rate limiter with c.
func (c *Client) Authenticated(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

func (c *Client) HasToken() bool {
	return c.token != ""
}

func (c *Client) Anime(ctx context.Context, id int) (*Anime, error) {
	var data struct {
		Media *Anime `json:"Media"`
	}
	if err := c.query(ctx, animeQuery, map[string]any{"id": id}, &data); err != nil {
		return nil, err
	}
	if data.Media == nil {
		return nil, ErrNotFound
	}
	return data.Media, nil
}

func (c *Client) Manga(ctx context.Context, id int) (*Manga, error) {
	var data struct {
		Media *Manga `json:"Media"`
	}
	if err := c.query(ctx, mangaQuery, map[string]any{"id": id}, &data); err != nil {
		return nil, err
	}
	if data.Media == nil {
		return nil, ErrNotFound
	}
	return data.Media, nil
}

func (c *Client) Character(ctx context.Context, id int) (*Character, error) {
	var data struct {
		Character *Character `json:"Character"`
	}
	if err := c.query(ctx, characterQuery, map[string]any{"id": id}, &data); err != nil {
		return nil, err
	}
	if data.Character == nil {
		return nil, ErrNotFound
	}
	return data.Character, nil
}

func (c *Client) User(ctx context.Context, id int) (*User, error) {
	var data struct {
		User *User `json:"User"`
	}
	if err := c.query(ctx, userQuery, map[string]any{"id": id}, &data); err != nil {
		return nil, err
	}
	if data.User == nil {
		return nil, ErrNotFound
	}
	return data.User, nil
}

// Viewer returns the account the client's token belongs to.
func (c *Client) Viewer(ctx context.Context) (*User, error) {
	if c.token == "" {
		return nil, errors.New("anilist: viewer requires a token")
	}

	var data struct {
		Viewer *User `json:"Viewer"`
	}
	if err := c.query(ctx, viewerQuery, nil, &data); err != nil {
		return nil, err
	}
	if data.Viewer == nil {
		return nil, ErrNotFound
	}
	return data.Viewer, nil
}

func (c *Client) SearchAnime(ctx context.Context, search string, page, perPage int) ([]Anime, error) {
	var data struct {
		Page struct {
			Media []Anime `json:"media"`
		} `json:"Page"`
	}
	if err := c.query(ctx, searchAnimeQuery, searchVars(search, page, perPage), &data); err != nil {
		return nil, err
	}
	return data.Page.Media, nil
}

func (c *Client) SearchManga(ctx context.Context, search string, page, perPage int) ([]Manga, error) {
	var data struct {
		Page struct {
			Media []Manga `json:"media"`
		} `json:"Page"`
	}
	if err := c.query(ctx, searchMangaQuery, searchVars(search, page, perPage), &data); err != nil {
		return nil, err
	}
	return data.Page.Media, nil
}

func (c *Client) SearchCharacter(ctx context.Context, search string, page, perPage int) ([]Character, error) {
	var data struct {
		Page struct {
			Characters []Character `json:"characters"`
		} `json:"Page"`
	}
	if err := c.query(ctx, searchCharacterQuery, searchVars(search, page, perPage), &data); err != nil {
		return nil, err
	}
	return data.Page.Characters, nil
}

func (c *Client) SearchUser(ctx context.Context, search string, page, perPage int) ([]User, error) {
	var data struct {
		Page struct {
			Users []User `json:"users"`
		} `json:"Page"`
	}
	if err := c.query(ctx, searchUserQuery, searchVars(search, page, perPage), &data); err != nil {
		return nil, err
	}
	return data.Page.Users, nil
}

func searchVars(search string, page, perPage int) map[string]any {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	return map[string]any{"search": search, "page": page, "perPage": perPage}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
		Status  int    `json:"status"`
	} `json:"errors"`
}

func (c *Client) query(ctx context.Context, query string, vars map[string]any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "rate limiter")
	}

	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return errors.Wrap(err, "failed to marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to fetch")
	}
	defer resp.Body.Close()

	c.log.Trace().
		Int("status", resp.StatusCode).
		Interface("variables", vars).
		Dur("took", time.Since(start)).
		Msg("graphql request")

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response body")
	}

	gr := &graphQLResponse{}
	if err := json.Unmarshal(body, gr); err != nil {
		if resp.StatusCode != http.StatusOK {
			return &APIError{StatusCode: resp.StatusCode}
		}
		return errors.Wrap(err, "failed to unmarshal response")
	}

	if len(gr.Errors) > 0 || resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		for _, e := range gr.Errors {
			if e.Status == http.StatusNotFound {
				return ErrNotFound
			}
			apiErr.Messages = append(apiErr.Messages, e.Message)
		}
		if resp.StatusCode == http.StatusNotFound {
			return ErrNotFound
		}
		return apiErr
	}

	if err := json.Unmarshal(gr.Data, out); err != nil {
		return errors.Wrap(err, "failed to unmarshal data")
	}

	return nil
}
