package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"openshelf/internal/adapters/util"
	"openshelf/internal/core/domain/models"
	"openshelf/internal/core/domain/ports"
)

// ErrNoSessionCookie means the login endpoint accepted the request but set
// no session cookie. Fatal: never retried.
var ErrNoSessionCookie = errors.New("login response set no session cookie")

const userAgent = "openshelf/0.1"

// autocompleteLimit is how many candidates author resolution fetches when
// checking a name for a unique exact match.
const autocompleteLimit = 10

// Ensure Client implements Catalog
var _ ports.Catalog = (*Client)(nil)

// Client is a facade over one catalog instance. It owns the HTTP session
// (cookie jar) and wraps every network call in the retry policy. A single
// Client must not be used from multiple goroutines without external
// serialization.
type Client struct {
	baseURL  string
	http     *http.Client
	username string
	policy   util.RetryPolicy
	diag     ports.Diagnostics
}

// NewClient creates a client for the catalog at baseURL. Debug log level
// turns on request/response body tracing.
func NewClient(baseURL, logLevel string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:       jar,
			Transport: &util.LoggingTransport{LogLevel: logLevel},
			Timeout:   30 * time.Second,
		},
		policy: util.DefaultRetryPolicy(),
		diag:   logDiagnostics{},
	}
}

// SetRetryPolicy replaces the retry policy. Call before issuing requests.
func (c *Client) SetRetryPolicy(p util.RetryPolicy) { c.policy = p }

// SetDiagnostics replaces the failure sink. Call before issuing requests.
func (c *Client) SetDiagnostics(d ports.Diagnostics) { c.diag = d }

// Username returns the authenticated username, or "" before login.
func (c *Client) Username() string { return c.username }

// logDiagnostics is the default failure sink.
type logDiagnostics struct{}

func (logDiagnostics) Record(event string, err error) {
	log.Printf("ERROR %s: %v", event, err)
}

// doRetry runs a request under the retry policy, rebuilding it per attempt
// so request bodies can be replayed. Transport failures and 429/5xx
// responses are retried; everything else returns as-is with the body fully
// read and closed.
func (c *Client) doRetry(ctx context.Context, event string, newReq func() (*http.Request, error)) (*http.Response, []byte, error) {
	var resp *http.Response
	var body []byte

	p := c.policy
	p.OnGiveUp = func(err error) { c.diag.Record(event, err) }

	err := util.Retry(ctx, p, func() error {
		req, err := newReq()
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", userAgent)

		res, err := c.http.Do(req)
		if err != nil {
			return util.Transient(err)
		}
		defer res.Body.Close()

		b, err := io.ReadAll(res.Body)
		if err != nil {
			return util.Transient(err)
		}
		if res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500 {
			return util.Transient(fmt.Errorf("%s returned status %d", req.URL.Path, res.StatusCode))
		}

		resp, body = res, b
		return nil
	})
	return resp, body, err
}

// Login authenticates against /account/login. The session cookie lands in
// the client's jar; a response without one is a fatal authentication
// failure, not a transient error.
func (c *Client) Login(ctx context.Context, creds models.Credentials) error {
	payload, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	resp, _, err := c.doRetry(ctx, "login", func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/account/login", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if len(resp.Cookies()) == 0 {
		return ErrNoSessionCookie
	}
	c.username = creds.Username
	return nil
}

// FindMatchingAuthors queries the author auto-complete API and returns the
// raw candidate list. An empty name short-circuits to an empty result
// without a network call.
func (c *Client) FindMatchingAuthors(ctx context.Context, name string, limit int) ([]models.AuthorMatch, error) {
	if name == "" {
		return nil, nil
	}

	u := c.baseURL + "/authors/_autocomplete?q=" + url.QueryEscape(name) + "&limit=" + strconv.Itoa(limit)
	_, body, err := c.doRetry(ctx, "author_search", func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("author search failed: %w", err)
	}

	var matches []models.AuthorMatch
	if err := json.Unmarshal(body, &matches); err != nil {
		return nil, fmt.Errorf("failed to decode author matches: %w", err)
	}
	return matches, nil
}

// ResolveAuthorOLID returns the olid of the single author whose name is an
// exact match for the query, comparing lowercased and trimmed. Zero
// matches, or more than one exact match (common names), yield "" so the
// caller falls back to creating a new author.
func (c *Client) ResolveAuthorOLID(ctx context.Context, name string) (string, error) {
	matches, err := c.FindMatchingAuthors(ctx, name, autocompleteLimit)
	if err != nil {
		return "", err
	}

	want := strings.ToLower(strings.TrimSpace(name))
	olid := ""
	exact := 0
	for _, m := range matches {
		if strings.ToLower(strings.TrimSpace(m.Name)) == want {
			exact++
			parts := strings.Split(m.Key, "/")
			olid = parts[len(parts)-1]
		}
	}
	if exact != 1 {
		return "", nil
	}
	return olid, nil
}

// buildCreationForm runs the outbound mapping: primary identifier
// selection, author resolution, form assembly.
func (c *Client) buildCreationForm(ctx context.Context, book models.Book) (url.Values, error) {
	idName, idValue, err := primaryIdentifier(book)
	if err != nil {
		return nil, err
	}

	authorName := ""
	if author, ok := book.PrimaryAuthor(); ok {
		authorName = author.Name
	}

	authorKey := models.NewAuthorKey()
	olid, err := c.ResolveAuthorOLID(ctx, authorName)
	if err != nil {
		return nil, err
	}
	if olid != "" {
		authorKey = models.ExistingAuthorKey(olid)
	}

	return creationForm(book, authorName, authorKey, idName, idValue)
}

// PreviewCreateBook is the dry-run half of CreateBook: it assembles and
// returns the creation payload without posting it. Author resolution still
// runs (an empty author name skips the lookup entirely).
func (c *Client) PreviewCreateBook(ctx context.Context, book models.Book) (url.Values, error) {
	return c.buildCreationForm(ctx, book)
}

// CreateBook submits the book to /books/add and returns the new edition
// olid, extracted from the redirect target the server lands on.
func (c *Client) CreateBook(ctx context.Context, book models.Book) (string, error) {
	form, err := c.buildCreationForm(ctx, book)
	if err != nil {
		return "", err
	}
	encoded := form.Encode()

	resp, _, err := c.doRetry(ctx, "create_book", func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/books/add", strings.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
	if err != nil {
		return "", fmt.Errorf("book creation failed: %w", err)
	}

	olid, _ := models.ExtractOLID(resp.Request.URL.Path, "books")
	return olid, nil
}

// GetBookByOLID fetches /books/<olid>.json and maps the native detail
// payload directly. A 404 is absence.
func (c *Client) GetBookByOLID(ctx context.Context, olid string) (*models.Book, error) {
	u := c.baseURL + "/books/" + url.PathEscape(olid) + ".json"
	resp, body, err := c.doRetry(ctx, "get_book", func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("book lookup failed: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	var ne nativeEdition
	if err := json.Unmarshal(body, &ne); err != nil {
		return nil, fmt.Errorf("failed to decode book %s: %w", olid, err)
	}
	return nativeToBook(ne), nil
}

// GetBookByMetadata searches by title (and optionally author) and maps the
// first result. No results, or a malformed response body, is absence.
func (c *Client) GetBookByMetadata(ctx context.Context, title, author string) (*models.Book, error) {
	u := c.baseURL + "/search.json?title=" + url.QueryEscape(title)
	if author != "" {
		u += "&author=" + url.QueryEscape(author)
	}

	_, body, err := c.doRetry(ctx, "search", func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	var results models.SearchResults
	if err := json.Unmarshal(body, &results); err != nil {
		c.diag.Record("search", err)
		return nil, nil
	}
	if results.NumFound == 0 {
		return nil, nil
	}
	doc := results.First()
	if doc == nil {
		return nil, nil
	}
	return doc.ToBook(), nil
}

// GetBookByISBN fetches the bibkey detail payload for one ISBN and applies
// the inbound detail mapping. A missing bibkey or malformed body is
// absence.
func (c *Client) GetBookByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	norm := NormalizeISBN(isbn)
	u := c.baseURL + "/api/books?bibkeys=ISBN:" + norm + "&format=json&jscmd=data"

	_, body, err := c.doRetry(ctx, "isbn_lookup", func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("isbn lookup failed: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		c.diag.Record("isbn_lookup", err)
		return nil, nil
	}

	entry, ok := raw["ISBN:"+norm]
	if !ok || len(entry) == 0 {
		return nil, nil
	}
	var ed editionData
	if err := json.Unmarshal(entry, &ed); err != nil {
		c.diag.Record("isbn_lookup", err)
		return nil, nil
	}
	return detailToBook(ed), nil
}

// ResolveOLIDByISBN runs the lighter bibkey query and extracts just the
// edition olid from the result's info_url.
func (c *Client) ResolveOLIDByISBN(ctx context.Context, isbn string) (string, error) {
	norm := NormalizeISBN(isbn)
	u := c.baseURL + "/api/books?bibkeys=ISBN:" + norm + "&format=json"

	_, body, err := c.doRetry(ctx, "olid_lookup", func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	})
	if err != nil {
		return "", fmt.Errorf("olid lookup failed: %w", err)
	}

	var raw map[string]struct {
		InfoURL string `json:"info_url"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		c.diag.Record("olid_lookup", err)
		return "", nil
	}

	entry, ok := raw["ISBN:"+norm]
	if !ok {
		return "", nil
	}
	olid, _ := models.ExtractOLID(entry.InfoURL, "books")
	return olid, nil
}
