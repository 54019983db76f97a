// Package jira implements release.Tracker against the Jira REST API.
package jira

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/quiverhq/quiver/config"
	"github.com/quiverhq/quiver/release"
)

const searchPageSize = 100

type Client struct {
	baseURL  string
	token    string
	username string
	password string
	http     *http.Client
	log      *zap.Logger
}

// NewClient builds a client for cfg.JiraURL. Credentials come from the
// environment: JIRA_TOKEN for bearer auth, or JIRA_USERNAME and
// JIRA_PASSWORD for basic auth. Anonymous access works against public
// instances.
func NewClient(cfg config.Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.JiraURL, "/"),
		token:    os.Getenv("JIRA_TOKEN"),
		username: os.Getenv("JIRA_USERNAME"),
		password: os.Getenv("JIRA_PASSWORD"),
		http:     &http.Client{Timeout: 30 * time.Second},
		log:      logger,
	}
}

type versionRecord struct {
	Name        string `json:"name"`
	Released    bool   `json:"released"`
	ReleaseDate string `json:"releaseDate"`
}

// ProjectVersions lists every version the project tracks, ascending.
// Version names that are not plain "X.Y.Z" triples are skipped.
func (c *Client) ProjectVersions(ctx context.Context, project string) ([]release.Version, error) {
	u := fmt.Sprintf("%s/rest/api/2/project/%s/versions", c.baseURL, url.PathEscape(project))
	var recs []versionRecord
	if err := c.getJSON(ctx, u, &recs); err != nil {
		return nil, err
	}

	var versions []release.Version
	for _, rec := range recs {
		v, err := release.ParseVersion(rec.Name)
		if err != nil {
			c.log.Warn("skipping tracker version with non-semver name",
				zap.String("project", project),
				zap.String("name", rec.Name))
			continue
		}
		v.Released = rec.Released
		v.ReleaseDate = rec.ReleaseDate
		versions = append(versions, v)
	}
	release.SortVersions(versions)
	return versions, nil
}

type searchResponse struct {
	StartAt    int                    `json:"startAt"`
	MaxResults int                    `json:"maxResults"`
	Total      int                    `json:"total"`
	Issues     []release.TrackerIssue `json:"issues"`
}

// ProjectIssues lists every issue fixed in the given version, paging
// through the search API.
func (c *Client) ProjectIssues(ctx context.Context, version release.Version, project string) ([]release.TrackerIssue, error) {
	jql := fmt.Sprintf("project = %s AND fixVersion = %q", project, version.String())

	var issues []release.TrackerIssue
	for startAt := 0; ; {
		q := url.Values{}
		q.Set("jql", jql)
		q.Set("fields", "issuetype,summary")
		q.Set("startAt", fmt.Sprint(startAt))
		q.Set("maxResults", fmt.Sprint(searchPageSize))
		u := fmt.Sprintf("%s/rest/api/2/search?%s", c.baseURL, q.Encode())

		var page searchResponse
		if err := c.getJSON(ctx, u, &page); err != nil {
			return nil, err
		}
		issues = append(issues, page.Issues...)
		startAt += len(page.Issues)
		if len(page.Issues) == 0 || startAt >= page.Total {
			break
		}
	}
	c.log.Debug("fetched project issues",
		zap.String("project", project),
		zap.String("version", version.String()),
		zap.Int("count", len(issues)))
	return issues, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out interface{}) error {
	if c.baseURL == "" {
		return errors.New("jira: empty base url")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	} else if c.username != "" && c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("jira: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
