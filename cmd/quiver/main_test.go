package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/sosedoff/gitkit"
)

func git(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if b, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, b)
	}
}

func commit(t *testing.T, dir, subject string) {
	t.Helper()
	git(t, dir, "commit", "--allow-empty", "-m", subject)
}

var fakeJiraIssues = map[string][]string{
	"0.17.0": {
		`{"key": "ARROW-1", "fields": {"issuetype": {"name": "New Feature"}, "summary": "[C++] Initial implementation"}}`,
	},
	"0.17.1": {
		`{"key": "ARROW-8684", "fields": {"issuetype": {"name": "Bug"}, "summary": "[Python] Fix wheel build"}}`,
		`{"key": "ARROW-8657", "fields": {"issuetype": {"name": "Bug"}, "summary": "[C++][Parquet] Fix reads"}}`,
	},
}

func newJiraStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/2/project/ARROW/versions", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"name": "0.17.0", "released": true, "releaseDate": "2020-04-16"},
			{"name": "0.17.1", "released": false}
		]`)
	})
	mux.HandleFunc("/rest/api/2/search", func(w http.ResponseWriter, r *http.Request) {
		jql := r.URL.Query().Get("jql")
		var issues []string
		for version, fixture := range fakeJiraIssues {
			if strings.Contains(jql, fmt.Sprintf("%q", version)) {
				issues = fixture
				break
			}
		}
		fmt.Fprintf(w, `{"startAt": 0, "maxResults": 100, "total": %d, "issues": [%s]}`,
			len(issues), strings.Join(issues, ","))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// Builds a small history with a maintenance branch, serves it over git
// smart HTTP, clones it, and runs each command against the clone.
func TestQuiverE2E(t *testing.T) {
	if testing.Short() {
		t.Skip("-short")
	}
	if runtime.GOOS == "windows" {
		t.Skip("windows not supported (gitkit uses syscall.Kill)")
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}

	jiraSrv := newJiraStub(t)

	work := t.TempDir()
	git(t, work, "init", "-b", "master")
	git(t, work, "config", "user.name", "quiver test")
	git(t, work, "config", "user.email", "test@example.com")
	commit(t, work, "ARROW-1: [C++] Initial implementation")
	git(t, work, "tag", "-a", "apache-arrow-0.17.0", "-m", "0.17.0")
	git(t, work, "branch", "maint-0.17.x")
	commit(t, work, "ARROW-8684: [Python] Fix wheel build")
	commit(t, work, "ARROW-8657: [C++][Parquet] Fix reads")
	git(t, work, "checkout", "maint-0.17.x")
	commit(t, work, "ARROW-8684: [Python] Fix wheel build")
	git(t, work, "checkout", "master")

	reposRoot := t.TempDir()
	git(t, "", "clone", "--bare", work, filepath.Join(reposRoot, "arrow.git"))

	svc := gitkit.New(gitkit.Config{Dir: reposRoot})
	if err := svc.Setup(); err != nil {
		t.Fatal(err)
	}
	gitSrv := httptest.NewServer(svc)
	t.Cleanup(gitSrv.Close)

	clone := filepath.Join(t.TempDir(), "clone")
	git(t, "", "clone", gitSrv.URL+"/arrow.git", clone)
	git(t, clone, "branch", "maint-0.17.x", "origin/maint-0.17.x")

	cfgPath := filepath.Join(clone, "quiver.yaml")
	cfgYAML := fmt.Sprintf(
		"jira_url: %s\nproduct: apache-arrow\nproject: ARROW\ncommit_url: https://github.com/apache/arrow/commit/%%s\n",
		jiraSrv.URL)
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0644); err != nil {
		t.Fatal(err)
	}

	currDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(currDir)
	if err := os.Chdir(clone); err != nil {
		t.Fatal(err)
	}

	tcs := [][]string{
		{"quiver", "-c", cfgPath, "report", "0.17.1"},
		{"quiver", "-c", cfgPath, "report", "0.17.0"},
		{"quiver", "-c", cfgPath, "changelog", "0.17.1"},
		{"quiver", "-c", cfgPath, "--quiet", "pick", "0.17.1"},
		{"quiver", "-c", cfgPath, "--quiet", "--include-applied", "pick", "0.17.1"},
	}
	for _, args := range tcs {
		t.Run(strings.Join(args[3:], "_"), func(t *testing.T) {
			if err := run(args); err != nil {
				t.Fatalf("run %v failed: %v", args, err)
			}
		})
	}
}

func TestRunUnknownCommand(t *testing.T) {
	if err := run([]string{"quiver", "bogus", "1.0.0"}); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestRunVersion(t *testing.T) {
	if err := run([]string{"quiver", "--version"}); err != nil {
		t.Fatal(err)
	}
}
