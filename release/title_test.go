package release

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseCommitTitle(t *testing.T) {
	tcs := []struct {
		name   string
		raw    string
		expect CommitTitle
	}{
		{
			name: "issue-colon-components",
			raw:  "ARROW-9598: [C++][Parquet] Fix writing nullable structs",
			expect: CommitTitle{
				Project:    "ARROW",
				Issue:      "ARROW-9598",
				Components: []string{"C++", "Parquet"},
				Summary:    "Fix writing nullable structs",
			},
		},
		{
			name: "three-components",
			raw:  "ARROW-8002: [C++][Dataset][R] Support partitioned dataset writing",
			expect: CommitTitle{
				Project:    "ARROW",
				Issue:      "ARROW-8002",
				Components: []string{"C++", "Dataset", "R"},
				Summary:    "Support partitioned dataset writing",
			},
		},
		{
			name: "lowercase-summary",
			raw:  "ARROW-9600: [Rust][Arrow] pin older version of proc-macro2 during build",
			expect: CommitTitle{
				Project:    "ARROW",
				Issue:      "ARROW-9600",
				Components: []string{"Rust", "Arrow"},
				Summary:    "pin older version of proc-macro2 during build",
			},
		},
		{
			name: "no-issue",
			raw:  "[Release] Update versions for 1.0.0",
			expect: CommitTitle{
				Components: []string{"Release"},
				Summary:    "Update versions for 1.0.0",
			},
		},
		{
			name: "no-issue-two-components",
			raw:  "[Python][Doc] Fix rst role dataset.rst (#7725)",
			expect: CommitTitle{
				Components: []string{"Python", "Doc"},
				Summary:    "Fix rst role dataset.rst (#7725)",
			},
		},
		{
			name: "other-project",
			raw:  "PARQUET-1882: [C++] Buffered Reads should allow for 0 length",
			expect: CommitTitle{
				Project:    "PARQUET",
				Issue:      "PARQUET-1882",
				Components: []string{"C++"},
				Summary:    "Buffered Reads should allow for 0 length",
			},
		},
		{
			name: "no-colon-multiline",
			raw:  "ARROW-9340 [R] Use CRAN version of decor package \nsomething else\n\nwhich should be truncated",
			expect: CommitTitle{
				Project: "ARROW",
				Issue:   "ARROW-9340",
				// the line break truncates the summary; trailing
				// whitespace on the first line survives
				Components: []string{"R"},
				Summary:    "Use CRAN version of decor package ",
			},
		},
		{
			name: "issue-no-components",
			raw:  "ARROW-123: fix the thing",
			expect: CommitTitle{
				Project: "ARROW",
				Issue:   "ARROW-123",
				Summary: "fix the thing",
			},
		},
		{
			name: "slash-component-is-one-tag",
			raw:  "[C++/Python] Fix both",
			expect: CommitTitle{
				Components: []string{"C++/Python"},
				Summary:    "Fix both",
			},
		},
		{
			name:   "no-structure",
			raw:    "  Update versions  ",
			expect: CommitTitle{Summary: "Update versions"},
		},
		{
			name: "brackets-mid-summary-not-components",
			raw:  "Update [deps] for release",
			expect: CommitTitle{
				Summary: "Update [deps] for release",
			},
		},
		{
			name:   "empty",
			raw:    "",
			expect: CommitTitle{},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseCommitTitle(tc.raw)
			if diff := cmp.Diff(tc.expect, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("title mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
