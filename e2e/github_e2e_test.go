// Package e2e exercises resolve.Resolve against a mock GitHub REST API
// server, standing in for a CI job that evaluates a repository it has
// not cloned. The mock serves exactly the endpoints GitHubRepository
// calls: branch lookup, single-commit lookup, tag listing, commit
// comparison, and commit listing.
package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gh "github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-gitsemver/internal/repo"
	"github.com/MyCarrier-DevOps/go-gitsemver/internal/resolve"
)

// ghMock serves a minimal slice of the GitHub REST API backing a single
// repository's commit graph and tag set.
type ghMock struct {
	commits map[string]mockCommit // sha -> commit
	tags    []mockTag
	branch  string
	tipSha  string
}

type mockCommit struct {
	sha     string
	message string
	date    string
	parents []string
}

type mockTag struct {
	name      string
	commitSha string
}

func newGHMock(branch, tipSha string) *ghMock {
	return &ghMock{commits: make(map[string]mockCommit), branch: branch, tipSha: tipSha}
}

func (m *ghMock) addCommit(sha, message, date string, parents ...string) {
	m.commits[sha] = mockCommit{sha: sha, message: message, date: date, parents: parents}
}

func (m *ghMock) addTag(name, commitSha string) {
	m.tags = append(m.tags, mockTag{name: name, commitSha: commitSha})
}

func (m *ghMock) commitJSON(sha string) map[string]interface{} {
	c := m.commits[sha]
	parents := make([]map[string]interface{}, 0, len(c.parents))
	for _, p := range c.parents {
		parents = append(parents, map[string]interface{}{"sha": p})
	}
	return map[string]interface{}{
		"sha": c.sha,
		"commit": map[string]interface{}{
			"message":   c.message,
			"committer": map[string]interface{}{"date": c.date},
		},
		"parents": parents,
	}
}

// firstParentChain walks backward from tipSha along first parents only,
// the same traversal GetBranch/ListCommits would observe on a real repo.
func (m *ghMock) firstParentChain(tipSha string) []string {
	var chain []string
	current := tipSha
	for current != "" {
		c, ok := m.commits[current]
		if !ok {
			break
		}
		chain = append(chain, current)
		if len(c.parents) > 0 {
			current = c.parents[0]
		} else {
			current = ""
		}
	}
	return chain
}

func (m *ghMock) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v3/repos/testowner/testrepo/branches/", func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/api/v3/repos/testowner/testrepo/branches/")
		if name != m.branch {
			http.NotFound(w, r)
			return
		}
		writeGHJSON(w, map[string]interface{}{
			"name":   name,
			"commit": m.commitJSON(m.tipSha),
		})
	})

	mux.HandleFunc("/api/v3/repos/testowner/testrepo/tags", func(w http.ResponseWriter, r *http.Request) {
		out := make([]map[string]interface{}, 0, len(m.tags))
		for _, tag := range m.tags {
			out = append(out, map[string]interface{}{
				"name":   tag.name,
				"commit": map[string]interface{}{"sha": tag.commitSha},
			})
		}
		writeGHJSON(w, out)
	})

	mux.HandleFunc("/api/v3/repos/testowner/testrepo/commits/", func(w http.ResponseWriter, r *http.Request) {
		sha := strings.TrimPrefix(r.URL.Path, "/api/v3/repos/testowner/testrepo/commits/")
		if _, ok := m.commits[sha]; !ok {
			http.NotFound(w, r)
			return
		}
		writeGHJSON(w, m.commitJSON(sha))
	})

	mux.HandleFunc("/api/v3/repos/testowner/testrepo/commits", func(w http.ResponseWriter, r *http.Request) {
		tip := r.URL.Query().Get("sha")
		if tip == "" {
			tip = m.tipSha
		}
		chain := m.firstParentChain(tip)
		out := make([]map[string]interface{}, 0, len(chain))
		for _, sha := range chain {
			out = append(out, m.commitJSON(sha))
		}
		writeGHJSON(w, out)
	})

	mux.HandleFunc("/api/v3/repos/testowner/testrepo/compare/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api/v3/repos/testowner/testrepo/compare/")
		parts := strings.SplitN(path, "...", 2)
		require.Len(t, parts, 2)
		base, head := parts[0], parts[1]

		headChain := m.firstParentChain(head)
		aheadBy := -1
		for i, sha := range headChain {
			if sha == base {
				aheadBy = i
				break
			}
		}
		status := "diverged"
		if base == head {
			status = "identical"
			aheadBy = 0
		} else if aheadBy >= 0 {
			status = "ahead"
		}

		writeGHJSON(w, map[string]interface{}{
			"status":   status,
			"ahead_by": maxInt(aheadBy, 0),
		})
	})

	return httptest.NewServer(mux)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func writeGHJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(err)
	}
}

// ghSha generates a deterministic 40-char lowercase hex sha from a short
// label so tests can reference commits without real repository content.
func ghSha(id string) string {
	hexLabel := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f':
			return r
		default:
			return 'a'
		}
	}, strings.ToLower(id))
	padded := hexLabel + strings.Repeat("0", 40)
	return padded[:40]
}

func resolveViaMock(t *testing.T, m *ghMock, ref string, cfg resolve.Config) string {
	t.Helper()
	server := m.server(t)
	defer server.Close()

	client, err := gh.NewClient(nil).WithEnterpriseURLs(server.URL+"/api/v3", server.URL+"/api/v3")
	require.NoError(t, err)

	ghRepo := repo.NewGitHubRepository(client, "testowner", "testrepo", ref)

	v, err := resolve.Resolve(context.Background(), ghRepo, cfg)
	require.NoError(t, err)
	return v.Extended()
}

func TestGitHubE2E_NoTags_DefaultsToZeroOneZeroSnapshot(t *testing.T) {
	sha1 := ghSha("aaa111")
	sha2 := ghSha("bbb222")

	m := newGHMock("main", sha2)
	m.addCommit(sha1, "initial commit", "2025-01-01T12:00:00Z")
	m.addCommit(sha2, "second commit", "2025-01-01T12:01:00Z", sha1)

	full := resolveViaMock(t, m, "main", resolve.Config{})
	require.Regexp(t, `^0\.1\.0-SNAPSHOT\+`, full)
}

func TestGitHubE2E_TaggedCommit_MatchesReachableBase(t *testing.T) {
	sha1 := ghSha("ccc333")
	sha2 := ghSha("ddd444")

	m := newGHMock("main", sha2)
	m.addCommit(sha1, "release commit", "2025-01-01T12:00:00Z")
	m.addCommit(sha2, "after release", "2025-01-01T12:01:00Z", sha1)
	m.addTag("v1.0.0", sha1)

	full := resolveViaMock(t, m, "main", resolve.Config{})
	require.Regexp(t, `^1\.0\.1-SNAPSHOT\+branchmain\.commits1\.`, full)
}

func TestGitHubE2E_MultipleTags_UsesHighestAsBase(t *testing.T) {
	sha1 := ghSha("111aaa")
	sha2 := ghSha("222bbb")
	sha3 := ghSha("333ccc")

	m := newGHMock("main", sha3)
	m.addCommit(sha1, "first release", "2025-01-01T12:00:00Z")
	m.addCommit(sha2, "second release", "2025-01-01T12:01:00Z", sha1)
	m.addCommit(sha3, "after latest tag", "2025-01-01T12:02:00Z", sha2)
	m.addTag("v1.0.0", sha1)
	m.addTag("v2.0.0", sha2)

	full := resolveViaMock(t, m, "main", resolve.Config{})
	require.Regexp(t, `^2\.0\.1-SNAPSHOT\+`, full)
}

func TestGitHubE2E_StandaloneMajorDirective_BumpsMajor(t *testing.T) {
	sha1 := ghSha("bd1111")
	sha2 := ghSha("bd2222")

	m := newGHMock("main", sha2)
	m.addCommit(sha1, "initial", "2025-01-01T12:00:00Z")
	m.addCommit(sha2, "major: breaking rewrite of the API", "2025-01-01T12:01:00Z", sha1)
	m.addTag("v1.0.0", sha1)

	full := resolveViaMock(t, m, "main", resolve.Config{})
	require.Regexp(t, `^2\.0\.0-SNAPSHOT\+`, full)
}

func TestGitHubE2E_ConventionalFeat_BumpsMinor(t *testing.T) {
	sha1 := ghSha("cc1111")
	sha2 := ghSha("cc2222")

	m := newGHMock("main", sha2)
	m.addCommit(sha1, "initial", "2025-01-01T12:00:00Z")
	m.addCommit(sha2, "feat: add auth", "2025-01-01T12:01:00Z", sha1)
	m.addTag("v1.0.0", sha1)

	full := resolveViaMock(t, m, "main", resolve.Config{})
	require.Regexp(t, `^1\.1\.0-SNAPSHOT\+`, full)
}

func TestGitHubE2E_RefIsRecordedAsBranchInMetadata(t *testing.T) {
	sha1 := ghSha("ref111")
	sha2 := ghSha("ref222")

	m := newGHMock("release", sha2)
	m.addCommit(sha1, "initial", "2025-01-01T12:00:00Z")
	m.addCommit(sha2, "second", "2025-01-01T12:01:00Z", sha1)

	full := resolveViaMock(t, m, "release", resolve.Config{})
	require.Contains(t, full, "branchrelease")
}

func TestGitHubE2E_BareShaRef_RecordsDetachedBranch(t *testing.T) {
	sha1 := ghSha("det111")
	sha2 := ghSha("det222222222222222222222222222222222222")

	m := newGHMock("main", sha2)
	m.addCommit(sha1, "initial", "2025-01-01T12:00:00Z")
	m.addCommit(sha2, "second", "2025-01-01T12:01:00Z", sha1)

	full := resolveViaMock(t, m, sha2, resolve.Config{})
	require.Contains(t, full, "branchdetached")
}

func TestGitHubE2E_PRNumberIsIncludedInMetadata(t *testing.T) {
	sha1 := ghSha("pr1111")
	sha2 := ghSha("pr2222")

	m := newGHMock("main", sha2)
	m.addCommit(sha1, "initial", "2025-01-01T12:00:00Z")
	m.addCommit(sha2, "second", "2025-01-01T12:01:00Z", sha1)
	m.addTag("v1.0.0", sha1)

	pr := int32(99)
	full := resolveViaMock(t, m, "main", resolve.Config{PRNumber: &pr})
	require.Contains(t, full, "pr99.")
}

func TestGitHubE2E_WorkingDirectoryAlwaysCleanSkipsDirtyIdentifier(t *testing.T) {
	sha1 := ghSha("wd1111")

	m := newGHMock("main", sha1)
	m.addCommit(sha1, "release commit", "2025-01-01T12:00:00Z")
	m.addTag("v1.0.0", sha1)

	full := resolveViaMock(t, m, "main", resolve.Config{})
	require.Equal(t, "1.0.0", full)
	require.NotContains(t, full, "dirty")
}
