// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package registry

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/dndtiles/dndtiles/internal/pack"
)

type packRepo struct {
	dir  string
	repo *git.Repository
	wt   *git.Worktree
}

func initPackRepo(t *testing.T) *packRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	return &packRepo{dir: dir, repo: repo, wt: wt}
}

func testSignature() *object.Signature {
	return &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()}
}

// release commits the definition plus any extra files and tags the result.
func (r *packRepo) release(t *testing.T, def pack.Definition, extra map[string]string, annotated bool) {
	t.Helper()

	require.NoError(t, def.Save(r.dir))
	for name, content := range extra {
		require.NoError(t, os.WriteFile(filepath.Join(r.dir, name), []byte(content), 0o600))
	}
	_, err := r.wt.Add(".")
	require.NoError(t, err)
	hash, err := r.wt.Commit("release "+def.Version, &git.CommitOptions{Author: testSignature()})
	require.NoError(t, err)

	var opts *git.CreateTagOptions
	if annotated {
		opts = &git.CreateTagOptions{Tagger: testSignature(), Message: "release " + def.Version}
	}
	_, err = r.repo.CreateTag("v"+def.Version, hash, opts)
	require.NoError(t, err)
}

func TestGitSource(t *testing.T) {
	t.Parallel()

	upstream := initPackRepo(t)
	upstream.release(t, caveDefinition("0.1.0"), map[string]string{"README.md": "first\n"}, false)
	upstream.release(t, caveDefinition("0.2.0"), map[string]string{"README.md": "second\n"}, true)

	head, err := upstream.repo.Head()
	require.NoError(t, err)
	_, err = upstream.repo.CreateTag("nightly", head.Hash(), nil)
	require.NoError(t, err)

	cache := t.TempDir()
	source := NewGitSource("upstream", upstream.dir, cache)
	ctx := context.Background()

	versions, err := source.Resolve(ctx, "caves")
	require.NoError(t, err)
	require.Equal(t, []string{"0.1.0", "0.2.0"}, versions)

	_, err = source.Resolve(ctx, "dungeons")
	require.ErrorIs(t, err, ErrPackNotFound)

	dst := filepath.Join(t.TempDir(), "caves")
	fetched, err := source.Fetch(ctx, "caves", "0.1.0", dst)
	require.NoError(t, err)
	require.Equal(t, "upstream", fetched.Source)

	def, err := pack.Load(dst)
	require.NoError(t, err)
	require.Equal(t, "0.1.0", def.Version)
	readme, err := os.ReadFile(filepath.Join(dst, "README.md"))
	require.NoError(t, err)
	require.Equal(t, "first\n", string(readme))

	_, err = source.Fetch(ctx, "caves", "9.9.9", filepath.Join(t.TempDir(), "x"))
	require.ErrorIs(t, err, ErrVersionNotFound)
}

func TestGitSourceRefreshesMirror(t *testing.T) {
	t.Parallel()

	upstream := initPackRepo(t)
	upstream.release(t, caveDefinition("0.1.0"), nil, false)

	cache := t.TempDir()
	source := NewGitSource("upstream", upstream.dir, cache)
	ctx := context.Background()

	versions, err := source.Resolve(ctx, "caves")
	require.NoError(t, err)
	require.Equal(t, []string{"0.1.0"}, versions)

	// A release published after the first resolve shows up on the next one.
	upstream.release(t, caveDefinition("0.2.0"), nil, true)

	versions, err = source.Resolve(ctx, "caves")
	require.NoError(t, err)
	require.Equal(t, []string{"0.1.0", "0.2.0"}, versions)

	dst := filepath.Join(t.TempDir(), "caves")
	fetched, err := source.Fetch(ctx, "caves", "0.2.0", dst)
	require.NoError(t, err)

	sum, err := pack.TreeHash(dst)
	require.NoError(t, err)
	require.Equal(t, sum, fetched.Integrity)
}

func TestMirrorDirName(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://example.com/tiles/caves",
		"https://example.com/tiles.caves",
		"git@example.com:tiles/caves.git",
		"/srv/git/caves",
	}
	safe := regexp.MustCompile(`^[a-z0-9_]+\.git$`)
	seen := make(map[string]string)
	for _, in := range urls {
		got := mirrorDirName(in)
		require.Equal(t, got, mirrorDirName(in), in)
		require.Regexp(t, safe, got, in)
		require.NotContains(t, seen, got, "%s collides with %s", in, seen[got])
		seen[got] = in
	}
	require.True(t, strings.HasPrefix(mirrorDirName("https://example.com/tiles/caves"), "https_example_com_tiles_caves_"))
}
