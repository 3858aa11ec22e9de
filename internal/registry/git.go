// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package registry

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"gopkg.in/yaml.v3"

	"github.com/dndtiles/dndtiles/internal/pack"
)

const tagPrefix = "refs/tags/"

// GitSource serves a single pack from a git repository. Release tags of the
// form v<version> name the versions; the pack definition lives at the
// repository root.
type GitSource struct {
	name     string
	url      string
	cacheDir string
}

// NewGitSource builds a source that mirrors url into cacheDir before
// resolving or fetching.
func NewGitSource(name, url, cacheDir string) *GitSource {
	return &GitSource{name: name, url: url, cacheDir: cacheDir}
}

func (s *GitSource) Name() string {
	return s.name
}

func (s *GitSource) Resolve(ctx context.Context, name string) ([]string, error) {
	repo, err := s.mirror(ctx)
	if err != nil {
		return nil, err
	}
	hosted, err := s.packName(repo)
	if err != nil {
		return nil, err
	}
	if hosted != name {
		return nil, fmt.Errorf("%w: source %s hosts %s", ErrPackNotFound, s.name, hosted)
	}

	versions, err := s.tagVersions(repo)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: source %s has no release tags", ErrPackNotFound, s.name)
	}
	pack.SortVersions(versions)

	return versions, nil
}

func (s *GitSource) Fetch(ctx context.Context, name, version, dstDir string) (Fetched, error) {
	repo, err := s.mirror(ctx)
	if err != nil {
		return Fetched{}, err
	}
	hosted, err := s.packName(repo)
	if err != nil {
		return Fetched{}, err
	}
	if hosted != name {
		return Fetched{}, fmt.Errorf("%w: source %s hosts %s", ErrPackNotFound, s.name, hosted)
	}

	revision := plumbing.Revision(tagPrefix + "v" + version)
	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		return Fetched{}, fmt.Errorf("%w: %s@%s", ErrVersionNotFound, name, version)
	}
	commit, err := peelCommit(repo, *hash)
	if err != nil {
		return Fetched{}, fmt.Errorf("resolve %s: %w", revision, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return Fetched{}, fmt.Errorf("read tree of %s: %w", revision, err)
	}
	if err := materializeTree(tree, dstDir); err != nil {
		return Fetched{}, fmt.Errorf("materialize %s@%s: %w", name, version, err)
	}

	def, err := pack.Load(dstDir)
	if err != nil {
		return Fetched{}, fmt.Errorf("load %s@%s: %w", name, version, err)
	}
	if def.Name != name {
		return Fetched{}, fmt.Errorf("%w: tag v%s holds %s", errNameMismatch, version, def.Name)
	}
	if def.Version != version {
		return Fetched{}, fmt.Errorf("%w: tag v%s holds %s", errVersionMismatch, version, def.Version)
	}

	integrity, err := pack.TreeHash(dstDir)
	if err != nil {
		return Fetched{}, fmt.Errorf("hash %s@%s: %w", name, version, err)
	}

	return Fetched{
		Name:      name,
		Version:   version,
		Integrity: integrity,
		Source:    s.name,
		Dir:       dstDir,
	}, nil
}

// mirror opens the cached bare clone of the source repository, cloning it
// first when the cache is cold and refreshing tags when it is warm.
func (s *GitSource) mirror(ctx context.Context) (*git.Repository, error) {
	mirrorPath := filepath.Join(s.cacheDir, "git", mirrorDirName(s.url))

	repo, err := git.PlainOpen(mirrorPath)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		if mkErr := os.MkdirAll(filepath.Dir(mirrorPath), 0o750); mkErr != nil {
			return nil, fmt.Errorf("create mirror cache: %w", mkErr)
		}
		repo, err = git.PlainCloneContext(ctx, mirrorPath, true, &git.CloneOptions{
			URL:  s.url,
			Tags: git.AllTags,
		})
		if err != nil {
			return nil, fmt.Errorf("clone %s: %w", s.url, err)
		}

		return repo, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open mirror %s: %w", mirrorPath, err)
	}

	err = repo.FetchContext(ctx, &git.FetchOptions{Tags: git.AllTags, Force: true})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil, fmt.Errorf("update mirror %s: %w", s.url, err)
	}

	return repo, nil
}

// packName reads the pack name out of the definition at the repository HEAD.
func (s *GitSource) packName(repo *git.Repository) (string, error) {
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD of %s: %w", s.url, err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return "", fmt.Errorf("read HEAD commit of %s: %w", s.url, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return "", fmt.Errorf("read HEAD tree of %s: %w", s.url, err)
	}
	file, err := tree.File(pack.DefinitionFile)
	if err != nil {
		return "", fmt.Errorf("%w: %s", errNoDefinition, s.url)
	}
	contents, err := file.Contents()
	if err != nil {
		return "", fmt.Errorf("read %s: %w", pack.DefinitionFile, err)
	}

	var def pack.Definition
	if err := yaml.Unmarshal([]byte(contents), &def); err != nil {
		return "", fmt.Errorf("parse %s: %w", pack.DefinitionFile, err)
	}

	return def.Name, nil
}

func (s *GitSource) tagVersions(repo *git.Repository) ([]string, error) {
	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	var versions []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		tag := strings.TrimPrefix(ref.Name().String(), tagPrefix)
		version, ok := strings.CutPrefix(tag, "v")
		if !ok || !pack.IsValidVersion(version) {
			return nil
		}
		versions = append(versions, version)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk tags: %w", err)
	}

	return versions, nil
}

// peelCommit follows annotated tag objects down to the commit they point at.
func peelCommit(repo *git.Repository, hash plumbing.Hash) (*object.Commit, error) {
	commit, err := repo.CommitObject(hash)
	if err == nil {
		return commit, nil
	}
	tag, tagErr := repo.TagObject(hash)
	if tagErr != nil {
		return nil, err
	}

	return tag.Commit()
}

// materializeTree writes every blob of a git tree under dst.
func materializeTree(tree *object.Tree, dst string) error {
	if err := os.MkdirAll(dst, 0o750); err != nil {
		return err
	}

	files := tree.Files()
	defer files.Close()

	return files.ForEach(func(f *object.File) error {
		target := filepath.Join(dst, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return err
		}

		return writeBlob(f, target)
	})
}

func writeBlob(f *object.File, target string) error {
	reader, err := f.Reader()
	if err != nil {
		return err
	}

	mode := os.FileMode(0o600)
	if f.Mode == filemode.Executable {
		mode = os.FileMode(0o700)
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return errors.Join(err, reader.Close())
	}
	_, copyErr := io.Copy(out, reader)

	return errors.Join(copyErr, out.Close(), reader.Close())
}

// mirrorDirName flattens a repository URL into a directory name that stays
// inside the cache. The digest suffix keeps URLs that slugify identically
// from sharing a mirror.
func mirrorDirName(repoURL string) string {
	sum := sha256.Sum256([]byte(repoURL))

	return pack.WithSuffix(repoURL, hex.EncodeToString(sum[:])) + ".git"
}
