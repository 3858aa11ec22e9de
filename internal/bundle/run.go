// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

// Package bundle stages an entry pack plus collected workspace packs into a
// payload tree, archives it deterministically and seals the archive onto a
// copy of the runtime binary as one distributable file.
package bundle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dndtiles/dndtiles/internal/pack"
	"github.com/dndtiles/dndtiles/internal/payload"
	"github.com/dndtiles/dndtiles/internal/term"
	"github.com/dndtiles/dndtiles/internal/workspace"
)

// buildInfo is the artifact left behind in the build directory.
type buildInfo struct {
	Name        string `json:"name"`
	Mode        string `json:"mode"`
	OneFile     bool   `json:"onefile"`
	CreatedAt   string `json:"createdAt"`
	Output      string `json:"output"`
	PayloadSize int64  `json:"payloadSize,omitempty"`
	Packs       int    `json:"packs"`
	Files       int    `json:"files"`
}

func Run(ctx context.Context, opts Options) error {
	opts = opts.WithDefaults()

	if err := pack.ValidateName(opts.Name); err != nil {
		return err
	}
	if opts.EntryDir == "" && len(opts.CollectAll) == 0 {
		return errNothingToBundle
	}

	buildRoot, err := cleanOutputPath(opts.BuildDir)
	if err != nil {
		return err
	}
	outRoot, err := cleanOutputPath(opts.OutDir)
	if err != nil {
		return err
	}
	stageRoot := filepath.Join(buildRoot, opts.Name)
	outPath := filepath.Join(outRoot, opts.Name)

	if opts.Clean {
		if err := os.RemoveAll(stageRoot); err != nil {
			return fmt.Errorf("clean %s: %w", stageRoot, err)
		}
		if err := os.RemoveAll(outPath); err != nil {
			return fmt.Errorf("clean %s: %w", outPath, err)
		}
	}

	log := opts.LoggerFactory.NewLogger("bundle")
	update, done := term.StartSpinner("bundling ")
	defer done()

	mode := payload.ModeConsole
	if !opts.Console {
		mode = payload.ModeWindowed
	}

	payloadDir := filepath.Join(stageRoot, "payload")
	if err := os.RemoveAll(payloadDir); err != nil {
		return fmt.Errorf("reset stage: %w", err)
	}
	if err := os.MkdirAll(payloadDir, 0o750); err != nil {
		return fmt.Errorf("create stage: %w", err)
	}

	st := &stager{root: payloadDir}
	info := payload.Info{
		Schema:    payload.InfoSchema,
		ID:        uuid.NewString(),
		Name:      opts.Name,
		Mode:      mode,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Runtime:   opts.ToolVersion,
	}

	if opts.EntryDir != "" {
		update("staging entry pack")
		def, err := pack.Load(opts.EntryDir)
		if err != nil {
			return fmt.Errorf("entry pack: %w", err)
		}
		if err := st.addTree(opts.EntryDir, payload.EntryDirName); err != nil {
			return fmt.Errorf("stage entry pack: %w", err)
		}
		info.Entry = def.Name
	}

	info.Packs, err = collectPacks(opts, st, update)
	if err != nil {
		return err
	}

	if opts.Icon != "" {
		update("staging icon")
		iconPath := path.Join(payload.AssetsDirName, filepath.Base(opts.Icon))
		if err := st.addFile(opts.Icon, iconPath); err != nil {
			return fmt.Errorf("stage icon: %w", err)
		}
		info.Icon = iconPath
	}

	info.Files = st.files()
	if err := pack.WriteJSON(filepath.Join(payloadDir, payload.InfoFileName), info); err != nil {
		return err
	}

	build := buildInfo{
		Name:      opts.Name,
		Mode:      mode,
		OneFile:   opts.OneFile,
		CreatedAt: info.CreatedAt,
		Packs:     len(info.Packs),
		Files:     len(info.Files),
	}

	if !opts.OneFile {
		build.Output = payloadDir
		if err := pack.WriteJSON(filepath.Join(stageRoot, "build-info.json"), build); err != nil {
			return err
		}
		log.Infof("staged %s (%s) at %s", opts.Name, mode, payloadDir)
		_, err = fmt.Fprintf(opts.Out, "staged %s (%s, %d packs) at %s\n",
			opts.Name, mode, len(info.Packs), payloadDir)

		return err
	}

	update("archiving payload")
	archive, err := zipPayload(payloadDir)
	if err != nil {
		return err
	}

	runtimePath := opts.Runtime
	if runtimePath == "" {
		exe, exeErr := os.Executable()
		if exeErr != nil {
			return fmt.Errorf("locate runtime: %w", exeErr)
		}
		runtimePath = exe
	}

	update("sealing " + outPath)
	if err := os.MkdirAll(outRoot, 0o750); err != nil {
		return fmt.Errorf("create %s: %w", outRoot, err)
	}
	if err := copyExecutable(runtimePath, outPath); err != nil {
		return err
	}
	if err := payload.Append(outPath, archive); err != nil {
		return err
	}

	build.Output = outPath
	build.PayloadSize = int64(len(archive))
	if err := pack.WriteJSON(filepath.Join(stageRoot, "build-info.json"), build); err != nil {
		return err
	}

	log.Infof("bundled %s (%s, %d packs, %d payload bytes)", outPath, mode, len(info.Packs), len(archive))
	_, err = fmt.Fprintf(opts.Out, "bundled %s (%s, %d packs, %d payload bytes)\n",
		outPath, mode, len(info.Packs), len(archive))

	return err
}

// collectPacks stages every --collect-all pack out of the workspace, whole
// tree included, and returns their bundle records sorted by name.
func collectPacks(opts Options, st *stager, update func(string)) ([]payload.PackRecord, error) {
	names := pack.SplitAndTrim(opts.CollectAll)
	if len(names) == 0 {
		return nil, nil
	}
	sort.Strings(names)

	ws, err := workspace.Open(workspace.Resolve(opts.Workspace))
	if err != nil {
		return nil, err
	}

	var records []payload.PackRecord
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		update("collecting " + name)
		dir := ws.PackDir(name)
		def, err := pack.Load(dir)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", errPackNotInstalled, name)
			}

			return nil, fmt.Errorf("collect %s: %w", name, err)
		}
		if err := st.addTree(dir, path.Join(payload.PacksDirName, name)); err != nil {
			return nil, fmt.Errorf("collect %s: %w", name, err)
		}
		integrity, err := pack.TreeHash(dir)
		if err != nil {
			return nil, fmt.Errorf("collect %s: %w", name, err)
		}
		records = append(records, payload.PackRecord{
			Name:      def.Name,
			Version:   def.Version,
			Integrity: integrity,
		})
	}

	return records, nil
}
