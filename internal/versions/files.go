// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package versions

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apphub/hubclient/internal/archive"
	"github.com/apphub/hubclient/internal/logging"
	"github.com/apphub/hubclient/internal/model"
)

// ReadUpload loads what Upload sends for path. A directory is zipped in
// memory and named after itself; a file is read as is, so a non-zip file
// is still rejected by Upload.
func ReadUpload(path string) (fileName string, content []byte, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", nil, err
	}
	if info.IsDir() {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", nil, err
		}
		data, err := archive.ZipDir(abs)
		if err != nil {
			return "", nil, err
		}
		return filepath.Base(abs) + ".zip", data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	return filepath.Base(path), data, nil
}

// SaveDownload writes a downloaded version into dir and returns the file
// path. Archives without a compose file are saved but logged.
func SaveDownload(dir string, info *model.FullVersionInfo) (string, error) {
	if info == nil {
		return "", fmt.Errorf("no version to save")
	}
	if ok, err := archive.HasCompose(info.Content); err != nil {
		logging.Warnf("downloaded %s is not a readable zip: %v", info.FileName(), err)
	} else if !ok {
		logging.Warnf("downloaded %s has no %s", info.FileName(), archive.ComposeFile)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create download directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, info.FileName())
	if err := os.WriteFile(path, info.Content, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
