package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/mkovacevic/trainlog/internal/telemetry/tracing"
	"github.com/mkovacevic/trainlog/pkg"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// FileStore keeps the blob in a single JSON file. Saves go through a
// temp file and a rename, so a failed save leaves the previous state
// intact.
type FileStore struct {
	path  string
	mutex sync.Mutex
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("data file path cannot be empty")
	}
	return &FileStore{path: path}, nil
}

func (fs *FileStore) Load(ctx context.Context) (_ *Blob, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "fileStore.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	exists, err := pkg.PathExists(fs.path, false)
	if err != nil {
		return nil, fmt.Errorf("check data file %s: %w", fs.path, err)
	}
	if !exists {
		log.Debugf("data file %s does not exist, starting with empty state", fs.path)
		return NewBlob(), nil
	}

	raw, err := os.ReadFile(fs.path)
	if err != nil {
		return nil, fmt.Errorf("read data file %s: %w", fs.path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return NewBlob(), nil
	}

	var blob Blob
	if err := json.Unmarshal(raw, &blob); err != nil {
		return nil, fmt.Errorf("unmarshal data file %s: %w", fs.path, err)
	}
	return &blob, nil
}

func (fs *FileStore) Save(ctx context.Context, blob *Blob) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "fileStore.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	data, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("marshal blob: %w", err)
	}

	tmpPath := fs.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp data file %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, fs.path); err != nil {
		err = fmt.Errorf("replace data file %s: %w", fs.path, err)
		if removeErr := os.Remove(tmpPath); removeErr != nil {
			err = multierr.Append(err, fmt.Errorf("remove temp data file: %w", removeErr))
		}
		return err
	}

	log.Debugf("data file saved: %s", fs.path)
	return nil
}
