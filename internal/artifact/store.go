package artifact

import (
	"encoding/gob"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/core"
)

// FileStore saves and loads model bundles as gob files on disk.
type FileStore struct {
	logger *zap.Logger
}

// NewFileStore creates a file-backed artifact store.
func NewFileStore(logger *zap.Logger) *FileStore {
	return &FileStore{logger: logger}
}

// Save writes the bundle to path. The bundle is validated first so a
// broken artifact is never persisted.
func (s *FileStore) Save(bundle *Bundle, path string) error {
	if err := bundle.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid bundle: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create artifact file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(bundle); err != nil {
		return fmt.Errorf("failed to encode artifact: %w", err)
	}

	s.logger.Info("Model artifact saved",
		zap.String("path", path),
		zap.Int("version", bundle.Version),
		zap.Int("vocabulary_size", bundle.Vocabulary.Size()))
	return nil
}

// Load reads and validates a bundle from path. A missing, corrupted, or
// incompatible artifact surfaces as a SchemaMismatchError.
func (s *FileStore) Load(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &core.SchemaMismatchError{Reason: fmt.Sprintf("artifact not readable: %v", err)}
	}
	defer f.Close()

	var bundle Bundle
	if err := gob.NewDecoder(f).Decode(&bundle); err != nil {
		return nil, &core.SchemaMismatchError{Reason: fmt.Sprintf("artifact not decodable: %v", err)}
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}

	s.logger.Info("Model artifact loaded",
		zap.String("path", path),
		zap.Int("version", bundle.Version),
		zap.Int("vocabulary_size", bundle.Vocabulary.Size()))
	return &bundle, nil
}
