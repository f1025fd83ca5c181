package factory

import (
	"github.com/mikey/sms-spam-classifier/internal/config"
	"github.com/mikey/sms-spam-classifier/internal/textnorm"
)

// NormalizerFactory creates text normalizers from configuration
type NormalizerFactory struct {
	cfg *config.Config
}

// NewNormalizerFactory creates a new normalizer factory
func NewNormalizerFactory(cfg *config.Config) *NormalizerFactory {
	return &NormalizerFactory{cfg: cfg}
}

// CreateNormalizer creates a normalizer with the configured policy
func (f *NormalizerFactory) CreateNormalizer() *textnorm.Normalizer {
	nc := f.cfg.GetNormalizer()
	return textnorm.New(textnorm.Policy{
		MinTokenLen:     nc.MinTokenLen,
		RemoveStopWords: nc.RemoveStopWords,
	})
}
