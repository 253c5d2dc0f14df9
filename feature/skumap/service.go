package skumap

import (
	"fmt"
	"strings"

	"license-reconciler/core/skumap"

	"go.uber.org/zap"
)

// Service maintains the persisted SKU exception table.
type Service struct {
	path   string
	logger *zap.Logger
}

// NewService creates a new skumap service.
func NewService(path string, logger *zap.Logger) *Service {
	return &Service{path: path, logger: logger}
}

// Table returns the current exception table. An unreadable file is logged
// as a warning and treated as empty.
func (s *Service) Table() skumap.Map {
	m, err := skumap.Load(s.path)
	if err != nil {
		s.logger.Warn("SKU exception table unreadable", zap.String("path", s.path), zap.Error(err))
	}
	return m
}

// Put upserts one mapping and persists the full table. Overwriting an
// existing key is silent, last write wins.
func (s *Service) Put(preEASKU, cssmSKU string) (skumap.Map, error) {
	preEASKU = strings.TrimSpace(preEASKU)
	cssmSKU = strings.TrimSpace(cssmSKU)
	if preEASKU == "" || cssmSKU == "" {
		return nil, fmt.Errorf("both PRE-EA SKU and CSSM SKU are required")
	}

	m := s.Table()
	m.Put(preEASKU, cssmSKU)
	if err := skumap.Save(m, s.path); err != nil {
		return nil, err
	}
	s.logger.Info("SKU exception saved", zap.String("pre_ea_sku", preEASKU), zap.String("cssm_sku", cssmSKU))
	return m, nil
}

// Remove deletes one mapping and persists the full table. Removing an absent
// key succeeds.
func (s *Service) Remove(preEASKU string) (skumap.Map, error) {
	m := s.Table()
	m.Remove(preEASKU)
	if err := skumap.Save(m, s.path); err != nil {
		return nil, err
	}
	s.logger.Info("SKU exception removed", zap.String("pre_ea_sku", preEASKU))
	return m, nil
}
