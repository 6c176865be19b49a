package repository

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"unicode"

	"idx-market-intel/pkg/logger"
	"idx-market-intel/pkg/utils"
)

// SyariahRepository answers whether a ticker is on the sharia-compliant list.
type SyariahRepository interface {
	IsSyariah(symbol string) bool
	Count() int
}

type syariahRepository struct {
	mu      sync.RWMutex
	tickers map[string]struct{}
}

// NewSyariahRepository loads the list from a CSV file. A missing path yields an empty list.
func NewSyariahRepository(path string, log *logger.Logger) (SyariahRepository, error) {
	repo := &syariahRepository{tickers: map[string]struct{}{}}
	if path == "" {
		return repo, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("Syariah list not found, continuing with an empty list", logger.StringField("path", path))
			return repo, nil
		}
		return nil, err
	}
	defer f.Close()

	if err := repo.load(f); err != nil {
		return nil, err
	}
	log.Info("Loaded syariah list", logger.StringField("path", path), logger.IntField("count", repo.Count()))
	return repo, nil
}

// NewSyariahRepositoryFromReader parses a CSV stream.
func NewSyariahRepositoryFromReader(r io.Reader) (SyariahRepository, error) {
	repo := &syariahRepository{tickers: map[string]struct{}{}}
	if err := repo.load(r); err != nil {
		return nil, err
	}
	return repo, nil
}

// load accepts any cell that looks like a bare ticker (3 to 5 letters) or an XXXX.JK code.
func (s *syariahRepository) load(r io.Reader) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	set := map[string]struct{}{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		for _, col := range row {
			col = strings.ToUpper(strings.TrimSpace(col))
			if strings.HasSuffix(col, ".JK") {
				set[strings.TrimSuffix(col, ".JK")] = struct{}{}
				continue
			}
			if len(col) >= 3 && len(col) <= 5 && isAlpha(col) {
				set[col] = struct{}{}
			}
		}
	}

	s.mu.Lock()
	s.tickers = set
	s.mu.Unlock()
	return nil
}

func (s *syariahRepository) IsSyariah(symbol string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tickers[utils.BareIDXCode(symbol)]
	return ok
}

func (s *syariahRepository) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tickers)
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
