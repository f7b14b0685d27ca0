package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"trivia-quiz/internal/domain"
)

// BankLoader reads a single bank from a YAML or JSON file. The bank id is the
// one declared in the file, or the file name without extension.
type BankLoader struct {
	path string
}

func NewBankLoader(path string) *BankLoader {
	return &BankLoader{path: path}
}

// ID returns the id the file's bank is served under.
func (l *BankLoader) ID() string {
	base := filepath.Base(l.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (l *BankLoader) LoadBank(_ context.Context, bankID string) (domain.Bank, error) {
	bank, err := ReadBank(l.path)
	if err != nil {
		return domain.Bank{}, err
	}
	if bankID != bank.ID && bankID != l.ID() {
		return domain.Bank{}, domain.ErrBankNotFound
	}
	return bank, nil
}

// ReadBank decodes a bank file. YAML is a superset of JSON, so one decoder serves both.
func ReadBank(path string) (domain.Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Bank{}, fmt.Errorf("%w: %s", domain.ErrBankNotFound, path)
		}
		return domain.Bank{}, err
	}

	var bank domain.Bank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return domain.Bank{}, fmt.Errorf("decode bank %s: %w", path, err)
	}
	if bank.ID == "" {
		base := filepath.Base(path)
		bank.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return bank, nil
}
