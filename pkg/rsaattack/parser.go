package rsaattack

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/mahdiidarabi/textbook-rsa/internal/parser"
)

// CiphertextSetParser defines the interface for reading ciphertext sets from various sources.
type CiphertextSetParser interface {
	// ParseCiphertexts parses a ciphertext set from a source and returns it.
	ParseCiphertexts(source string) (*CiphertextSet, error)
}

// JSONParser parses ciphertext sets from JSON files.
type JSONParser struct {
	NField string // Field name for the modulus (default: "n")
	EField string // Field name for the public exponent (default: "e")
	CField string // Field name for the ciphertext (default: "c")
}

// ParseCiphertexts parses a ciphertext set from a JSON file.
//
// Expected format:
// [
//
//	{"n": "3233", "e": 17, "c": "0xae6"},
//	{"n": "3233", "e": 7, "c": "1584"}
//
// ]
func (p *JSONParser) ParseCiphertexts(jsonFile string) (*CiphertextSet, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.UseNumber() // Preserve large numbers as json.Number instead of float64

	var items []map[string]interface{}
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	nField := fieldOr(p.NField, "n")
	eField := fieldOr(p.EField, "e")
	cField := fieldOr(p.CField, "c")

	set := &CiphertextSet{}
	for i, item := range items {
		var values [3]*big.Int
		for k, field := range []string{nField, eField, cField} {
			val, ok := item[field]
			if !ok {
				return nil, fmt.Errorf("record %d: missing %s field", i, field)
			}
			v, err := parser.ParseValue(val)
			if err != nil {
				return nil, fmt.Errorf("record %d: failed to parse %s: %w", i, field, err)
			}
			values[k] = v
		}

		if err := set.add(values[0], values[1], values[2]); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	if err := set.check(); err != nil {
		return nil, err
	}
	return set, nil
}

// CSVParser parses ciphertext sets from CSV files.
type CSVParser struct {
	NCol string // Column name for the modulus (default: "n")
	ECol string // Column name for the public exponent (default: "e")
	CCol string // Column name for the ciphertext (default: "c")
}

// ParseCiphertexts parses a ciphertext set from a CSV file.
func (p *CSVParser) ParseCiphertexts(csvFile string) (*CiphertextSet, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	// Read header
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := []string{fieldOr(p.NCol, "n"), fieldOr(p.ECol, "e"), fieldOr(p.CCol, "c")}
	idx := []int{-1, -1, -1}
	for i, col := range header {
		for k, want := range cols {
			if col == want {
				idx[k] = i
			}
		}
	}
	for k, i := range idx {
		if i == -1 {
			return nil, fmt.Errorf("missing required column: %s", cols[k])
		}
	}

	set := &CiphertextSet{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		var values [3]*big.Int
		for k, i := range idx {
			if i >= len(record) {
				return nil, fmt.Errorf("line %d: %s column index out of range", line, cols[k])
			}
			v, err := parser.ParseInt(record[i])
			if err != nil {
				return nil, fmt.Errorf("line %d: failed to parse %s: %w", line, cols[k], err)
			}
			values[k] = v
		}

		if err := set.add(values[0], values[1], values[2]); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}

	if err := set.check(); err != nil {
		return nil, err
	}
	return set, nil
}

func fieldOr(name, def string) string {
	if name == "" {
		return def
	}
	return name
}

// add appends one record, which must use the set's modulus.
func (s *CiphertextSet) add(n, e, c *big.Int) error {
	if s.N == nil {
		if n.Sign() <= 0 {
			return fmt.Errorf("modulus must be positive, got %s", n)
		}
		s.N = n
	} else if s.N.Cmp(n) != 0 {
		return fmt.Errorf("modulus %s differs from %s", n, s.N)
	}
	if e.Sign() <= 0 {
		return fmt.Errorf("exponent must be positive, got %s", e)
	}
	s.Ciphertexts = append(s.Ciphertexts, &Ciphertext{E: e, C: c})
	return nil
}

func (s *CiphertextSet) check() error {
	if len(s.Ciphertexts) < 2 {
		return fmt.Errorf("need at least 2 ciphertexts, got %d", len(s.Ciphertexts))
	}
	return nil
}
