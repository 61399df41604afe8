package yamlfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/faraid/pkg/application/dto"
)

// Loader reads request, chain and batch files written in YAML
type Loader struct{}

// NewLoader creates a new YAML loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadRequest loads a single calculation request
func (l *Loader) LoadRequest(filename string) (*dto.CalculationRequest, error) {
	var req dto.CalculationRequest
	if err := decodeFile(filename, "request", &req); err != nil {
		return nil, err
	}
	if len(req.Heirs) == 0 {
		return nil, fmt.Errorf("request file %s lists no heirs", filename)
	}
	return &req, nil
}

// LoadChain loads a chained-succession request
func (l *Loader) LoadChain(filename string) (*dto.ChainRequest, error) {
	var req dto.ChainRequest
	if err := decodeFile(filename, "chain", &req); err != nil {
		return nil, err
	}
	if req.SecondDeath == 0 {
		return nil, fmt.Errorf("chain file %s must name second_deceased", filename)
	}
	return &req, nil
}

// LoadBatch loads independent problems
func (l *Loader) LoadBatch(filename string) (*dto.BatchRequest, error) {
	var req dto.BatchRequest
	if err := decodeFile(filename, "batch", &req); err != nil {
		return nil, err
	}
	if len(req.Problems) == 0 {
		return nil, fmt.Errorf("batch file %s lists no problems", filename)
	}
	return &req, nil
}

// Decode reads one YAML document into out, rejecting unknown fields
func Decode(r io.Reader, out interface{}) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty document")
		}
		return err
	}
	return nil
}

func decodeFile(filename, kind string, out interface{}) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	if err := Decode(bytes.NewReader(data), out); err != nil {
		return fmt.Errorf("failed to parse %s file %s: %w", kind, filename, err)
	}
	return nil
}
