package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vsinha/faraid/pkg/application/dto"
	"github.com/vsinha/faraid/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/faraid/pkg/infrastructure/repositories/yamlfile"
)

// requestFlags are the ways a single estate and its heirs can be given
type requestFlags struct {
	estate    string
	heirsFile string
	request   string
	heirs     []string
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.estate, "estate", "", "estate value (overrides the request file)")
	cmd.Flags().StringVar(&f.heirsFile, "heirs", "", "heirs CSV file (category_id,quantity,blocking_reason,status)")
	cmd.Flags().StringVar(&f.request, "request", "", "YAML request file with estate and heirs")
	cmd.Flags().StringArrayVar(&f.heirs, "heir", nil,
		"heir as id:quantity[:blocking_reason[:status]], repeatable (e.g. --heir 18:1 --heir 12:3)")
}

// load assembles the request from the YAML file, the CSV file and inline heirs, in that order
func (f *requestFlags) load() (*dto.CalculationRequest, error) {
	req := &dto.CalculationRequest{}
	if f.request != "" {
		loaded, err := yamlfile.NewLoader().LoadRequest(f.request)
		if err != nil {
			return nil, err
		}
		req = loaded
	}
	if f.heirsFile != "" {
		lines, err := csv.NewLoader().LoadHeirs(f.heirsFile)
		if err != nil {
			return nil, err
		}
		req.Heirs = append(req.Heirs, lines...)
	}
	for _, spec := range f.heirs {
		line, err := parseHeirFlag(spec)
		if err != nil {
			return nil, err
		}
		req.Heirs = append(req.Heirs, line)
	}
	if f.estate != "" {
		req.Estate = f.estate
	}

	if req.Estate == "" {
		return nil, fmt.Errorf("an estate value is required: use --estate or a request file")
	}
	if len(req.Heirs) == 0 {
		return nil, fmt.Errorf("no heirs given: use --heir, --heirs or --request")
	}
	return req, nil
}

// parseHeirFlag parses id:quantity[:blocking_reason[:status]]
func parseHeirFlag(spec string) (dto.HeirLine, error) {
	parts := strings.SplitN(spec, ":", 4)
	if len(parts) < 2 {
		return dto.HeirLine{}, fmt.Errorf("invalid --heir %q: expected id:quantity", spec)
	}

	id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return dto.HeirLine{}, fmt.Errorf("invalid --heir %q: category id must be an integer", spec)
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return dto.HeirLine{}, fmt.Errorf("invalid --heir %q: quantity must be an integer", spec)
	}

	line := dto.HeirLine{CategoryID: id, Quantity: quantity}
	if len(parts) > 2 {
		line.BlockingReason = strings.TrimSpace(parts[2])
	}
	if len(parts) > 3 {
		line.Status = strings.TrimSpace(parts[3])
	}
	return line, nil
}
